package domain

type MenuItem struct {
	ID     int64  `db:"id" json:"id"`
	Label  string `db:"label" json:"label"`
	Href   string `db:"href" json:"href"`
	Order  int    `db:"sort_order" json:"order"`
	Active bool   `db:"active" json:"active"`
}
