package domain

import "time"

type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Hash      string    `db:"password_hash"`
	CreatedAt time.Time `db:"created_at"`
}

// SessionUser is the snapshot of a User kept in session state.
type SessionUser struct {
	ID    string
	Email string
	Name  string
}

func (u *User) Session() SessionUser {
	return SessionUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

// Registration is a raw sign-up submission as posted by the registration form.
type Registration struct {
	Email        string `form:"email" validate:"required,email,max=60"`
	Name         string `form:"name" validate:"required,min=3,max=20"`
	Password     string `form:"password" validate:"required,password"`
	Confirmation string `form:"confirmation" validate:"required,eqfield=Password"`
}

// Redisplay returns a copy safe to keep in session state and echo back to the form.
func (r Registration) Redisplay() Registration {
	r.Password = ""
	r.Confirmation = ""
	return r
}
