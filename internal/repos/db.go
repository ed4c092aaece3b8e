package repos

import (
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	applog "github.com/npapon/jpa-project/internal/log"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// OpenDB connects, migrates and seeds the demo accounts, hashing their
// passwords at bcryptCost (bcrypt.DefaultCost when out of range).
func OpenDB(driver, dsn string, bcryptCost int) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// one connection: keeps :memory: databases alive and serializes writers
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, translate("db.open", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	// Ensure demo users exist (idempotent; safe to run every start)
	if err := seedUsers(db, bcryptCost); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the embedded goose migrations for the driver behind db.
func Migrate(db *sqlx.DB) error {
	dialect, dir := "sqlite3", "migrations/sqlite"
	if db.DriverName() == DriverPostgres {
		dialect, dir = "postgres", "migrations/postgres"
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(applog.Logger())
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	if err := goose.Up(db.DB, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return nil
}

// seedUsers ensures the demo accounts exist (idempotent).
func seedUsers(db *sqlx.DB, cost int) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	type u struct {
		ID, Email, Name, Hash string
	}
	mk := func(id, email, name, raw string) (u, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
		return u{ID: id, Email: email, Name: name, Hash: string(h)}, err
	}

	var users []u
	for _, x := range [][3]string{
		{"u-alice", "alice@jpa-project.test", "Alice"},
		{"u-bob", "bob@jpa-project.test", "Bob"},
	} {
		seed, err := mk(x[0], x[1], x[2], "Passw0rd!")
		if err != nil {
			return err
		}
		users = append(users, seed)
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insert := tx.Rebind(`
		INSERT INTO users(id,email,name,password_hash,created_at)
		VALUES(?,?,?,?,?)
		ON CONFLICT(email) DO NOTHING`)
	for _, x := range users {
		if _, err := tx.Exec(insert, x.ID, x.Email, x.Name, x.Hash, time.Now().UTC()); err != nil {
			return err
		}
	}

	return tx.Commit()
}
