package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Options carries the MySQL connection settings. Pool sizing and
// connection lifetime are injected from configuration like the other
// tunables; zero values fall back to sensible defaults.
type Options struct {
	User         string
	Pass         string // empty allowed
	Host         string
	Port         string
	Name         string
	MaxConns     int
	ConnLifetime time.Duration
}

const (
	defaultMaxConns     = 25
	defaultConnLifetime = 30 * time.Minute
)

// dsn renders the driver connection string. parseTime maps DATETIME
// columns onto time.Time and loc=UTC keeps those values consistent
// with the UTC timestamps the token issuer works in.
func (o Options) dsn() string {
	auth := o.User
	if o.Pass != "" {
		auth = fmt.Sprintf("%s:%s", o.User, o.Pass)
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, o.Host, o.Port, o.Name)
}

func (o Options) withDefaults() Options {
	if o.MaxConns <= 0 {
		o.MaxConns = defaultMaxConns
	}
	if o.ConnLifetime <= 0 {
		o.ConnLifetime = defaultConnLifetime
	}
	return o
}

// Open connects to MySQL, applies the pool settings and verifies the
// connection with a bounded ping.
func Open(opts Options) (*sql.DB, error) {
	opts = opts.withDefaults()

	db, err := sql.Open("mysql", opts.dsn())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(opts.MaxConns)
	db.SetMaxIdleConns(opts.MaxConns)
	db.SetConnMaxLifetime(opts.ConnLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
