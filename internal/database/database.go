// Package database opens the optional PostgreSQL connection backing the report store.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/XSAM/otelsql"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"archiveweb/internal/config"
)

// ErrDisabled is returned by Open when no database host is configured.
var ErrDisabled = errors.New("database not configured")

var sqlOpen = sql.Open

const pingTimeout = 5 * time.Second

// BuildPostgresDSN renders c as a postgres:// URL for the pgx driver.
// The password and sslmode parts are left out when unset.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.User, validation.Required),
		validation.Field(&c.Name, validation.Required),
	)
	if err != nil {
		return "", fmt.Errorf("invalid database config: %w", err)
	}

	user := url.User(c.User)
	if c.Password != "" {
		user = url.UserPassword(c.User, c.Password)
	}
	dsn := url.URL{
		Scheme: "postgres",
		User:   user,
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   c.Name,
	}
	if c.SSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return dsn.String(), nil
}

// configurePool applies the non-zero pool limits from c; zero keeps database/sql's default.
func configurePool(db *sql.DB, c config.DatabaseConfig) {
	if n := c.MaxOpenConns; n > 0 {
		db.SetMaxOpenConns(n)
	}
	if n := c.MaxIdleConns; n > 0 {
		db.SetMaxIdleConns(n)
	}
	if sec := c.ConnMaxLifetimeSec; sec > 0 {
		db.SetConnMaxLifetime(time.Duration(sec) * time.Second)
	}
}

// Open connects through the pgx stdlib driver wrapped by otelsql and verifies the connection.
// It returns ErrDisabled when c has no host.
func Open(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	configurePool(db, c)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}
