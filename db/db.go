package db

import (
	"context"
	"fmt"
	"net/url"

	"restaurant-backend/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool for the configured database. The caller owns
// the pool and must Close it.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, connString(cfg))
}

// connString builds the URL form of the DSN. User and password go
// through url escaping so characters like '@', '/' or ':' in a password
// do not break parsing.
func connString(cfg config.DBConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/" + cfg.Database,
	}
	return u.String()
}
