// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/lyonblue/PHADMINISTRATION/internal/dbx"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/migrations"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/news"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/passwordresets"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/refreshtokens"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/testimonials"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/users"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/verifications"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// RefreshTokens returns a refreshtokens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// Verifications returns a verifications.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Verifications(db dbx.DBTX) verifications.Repository {
	return verifications.NewPostgresRepository(db)
}

// PasswordResets returns a passwordresets.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) PasswordResets(db dbx.DBTX) passwordresets.Repository {
	return passwordresets.NewPostgresRepository(db)
}

// News returns a news.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) News(db dbx.DBTX) news.Repository {
	return news.NewPostgresRepository(db)
}

// Testimonials returns a testimonials.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Testimonials(db dbx.DBTX) testimonials.Repository {
	return testimonials.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}
