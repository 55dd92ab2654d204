package repomanager

import (
	"context"
	"database/sql"

	"github.com/lyonblue/PHADMINISTRATION/internal/dbx"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/news"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/passwordresets"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/refreshtokens"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/testimonials"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/users"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/verifications"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Verifications(db dbx.DBTX) verifications.Repository
	PasswordResets(db dbx.DBTX) passwordresets.Repository
	News(db dbx.DBTX) news.Repository
	Testimonials(db dbx.DBTX) testimonials.Repository
}
