package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/lyonblue/PHADMINISTRATION/internal/dbx"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
	newsrepo "github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/news"
	resetsrepo "github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/passwordresets"
	refreshtokensrepo "github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/refreshtokens"
	testimonialsrepo "github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/testimonials"
	usersrepo "github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/users"
	verificationsrepo "github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/verifications"
)

// --- shared test helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createErr  error
	byEmail    *models.User
	byEmailErr error
	byID       *models.User
	byIDErr    error

	created              *models.User
	updatedPasswordHash  string
	updatedPasswordFor   string
	updatedProfileName   *string
	updatedProfileAvatar *string
	verifiedID           string
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = u
	return nil
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmail, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}
func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id string, hash string) error {
	f.updatedPasswordFor = id
	f.updatedPasswordHash = hash
	return nil
}
func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, id string, fullName, avatarURL *string) error {
	f.updatedProfileName = fullName
	f.updatedProfileAvatar = avatarURL
	return nil
}
func (f *fakeUsersRepo) SetEmailVerified(ctx context.Context, id string) error {
	f.verifiedID = id
	return nil
}

type fakeRefreshRepo struct {
	findOut    *models.RefreshToken
	findErr    error
	revokeRows int64
	revokeErr  error
	createErr  error

	createdFor    string
	createdHash   string
	revokedID     string
	revokedByHash string
	revokedAllFor string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdFor = userID
	f.createdHash = tokenHash
	return nil
}
func (f *fakeRefreshRepo) FindActive(ctx context.Context, userID string, tokenHash string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeRefreshRepo) Revoke(ctx context.Context, id string) (int64, error) {
	if f.revokeErr != nil {
		return 0, f.revokeErr
	}
	f.revokedID = id
	return f.revokeRows, nil
}
func (f *fakeRefreshRepo) RevokeByHash(ctx context.Context, userID string, tokenHash string) error {
	f.revokedByHash = tokenHash
	return nil
}
func (f *fakeRefreshRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	f.revokedAllFor = userID
	return nil
}

type fakeVerificationsRepo struct {
	findOut *models.EmailVerification
	findErr error

	createdFor   string
	createdToken string
	deletedToken string
}

func (f *fakeVerificationsRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.createdFor = userID
	f.createdToken = token
	return nil
}
func (f *fakeVerificationsRepo) Find(ctx context.Context, token string) (*models.EmailVerification, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeVerificationsRepo) Delete(ctx context.Context, token string) error {
	f.deletedToken = token
	return nil
}

type fakeResetsRepo struct {
	findOut *models.PasswordReset
	findErr error

	createdFor   string
	createdToken string
	deletedToken string
}

func (f *fakeResetsRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.createdFor = userID
	f.createdToken = token
	return nil
}
func (f *fakeResetsRepo) Find(ctx context.Context, token string) (*models.PasswordReset, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeResetsRepo) Delete(ctx context.Context, token string) error {
	f.deletedToken = token
	return nil
}

type fakeNewsRepo struct {
	listOut []*models.NewsItem
	byID    *models.NewsItem
	byIDErr error

	created   *models.NewsItem
	deletedID string
	listLimit int
}

func (f *fakeNewsRepo) List(ctx context.Context, limit int) ([]*models.NewsItem, error) {
	f.listLimit = limit
	return f.listOut, nil
}
func (f *fakeNewsRepo) GetByID(ctx context.Context, id string) (*models.NewsItem, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	if f.byID != nil {
		return f.byID, nil
	}
	return f.created, nil
}
func (f *fakeNewsRepo) Create(ctx context.Context, item *models.NewsItem) error {
	f.created = item
	return nil
}
func (f *fakeNewsRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return nil
}

type fakeTestimonialsRepo struct {
	listOut []*models.Testimonial
	byID    *models.Testimonial
	byIDErr error
	exists  bool

	created       *models.Testimonial
	deletedID     string
	avatarUpdated *string
	avatarUserID  string
}

func (f *fakeTestimonialsRepo) List(ctx context.Context, limit int) ([]*models.Testimonial, error) {
	return f.listOut, nil
}
func (f *fakeTestimonialsRepo) GetByID(ctx context.Context, id string) (*models.Testimonial, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	if f.byID != nil {
		return f.byID, nil
	}
	return f.created, nil
}
func (f *fakeTestimonialsRepo) Create(ctx context.Context, item *models.Testimonial) error {
	f.created = item
	return nil
}
func (f *fakeTestimonialsRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return nil
}
func (f *fakeTestimonialsRepo) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	return f.exists, nil
}
func (f *fakeTestimonialsRepo) UpdateAvatarForUser(ctx context.Context, userID string, avatarURL *string) error {
	f.avatarUserID = userID
	f.avatarUpdated = avatarURL
	return nil
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	v  *fakeVerificationsRepo
	pr *fakeResetsRepo
	n  *fakeNewsRepo
	ts *fakeTestimonialsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.r
}
func (m *fakeRepoManager) Verifications(db dbx.DBTX) verificationsrepo.Repository {
	return m.v
}
func (m *fakeRepoManager) PasswordResets(db dbx.DBTX) resetsrepo.Repository { return m.pr }
func (m *fakeRepoManager) News(db dbx.DBTX) newsrepo.Repository             { return m.n }
func (m *fakeRepoManager) Testimonials(db dbx.DBTX) testimonialsrepo.Repository {
	return m.ts
}
