package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lyonblue/PHADMINISTRATION/internal/common"
	"github.com/lyonblue/PHADMINISTRATION/internal/logging"
	"github.com/lyonblue/PHADMINISTRATION/internal/mailx"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/auth"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/config"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- fake services ---

// fakeAuth recognizes the access token "good-token" as user u1 and
// "admin-token" as admin a1.
type fakeAuth struct {
	registerUser  *models.User
	registerToken string
	registerErr   error

	loginUser *models.User
	loginPair *services.TokenPair
	loginErr  error

	refreshPair *services.TokenPair
	refreshErr  error

	verifyErr error
	forgotTok string
	forgotErr error
	resetErr  error

	createdUser  *models.User
	createdToken string
	createErr    error

	logoutUserID string
	logoutToken  string
}

func (f *fakeAuth) Register(ctx context.Context, email, password, fullName string) (*models.User, string, error) {
	return f.registerUser, f.registerToken, f.registerErr
}
func (f *fakeAuth) CreateAccountWithRole(ctx context.Context, email, password, fullName, role string, preVerified bool) (*models.User, string, error) {
	return f.createdUser, f.createdToken, f.createErr
}
func (f *fakeAuth) VerifyEmail(ctx context.Context, token string) error { return f.verifyErr }
func (f *fakeAuth) Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error) {
	return f.loginUser, f.loginPair, f.loginErr
}
func (f *fakeAuth) Refresh(ctx context.Context, userID, refreshToken string) (*services.TokenPair, error) {
	return f.refreshPair, f.refreshErr
}
func (f *fakeAuth) Logout(ctx context.Context, userID, refreshToken string) error {
	f.logoutUserID = userID
	f.logoutToken = refreshToken
	return nil
}
func (f *fakeAuth) ForgotPassword(ctx context.Context, email string) (string, error) {
	return f.forgotTok, f.forgotErr
}
func (f *fakeAuth) ResetPassword(ctx context.Context, token, newPassword string) error {
	return f.resetErr
}
func (f *fakeAuth) ParseAccessToken(token string) (*auth.Claims, error) {
	switch token {
	case "good-token":
		return &auth.Claims{UserID: "u1", Role: models.RoleUser}, nil
	case "admin-token":
		return &auth.Claims{UserID: "a1", Role: models.RoleAdmin}, nil
	}
	return nil, common.ErrInvalidToken
}

type fakeProfile struct {
	user      *models.User
	getErr    error
	updateErr error
	changeErr error

	changedCurrent string
	changedNew     string
}

func (f *fakeProfile) Get(ctx context.Context, userID string) (*models.User, error) {
	return f.user, f.getErr
}
func (f *fakeProfile) Update(ctx context.Context, userID string, fullName, avatarURL *string) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.user, nil
}
func (f *fakeProfile) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	f.changedCurrent = currentPassword
	f.changedNew = newPassword
	return f.changeErr
}

type fakeNews struct {
	items     []*models.NewsItem
	created   *models.NewsItem
	deleteErr error
	deletedID string
}

func (f *fakeNews) List(ctx context.Context) ([]*models.NewsItem, error) { return f.items, nil }
func (f *fakeNews) Create(ctx context.Context, authorID, title, subtitle, description, imageURL string) (*models.NewsItem, error) {
	f.created = &models.NewsItem{ID: "n-new", UserID: authorID, Title: title}
	return f.created, nil
}
func (f *fakeNews) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeTestimonials struct {
	items     []*models.Testimonial
	viewerID  string
	createErr error
	deleteErr error
}

func (f *fakeTestimonials) List(ctx context.Context, viewerID string) ([]*models.Testimonial, error) {
	f.viewerID = viewerID
	return f.items, nil
}
func (f *fakeTestimonials) Create(ctx context.Context, userID string, rating int, message string) (*models.Testimonial, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Testimonial{ID: "t-new", UserID: userID, Rating: rating, Message: message}, nil
}
func (f *fakeTestimonials) Delete(ctx context.Context, id, callerID, callerRole string) error {
	return f.deleteErr
}

type fakeAvatars struct{}

func (f *fakeAvatars) GetPresignedPutURL(ctx context.Context, userID string) (string, string, error) {
	return "avatars/" + userID + "/k", "https://minio/put", nil
}
func (f *fakeAvatars) GetPresignedGetURL(ctx context.Context, key string) (string, error) {
	return "https://minio/get", nil
}

type fakeMailer struct {
	sent    []mailx.Message
	sendErr error
}

func (f *fakeMailer) Send(ctx context.Context, msg mailx.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

type testDeps struct {
	auth         *fakeAuth
	profile      *fakeProfile
	news         *fakeNews
	testimonials *fakeTestimonials
	mailer       *fakeMailer
}

func newTestServer(t *testing.T) (*Server, *testDeps) {
	t.Helper()
	deps := &testDeps{
		auth:         &fakeAuth{},
		profile:      &fakeProfile{},
		news:         &fakeNews{},
		testimonials: &fakeTestimonials{},
		mailer:       &fakeMailer{},
	}
	cfg := &config.Config{
		EndpointAddr:                 ":0",
		RefreshTokenValidityDuration: 30 * 24 * time.Hour,
		ProposalEmail:                "sales@example.com",
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	srv := NewServer(cfg, logger, deps.auth, deps.profile, deps.news, deps.testimonials, &fakeAvatars{}, deps.mailer)
	return srv, deps
}

func doJSON(t *testing.T, srv *Server, method, path string, body any, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)
	return w
}

func withBearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withCookie(name, value string) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: name, Value: value}) }
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func refreshCookieOf(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == refreshCookieName {
			return c
		}
	}
	return nil
}
