// Package httpapi exposes the application over HTTP using gin. It owns
// request decoding, cookie handling, error-to-status mapping, and outbound
// mail; business rules live in the services package.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lyonblue/PHADMINISTRATION/internal/logging"
	"github.com/lyonblue/PHADMINISTRATION/internal/mailx"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/auth"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/config"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/services"
)

// AuthService is the credential and session lifecycle consumed by the routes.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*models.User, string, error)
	CreateAccountWithRole(ctx context.Context, email, password, fullName, role string, preVerified bool) (*models.User, string, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	Refresh(ctx context.Context, userID, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, userID, refreshToken string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	ParseAccessToken(token string) (*auth.Claims, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, fullName, avatarURL *string) (*models.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type NewsService interface {
	List(ctx context.Context) ([]*models.NewsItem, error)
	Create(ctx context.Context, authorID, title, subtitle, description, imageURL string) (*models.NewsItem, error)
	Delete(ctx context.Context, id string) error
}

type TestimonialService interface {
	List(ctx context.Context, viewerID string) ([]*models.Testimonial, error)
	Create(ctx context.Context, userID string, rating int, message string) (*models.Testimonial, error)
	Delete(ctx context.Context, id, callerID, callerRole string) error
}

type AvatarService interface {
	GetPresignedPutURL(ctx context.Context, userID string) (string, string, error)
	GetPresignedGetURL(ctx context.Context, key string) (string, error)
}

type Server struct {
	address      string
	logger       logging.Logger
	auth         AuthService
	profile      ProfileService
	news         NewsService
	testimonials TestimonialService
	avatars      AvatarService
	mailer       mailx.Mailer
	config       *config.Config
}

func NewServer(cfg *config.Config, l logging.Logger, as AuthService, ps ProfileService,
	ns NewsService, ts TestimonialService, avs AvatarService, mailer mailx.Mailer) *Server {
	return &Server{
		address:      cfg.EndpointAddr,
		logger:       l.With("module", "http_server"),
		auth:         as,
		profile:      ps,
		news:         ns,
		testimonials: ts,
		avatars:      avs,
		mailer:       mailer,
		config:       cfg,
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.index)
	r.GET("/health", s.health)

	ar := r.Group("/auth")
	{
		ar.POST("/register", s.register)
		ar.POST("/login", s.login)
		ar.POST("/refresh", s.refresh)
		ar.POST("/logout", s.logout)
		ar.POST("/verify-email", s.verifyEmail)
		ar.POST("/forgot-password", s.forgotPassword)
		ar.POST("/reset-password", s.resetPassword)
	}

	me := r.Group("/me", s.RequireAuth())
	{
		me.GET("", s.getProfile)
		me.PATCH("", s.updateProfile)
		me.POST("/change-password", s.changePassword)
		me.POST("/avatar-upload", s.avatarUpload)
	}

	r.POST("/admin/create-user", s.RequireAuth(), s.RequireRole(models.RoleAdmin), s.adminCreateUser)

	r.GET("/news", s.listNews)
	r.POST("/news", s.RequireAuth(), s.RequireRole(models.RoleAdmin), s.createNews)
	r.DELETE("/news/:id", s.RequireAuth(), s.RequireRole(models.RoleAdmin), s.deleteNews)

	r.GET("/testimonials", s.listTestimonials)
	r.POST("/testimonials", s.RequireAuth(), s.createTestimonial)
	r.DELETE("/testimonials/:id", s.RequireAuth(), s.deleteTestimonial)

	r.POST("/contact/proposal", s.contactProposal)

	return r
}

// Run serves the API until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
