// Package httpapi exposes the devconnector services as a JSON API over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/devconnector/internal/logging"
	"github.com/dmitrijs2005/devconnector/internal/server/auth"
	"github.com/dmitrijs2005/devconnector/internal/server/config"
	"github.com/dmitrijs2005/devconnector/internal/server/models"
	"github.com/dmitrijs2005/devconnector/internal/server/services"
	"github.com/go-playground/validator/v10"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, id auth.Identity) (*models.User, error)
}

type ProfileService interface {
	GetMine(ctx context.Context, id auth.Identity) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, id auth.Identity, in *models.Profile) (*models.Profile, error)
	DeleteAccount(ctx context.Context, id auth.Identity) error
	AddExperience(ctx context.Context, id auth.Identity, e *models.Experience) (*models.Profile, error)
	DeleteExperience(ctx context.Context, id auth.Identity, expID string) (*models.Profile, error)
	AddEducation(ctx context.Context, id auth.Identity, e *models.Education) (*models.Profile, error)
	DeleteEducation(ctx context.Context, id auth.Identity, eduID string) (*models.Profile, error)
}

type PostService interface {
	Create(ctx context.Context, id auth.Identity, text string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, postID string) (*models.Post, error)
	Delete(ctx context.Context, id auth.Identity, postID string) error
	Like(ctx context.Context, id auth.Identity, postID string) ([]models.Like, error)
	Unlike(ctx context.Context, id auth.Identity, postID string) ([]models.Like, error)
	Comment(ctx context.Context, id auth.Identity, postID, text string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id auth.Identity, postID, commentID string) ([]models.Comment, error)
}

type AvatarService interface {
	PresignUpload(ctx context.Context, id auth.Identity, contentType string) (*services.AvatarUpload, error)
}

// Services bundles what the handlers call into.
type Services struct {
	Users    UserService
	Profiles ProfileService
	Posts    PostService
	Avatars  AvatarService
}

type HTTPServer struct {
	address        string
	requestTimeout time.Duration
	authRateLimit  int
	logger         logging.Logger
	verifier       *auth.Verifier
	validate       *validator.Validate

	users    UserService
	profiles ProfileService
	posts    PostService
	avatars  AvatarService
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, verifier *auth.Verifier, svc Services) *HTTPServer {
	return &HTTPServer{
		address:        cfg.EndpointAddrHTTP,
		requestTimeout: cfg.RequestTimeout,
		authRateLimit:  cfg.AuthRateLimit,
		logger:         l.With("module", "http_server"),
		verifier:       verifier,
		validate:       newValidator(),
		users:          svc.Users,
		profiles:       svc.Profiles,
		posts:          svc.Posts,
		avatars:        svc.Avatars,
	}
}

const shutdownTimeout = 10 * time.Second

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.requestTimeout,
		WriteTimeout:      s.requestTimeout + 5*time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
