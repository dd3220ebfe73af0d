// Package httpapi exposes the auth operations over HTTP/JSON. It owns the
// wire contract only: requests are parsed here, domain errors are translated
// to the error payload shape, and no internal detail leaks to clients.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AuthService is the slice of the auth service the transport needs.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Identify(ctx context.Context, userID string) (*models.User, error)
	TokenUserID(token string) (string, error)
}

// AvatarService is the slice of the avatar service the transport needs.
type AvatarService interface {
	NewUploadURL(ctx context.Context, userID string) (string, string, error)
	Claim(ctx context.Context, userID, key string) error
	DownloadURL(ctx context.Context, userID string) (string, error)
}

type Server struct {
	address string
	logger  logging.Logger
	auth    AuthService
	avatars AvatarService
}

func NewServer(address string, l logging.Logger, auth AuthService, avatars AvatarService) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		auth:    auth,
		avatars: avatars,
	}
}

// Router builds the gin engine with all routes registered. Exposed for
// handler tests.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	api := r.Group("/api")
	api.POST("/users", s.handleRegister)
	api.POST("/auth", s.handleLogin)

	authed := api.Group("", s.tokenRequired)
	authed.GET("/auth", s.handleIdentify)
	authed.POST("/users/avatar", s.handleAvatarUploadURL)
	authed.PUT("/users/avatar", s.handleAvatarClaim)
	authed.GET("/users/avatar", s.handleAvatarDownloadURL)

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.Router()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
