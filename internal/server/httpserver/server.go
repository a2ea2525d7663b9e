// Package httpserver exposes the task manager over HTTP/JSON: the chi
// router, the bearer-token middleware, the user and task handlers and the
// error envelope.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/logging"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

// TokenVerifier resolves a bearer token to its owner.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

type UserService interface {
	Register(ctx context.Context, in models.NewUser) (*models.AuthResult, error)
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
	Logout(ctx context.Context, userID, token string) error
	LogoutAll(ctx context.Context, userID string) error
	Update(ctx context.Context, user *models.User, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, user *models.User) (*models.User, error)
}

type TaskService interface {
	Create(ctx context.Context, ownerID string, in models.NewTask) (*models.Task, error)
	List(ctx context.Context, ownerID string, q models.TaskQuery) ([]models.Task, error)
	Get(ctx context.Context, ownerID, id string) (*models.Task, error)
	Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id string) (*models.Task, error)
}

// Pinger reports database reachability for /healthz.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	Address         string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type Server struct {
	opts    Options
	logger  logging.Logger
	auth    TokenVerifier
	users   UserService
	tasks   TaskService
	db      Pinger
	metrics *metrics
	handler http.Handler
}

func NewServer(opts Options, l logging.Logger, a TokenVerifier, us UserService, ts TaskService, db Pinger) *Server {
	s := &Server{
		opts:    opts,
		logger:  l.With("module", "http_server"),
		auth:    a,
		users:   us,
		tasks:   ts,
		db:      db,
		metrics: newMetrics(),
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
