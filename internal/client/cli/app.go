package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/taskmanager/internal/client/api"
	"github.com/dmitrijs2005/taskmanager/internal/client/config"
	"github.com/dmitrijs2005/taskmanager/internal/client/session"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

var errNotLoggedIn = errors.New("not logged in, run 'login <email>' first")

// APIClient is the part of api.Client the commands use.
type APIClient interface {
	Register(ctx context.Context, u models.NewUser) (*models.AuthResult, error)
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
	Logout(ctx context.Context, token string) error
	LogoutAll(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (*models.User, error)
	CreateTask(ctx context.Context, token string, t models.NewTask) (*models.Task, error)
	ListTasks(ctx context.Context, token string, q models.TaskQuery) ([]models.Task, error)
	UpdateTask(ctx context.Context, token, id string, p models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, token, id string) (*models.Task, error)
}

// SessionStore persists the login state between invocations.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	Email(ctx context.Context) (string, error)
	Save(ctx context.Context, email, token string) error
	Clear(ctx context.Context) error
}

type App struct {
	api     APIClient
	session SessionStore
	reader  *bufio.Reader
	out     io.Writer
	closeFn func() error
}

// NewApp opens the session database and builds the API client from c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	store, err := session.Open(ctx, c.SessionDB)
	if err != nil {
		return nil, err
	}

	app := newApp(api.New(c.ServerURL, c.RequestTimeout), store, os.Stdin, os.Stdout)
	app.closeFn = store.Close
	return app, nil
}

func newApp(client APIClient, store SessionStore, in io.Reader, out io.Writer) *App {
	return &App{
		api:     client,
		session: store,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

// Run executes the command in args, or starts the prompt when args is empty.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.runREPL(ctx)
		return nil
	}
	return a.exec(ctx, args[0], args[1:])
}

// token returns the saved token or errNotLoggedIn.
func (a *App) token(ctx context.Context) (string, error) {
	tok, err := a.session.Token(ctx)
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", errNotLoggedIn
	}
	return tok, nil
}

// authFailed drops a session the server no longer accepts.
func (a *App) authFailed(ctx context.Context, err error) error {
	if api.StatusOf(err) == http.StatusUnauthorized {
		_ = a.session.Clear(ctx)
	}
	return err
}
