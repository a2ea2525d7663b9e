package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/logging"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements TokenVerifier, UserService and TaskService over
// plain maps. Err fields force failures.
type fakeBackend struct {
	users  map[string]*models.User
	tokens map[string]string // token -> user id
	tasks  []*models.Task

	verifyErr error
	loginErr  error
	taskErr   error

	lastQuery   models.TaskQuery
	updateCalls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{users: map[string]*models.User{}, tokens: map[string]string{}}
}

// addUser creates a user with one token and returns both.
func (f *fakeBackend) addUser(name string) (*models.User, string) {
	u := &models.User{ID: uuid.NewString(), Name: name, Email: strings.ToLower(name) + "@x.com", PasswordHash: "hash"}
	f.users[u.ID] = u
	tok := "tok-" + u.ID
	f.tokens[tok] = u.ID
	return u, tok
}

func (f *fakeBackend) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	id, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrInvalidToken
	}
	return f.users[id], nil
}

func (f *fakeBackend) Register(ctx context.Context, in models.NewUser) (*models.AuthResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u, tok := f.addUser(in.Name)
	u.Email = in.Email
	return &models.AuthResult{User: u, Token: tok}, nil
}

func (f *fakeBackend) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	for _, u := range f.users {
		if u.Email == creds.Email {
			tok := "tok-" + uuid.NewString()
			f.tokens[tok] = u.ID
			return &models.AuthResult{User: u, Token: tok}, nil
		}
	}
	return nil, common.ErrorUnableToLogin
}

func (f *fakeBackend) Logout(ctx context.Context, userID, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeBackend) LogoutAll(ctx context.Context, userID string) error {
	for tok, id := range f.tokens {
		if id == userID {
			delete(f.tokens, tok)
		}
	}
	return nil
}

func (f *fakeBackend) Update(ctx context.Context, user *models.User, patch models.UserPatch) (*models.User, error) {
	f.updateCalls++
	cp := *user
	if _, _, err := patch.Apply(&cp); err != nil {
		return nil, err
	}
	f.users[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeBackend) Delete(ctx context.Context, user *models.User) (*models.User, error) {
	delete(f.users, user.ID)
	return user, f.LogoutAll(ctx, user.ID)
}

type fakeTasks struct{ *fakeBackend }

func (f fakeTasks) Create(ctx context.Context, ownerID string, in models.NewTask) (*models.Task, error) {
	if f.taskErr != nil {
		return nil, f.taskErr
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t := &models.Task{ID: uuid.NewString(), Description: in.Description, Completed: in.Completed, OwnerID: ownerID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f fakeTasks) List(ctx context.Context, ownerID string, q models.TaskQuery) ([]models.Task, error) {
	f.lastQuery = q
	if f.taskErr != nil {
		return nil, f.taskErr
	}
	out := make([]models.Task, 0)
	for _, t := range f.tasks {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f fakeTasks) Get(ctx context.Context, ownerID, id string) (*models.Task, error) {
	if f.taskErr != nil {
		return nil, f.taskErr
	}
	for _, t := range f.tasks {
		if t.ID == id && t.OwnerID == ownerID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f fakeTasks) Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error) {
	f.updateCalls++
	t, err := f.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := patch.Apply(t); err != nil {
		return nil, err
	}
	for i, row := range f.tasks {
		if row.ID == id {
			f.tasks[i] = t
		}
	}
	return t, nil
}

func (f fakeTasks) Delete(ctx context.Context, ownerID, id string) (*models.Task, error) {
	for i, t := range f.tasks {
		if t.ID == id && t.OwnerID == ownerID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return t, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func newTestServer(t *testing.T) (*Server, *fakeBackend) {
	t.Helper()
	b := newFakeBackend()
	s := NewServer(Options{CORSOrigins: []string{"*"}, ShutdownTimeout: time.Second},
		logging.Nop{}, b, b, fakeTasks{b}, fakePinger{})
	return s, b
}

// do sends a request through the router and returns the recorder.
func do(t *testing.T, s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}
