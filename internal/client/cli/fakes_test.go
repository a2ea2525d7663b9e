package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskmanager/internal/client/api"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

var errBoom = errors.New("boom")

type fakeAPI struct {
	user  models.User
	token string
	tasks []models.Task

	err       error
	lastToken string
	lastQuery models.TaskQuery
	lastPatch models.TaskPatch
	lastCreds models.Credentials
	lastNew   models.NewUser
	logoutAll bool
}

func (f *fakeAPI) auth(token string) error {
	f.lastToken = token
	if f.err != nil {
		return f.err
	}
	if token != f.token {
		return &api.Error{StatusCode: http.StatusUnauthorized, Message: "Please authenticate."}
	}
	return nil
}

func (f *fakeAPI) Register(_ context.Context, u models.NewUser) (*models.AuthResult, error) {
	f.lastNew = u
	if f.err != nil {
		return nil, f.err
	}
	f.user = models.User{ID: "u1", Name: u.Name, Email: u.Email, Age: u.Age}
	return &models.AuthResult{User: &f.user, Token: f.token}, nil
}

func (f *fakeAPI) Login(_ context.Context, c models.Credentials) (*models.AuthResult, error) {
	f.lastCreds = c
	if f.err != nil {
		return nil, f.err
	}
	f.user.Email = c.Email
	return &models.AuthResult{User: &f.user, Token: f.token}, nil
}

func (f *fakeAPI) Logout(_ context.Context, token string) error {
	return f.auth(token)
}

func (f *fakeAPI) LogoutAll(_ context.Context, token string) error {
	f.logoutAll = true
	return f.auth(token)
}

func (f *fakeAPI) Me(_ context.Context, token string) (*models.User, error) {
	if err := f.auth(token); err != nil {
		return nil, err
	}
	return &f.user, nil
}

func (f *fakeAPI) CreateTask(_ context.Context, token string, t models.NewTask) (*models.Task, error) {
	if err := f.auth(token); err != nil {
		return nil, err
	}
	task := models.Task{ID: "t" + string(rune('1'+len(f.tasks))), Description: t.Description}
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *fakeAPI) ListTasks(_ context.Context, token string, q models.TaskQuery) ([]models.Task, error) {
	f.lastQuery = q
	if err := f.auth(token); err != nil {
		return nil, err
	}
	return f.tasks, nil
}

func (f *fakeAPI) find(id string) (int, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, &api.Error{StatusCode: http.StatusNotFound, Message: "Not found"}
}

func (f *fakeAPI) UpdateTask(_ context.Context, token, id string, p models.TaskPatch) (*models.Task, error) {
	f.lastPatch = p
	if err := f.auth(token); err != nil {
		return nil, err
	}
	i, err := f.find(id)
	if err != nil {
		return nil, err
	}
	if p.Completed != nil {
		f.tasks[i].Completed = *p.Completed
	}
	t := f.tasks[i]
	return &t, nil
}

func (f *fakeAPI) DeleteTask(_ context.Context, token, id string) (*models.Task, error) {
	if err := f.auth(token); err != nil {
		return nil, err
	}
	i, err := f.find(id)
	if err != nil {
		return nil, err
	}
	t := f.tasks[i]
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return &t, nil
}

type memSession struct {
	email, token string
	err          error
}

func (m *memSession) Token(context.Context) (string, error) { return m.token, m.err }
func (m *memSession) Email(context.Context) (string, error) { return m.email, m.err }

func (m *memSession) Save(_ context.Context, email, token string) error {
	if m.err != nil {
		return m.err
	}
	m.email, m.token = email, token
	return nil
}

func (m *memSession) Clear(context.Context) error {
	m.email, m.token = "", ""
	return m.err
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = orig })
}

func newTestApp(input string) (*App, *fakeAPI, *memSession, *bytes.Buffer) {
	f := &fakeAPI{token: "tok"}
	s := &memSession{}
	out := &bytes.Buffer{}
	return newApp(f, s, strings.NewReader(input), out), f, s, out
}
