package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/dbx"
	"github.com/dmitrijs2005/taskmanager/internal/server/config"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/users"
	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{SecretKey: "k", BcryptCost: 4}
}

// ---- in-memory repositories ----

type memUsers struct {
	byID map[string]*models.User

	createErr, getErr, updateErr, deleteErr error
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	cp := *u
	m.byID[u.ID] = &cp
	return u, nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsers) Update(ctx context.Context, u *models.User) (*models.User, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	if _, ok := m.byID[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	for id, existing := range m.byID {
		if id != u.ID && existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.UpdatedAt = time.Now()
	cp := *u
	m.byID[u.ID] = &cp
	return u, nil
}

func (m *memUsers) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.byID, id)
	return nil
}

type memTokens struct {
	byUser map[string][]string

	addErr, existsErr, removeErr error
}

func (m *memTokens) Add(ctx context.Context, userID, token string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.byUser[userID] = append(m.byUser[userID], token)
	return nil
}

func (m *memTokens) Exists(ctx context.Context, userID, token string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, t := range m.byUser[userID] {
		if t == token {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTokens) Remove(ctx context.Context, userID, token string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	kept := m.byUser[userID][:0]
	for _, t := range m.byUser[userID] {
		if t != token {
			kept = append(kept, t)
		}
	}
	m.byUser[userID] = kept
	return nil
}

func (m *memTokens) RemoveAll(ctx context.Context, userID string) (int64, error) {
	if m.removeErr != nil {
		return 0, m.removeErr
	}
	n := len(m.byUser[userID])
	delete(m.byUser, userID)
	return int64(n), nil
}

func (m *memTokens) List(ctx context.Context, userID string) ([]string, error) {
	return append([]string{}, m.byUser[userID]...), nil
}

type memTasks struct {
	rows []*models.Task
	seq  int

	err error
}

func (m *memTasks) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.seq++
	t.ID = uuid.NewString()
	t.CreatedAt = time.Unix(int64(m.seq), 0)
	t.UpdatedAt = t.CreatedAt
	cp := *t
	m.rows = append(m.rows, &cp)
	return t, nil
}

func (m *memTasks) List(ctx context.Context, ownerID string, q models.TaskQuery) ([]models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Task, 0)
	for _, t := range m.rows {
		if t.OwnerID != ownerID {
			continue
		}
		if q.Completed != nil && t.Completed != *q.Completed {
			continue
		}
		out = append(out, *t)
	}
	if q.SortBy == "description" {
		sort.SliceStable(out, func(i, j int) bool {
			if q.SortDesc {
				return out[i].Description > out[j].Description
			}
			return out[i].Description < out[j].Description
		})
	}
	if q.Skip > 0 {
		out = out[min(q.Skip, len(out)):]
	}
	if q.Limit > 0 {
		out = out[:min(q.Limit, len(out))]
	}
	return out, nil
}

func (m *memTasks) find(ownerID, id string) (int, bool) {
	for i, t := range m.rows {
		if t.ID == id && t.OwnerID == ownerID {
			return i, true
		}
	}
	return 0, false
}

func (m *memTasks) Get(ctx context.Context, ownerID, id string) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	i, ok := m.find(ownerID, id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *m.rows[i]
	return &cp, nil
}

func (m *memTasks) Update(ctx context.Context, t *models.Task) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	i, ok := m.find(t.OwnerID, t.ID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	t.UpdatedAt = t.UpdatedAt.Add(time.Second)
	cp := *t
	m.rows[i] = &cp
	return t, nil
}

func (m *memTasks) Delete(ctx context.Context, ownerID, id string) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	i, ok := m.find(ownerID, id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	t := m.rows[i]
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return t, nil
}

func (m *memTasks) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	kept := m.rows[:0]
	for _, t := range m.rows {
		if t.OwnerID == ownerID {
			n++
			continue
		}
		kept = append(kept, t)
	}
	m.rows = kept
	return n, nil
}

type fakeRepoManager struct {
	users  *memUsers
	tokens *memTokens
	tasks  *memTasks
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:  &memUsers{byID: map[string]*models.User{}},
		tokens: &memTokens{byUser: map[string][]string{}},
		tasks:  &memTasks{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.users }
func (m *fakeRepoManager) Tokens(db dbx.DBTX) tokens.Repository         { return m.tokens }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasks.Repository           { return m.tasks }

func itoa(i int) string { return strconv.Itoa(i) }
