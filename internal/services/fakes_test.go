package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NikhilKumarMandal/todo-backend/internal/models"
	"github.com/NikhilKumarMandal/todo-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo mirrors the mongo repository contract in memory, including
// password hashing at the persistence boundary.
type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	hashed, err := models.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	for _, u := range r.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*models.User, error) {
	for _, u := range r.users {
		if u.ForgotPasswordToken == hash && u.ForgotPasswordExpiry.After(now) {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdateAccount(ctx context.Context, id primitive.ObjectID, fullname, email string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.FullName = fullname
	u.Email = email
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, plain string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	hashed, err := models.HashPassword(plain)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

func (r *fakeUserRepo) ResetPassword(ctx context.Context, id primitive.ObjectID, plain string) error {
	if err := r.UpdatePassword(ctx, id, plain); err != nil {
		return err
	}
	u := r.users[id]
	u.ForgotPasswordToken = ""
	u.ForgotPasswordExpiry = time.Time{}
	return nil
}

func (r *fakeUserRepo) SetResetToken(ctx context.Context, id primitive.ObjectID, hash string, expiry time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ForgotPasswordToken = hash
	u.ForgotPasswordExpiry = expiry
	return nil
}

func (r *fakeUserRepo) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *fakeUserRepo) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	if u, ok := r.users[id]; ok {
		u.RefreshToken = ""
	}
	return nil
}

func (r *fakeUserRepo) SetAvatar(ctx context.Context, id primitive.ObjectID, avatar models.Avatar) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Avatar = avatar
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

type fakeMedia struct {
	failUpload bool
	failDelete bool
	uploads    []string
	deleted    []string
}

func (m *fakeMedia) UploadAvatar(ctx context.Context, filename, contentType string, data []byte) (string, string, error) {
	if m.failUpload {
		return "", "", errors.New("upload rejected")
	}
	key := fmt.Sprintf("avatars/%d_%s", len(m.uploads), filename)
	m.uploads = append(m.uploads, key)
	return "https://cdn.test/" + key, key, nil
}

func (m *fakeMedia) Delete(ctx context.Context, publicID string) error {
	if m.failDelete {
		return errors.New("delete rejected")
	}
	m.deleted = append(m.deleted, publicID)
	return nil
}

type sentMail struct {
	to      string
	subject string
	html    string
}

type fakeMailer struct {
	fail bool
	sent []sentMail
}

func (m *fakeMailer) SendEmail(ctx context.Context, to, subject, html string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, html: html})
	return nil
}

func (m *fakeMailer) IsConfigured() bool { return !m.fail }

// fakeTodoRepo keeps todos in memory and reproduces the list contract:
// case-insensitive title substring, exact completion match, newest update
// first.
type fakeTodoRepo struct {
	todos map[primitive.ObjectID]*models.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: map[primitive.ObjectID]*models.Todo{}}
}

func cloneTodo(t *models.Todo) *models.Todo {
	c := *t
	return &c
}

func (r *fakeTodoRepo) seed(t *models.Todo) {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	r.todos[t.ID] = cloneTodo(t)
}

func (r *fakeTodoRepo) Create(ctx context.Context, t *models.Todo) error {
	t.ID = primitive.NewObjectID()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	r.todos[t.ID] = cloneTodo(t)
	return nil
}

func (r *fakeTodoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneTodo(t), nil
}

func (r *fakeTodoRepo) List(ctx context.Context, query string, complete *bool) ([]models.Todo, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Todo{}
	for _, t := range r.todos {
		if q != "" && !strings.Contains(strings.ToLower(t.Title), q) {
			continue
		}
		if complete != nil && t.IsComplete != *complete {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *fakeTodoRepo) Update(ctx context.Context, id primitive.ObjectID, title, description string) (*models.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.Title = title
	t.Description = description
	t.UpdatedAt = time.Now().UTC()
	return cloneTodo(t), nil
}

func (r *fakeTodoRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.todos, id)
	return t, nil
}

func (r *fakeTodoRepo) SetComplete(ctx context.Context, id primitive.ObjectID, complete bool) (*models.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.IsComplete = complete
	t.UpdatedAt = time.Now().UTC()
	return cloneTodo(t), nil
}
