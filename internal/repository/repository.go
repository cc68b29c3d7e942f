package repository

import (
	"context"
	"errors"
	"time"

	"github.com/NikhilKumarMandal/todo-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository owns user persistence and password hashing. Plaintext
// passwords cross this boundary exactly once per change and are stored
// hashed.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*models.User, error)
	UpdateAccount(ctx context.Context, id primitive.ObjectID, fullname, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, plain string) error
	ResetPassword(ctx context.Context, id primitive.ObjectID, plain string) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, hash string, expiry time.Time) error
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error
	SetAvatar(ctx context.Context, id primitive.ObjectID, avatar models.Avatar) (*models.User, error)
}

type TodoRepository interface {
	Create(ctx context.Context, t *models.Todo) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Todo, error)
	List(ctx context.Context, query string, complete *bool) ([]models.Todo, error)
	Update(ctx context.Context, id primitive.ObjectID, title, description string) (*models.Todo, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Todo, error)
	SetComplete(ctx context.Context, id primitive.ObjectID, complete bool) (*models.Todo, error)
}
