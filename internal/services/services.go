package services

import (
	"context"
	"errors"

	"github.com/NikhilKumarMandal/todo-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserExists          = errors.New("user with email or username already exists")
	ErrUserNotFound        = errors.New("user does not exist")
	ErrInvalidCredentials  = errors.New("invalid user credentials")
	ErrInvalidOldPassword  = errors.New("invalid old password")
	ErrInvalidRefreshToken = errors.New("refresh token is expired or used")
	ErrResetTokenInvalid   = errors.New("reset token is invalid or expired")
	ErrUploadFailed        = errors.New("avatar upload failed")
	ErrInvalidTodoID       = errors.New("invalid todo id")
	ErrTodoNotFound        = errors.New("todo does not exist")
	ErrInternal            = errors.New("internal server error")
)

// MediaStore is the media gateway contract: upload returns a public URL and
// an identifier usable for later deletion.
type MediaStore interface {
	UploadAvatar(ctx context.Context, filename, contentType string, data []byte) (url, publicID string, err error)
	Delete(ctx context.Context, publicID string) error
}

// Mailer is the mail gateway contract. Delivery failures on non-critical
// paths are logged, not surfaced.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, html string) error
	IsConfigured() bool
}

type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	AvatarName string
	AvatarType string
	AvatarData []byte
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, email, password string) (*models.User, *TokenPair, error)
	Logout(ctx context.Context, userID primitive.ObjectID) error
	Refresh(ctx context.Context, presented string) (*TokenPair, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	UpdateAvatar(ctx context.Context, userID primitive.ObjectID, filename, contentType string, data []byte) (*models.User, error)
	UpdateAccount(ctx context.Context, userID primitive.ObjectID, fullname, email string) (*models.User, error)
}

type TodoService interface {
	Create(ctx context.Context, title, description string) (*models.Todo, error)
	List(ctx context.Context, query string, complete *bool) ([]models.Todo, error)
	Get(ctx context.Context, todoID string) (*models.Todo, error)
	Update(ctx context.Context, todoID, title, description string) (*models.Todo, error)
	Delete(ctx context.Context, todoID string) (*models.Todo, error)
	Toggle(ctx context.Context, todoID string) (*models.Todo, error)
}
