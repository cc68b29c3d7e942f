package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NikhilKumarMandal/todo-backend/internal/models"
	"github.com/NikhilKumarMandal/todo-backend/internal/repository"
	"github.com/NikhilKumarMandal/todo-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type authService struct {
	users    repository.UserRepository
	tokens   *utils.TokenManager
	media    MediaStore
	mail     Mailer
	baseURL  string
	resetTTL time.Duration
	logger   *zap.SugaredLogger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *utils.TokenManager,
	media MediaStore,
	mail Mailer,
	baseURL string,
	resetTTLMinutes int,
	logger *zap.SugaredLogger,
) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		media:    media,
		mail:     mail,
		baseURL:  strings.TrimRight(baseURL, "/"),
		resetTTL: time.Duration(resetTTLMinutes) * time.Minute,
		logger:   logger,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))

	_, err := s.users.FindByUsernameOrEmail(ctx, username, in.Email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	url, publicID, err := s.media.UploadAvatar(ctx, in.AvatarName, in.AvatarType, in.AvatarData)
	if err != nil || url == "" {
		return nil, ErrUploadFailed
	}

	user := &models.User{
		Username: username,
		Email:    strings.TrimSpace(in.Email),
		FullName: strings.TrimSpace(in.FullName),
		Password: in.Password,
		Avatar:   models.Avatar{URL: url, PublicID: publicID},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.users.FindByUsernameOrEmail(ctx, strings.ToLower(username), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.PasswordMatches(password) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	// clearing an already-cleared token is a no-op, so logout stays idempotent
	return s.users.ClearRefreshToken(ctx, userID)
}

func (s *authService) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(presented)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// a valid signature is not enough: a superseded token no longer matches
	// the single stored value and is rejected
	if user.RefreshToken != presented {
		return nil, ErrInvalidRefreshToken
	}

	return s.issueTokenPair(ctx, user)
}

func (s *authService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if !user.PasswordMatches(oldPassword) {
		return ErrInvalidOldPassword
	}
	return s.users.UpdatePassword(ctx, userID, newPassword)
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	plain, hash, err := utils.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiry := time.Now().UTC().Add(s.resetTTL)
	if err := s.users.SetResetToken(ctx, user.ID, hash, expiry); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/reset-password/%s", s.baseURL, plain)
	html := fmt.Sprintf(
		"<p>Hello %s,</p><p>Reset your password using the link below. It is valid for %d minutes.</p><p><a href=%q>%s</a></p>",
		user.FullName, int(s.resetTTL.Minutes()), resetURL, resetURL,
	)
	if err := s.mail.SendEmail(ctx, user.Email, "Reset your password", html); err != nil {
		// delivery is best-effort: the token is stored either way and the
		// caller still sees success
		s.logger.Warnw("reset email delivery failed", "email", user.Email, "error", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash := utils.HashResetToken(token)
	user, err := s.users.FindByResetTokenHash(ctx, hash, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	return s.users.ResetPassword(ctx, user.ID, newPassword)
}

func (s *authService) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, filename, contentType string, data []byte) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	oldID := user.Avatar.PublicID

	url, publicID, err := s.media.UploadAvatar(ctx, filename, contentType, data)
	if err != nil || url == "" {
		return nil, ErrUploadFailed
	}

	updated, err := s.users.SetAvatar(ctx, userID, models.Avatar{URL: url, PublicID: publicID})
	if err != nil {
		return nil, fmt.Errorf("failed to persist avatar: %w", err)
	}

	// the record already points at the new avatar, so a failed cleanup of
	// the old object must not fail the request
	if oldID != "" {
		if err := s.media.Delete(ctx, oldID); err != nil {
			s.logger.Warnw("failed to delete previous avatar", "public_id", oldID, "error", err)
		}
	}
	return updated, nil
}

func (s *authService) UpdateAccount(ctx context.Context, userID primitive.ObjectID, fullname, email string) (*models.User, error) {
	user, err := s.users.UpdateAccount(ctx, userID, fullname, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return user, nil
}

// issueTokenPair signs a fresh access/refresh pair and persists the refresh
// token, superseding any previously issued one.
func (s *authService) issueTokenPair(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, _, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, _, err := s.tokens.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}
	user.RefreshToken = refresh
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
