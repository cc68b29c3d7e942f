package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/NikhilKumarMandal/todo-backend/internal/middleware"
	"github.com/NikhilKumarMandal/todo-backend/internal/services"
	"github.com/NikhilKumarMandal/todo-backend/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type AuthHandler struct {
	svc        services.AuthService
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthHandler(svc services.AuthService, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	fullname := strings.TrimSpace(c.FormValue("fullname"))
	email := strings.TrimSpace(c.FormValue("email"))
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if fullname == "" || email == "" || username == "" || strings.TrimSpace(password) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "All fields are required")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Avatar file is required")
	}
	data, contentType, err := readUpload(fileHeader)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "cannot read avatar file")
	}

	user, err := h.svc.Register(c.Context(), services.RegisterInput{
		FullName:   fullname,
		Email:      email,
		Username:   username,
		Password:   password,
		AvatarName: fileHeader.Filename,
		AvatarType: contentType,
		AvatarData: data,
	})
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, user, "User registered successfully")
}

type loginReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Username == "" && req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "username or email is required")
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	user, pair, err := h.svc.Login(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	h.setAuthCookies(c, pair)
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "User logged in successfully")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.svc.Logout(c.Context(), user.ID); err != nil {
		return err
	}
	clearAuthCookies(c)
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{}, "User is logged out")
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token := c.Cookies("refreshToken")
	if token == "" {
		var req refreshReq
		_ = c.BodyParser(&req)
		token = req.RefreshToken
	}
	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized request")
	}

	pair, err := h.svc.Refresh(c.Context(), token)
	if err != nil {
		return err
	}
	h.setAuthCookies(c, pair)
	return utils.JSONSuccess(c, fiber.StatusOK, pair, "Access token refreshed")
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	user := middleware.CurrentUser(c)
	if err := h.svc.ChangePassword(c.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{}, "Password changed successfully")
}

type forgotPasswordReq struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	if err := h.svc.ForgotPassword(c.Context(), req.Email); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "user with this email does not exist")
		}
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{}, "Password reset email sent")
}

type resetPasswordReq struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	if err := h.svc.ResetPassword(c.Context(), c.Params("token"), req.NewPassword); err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{}, "Password reset successfully")
}

func (h *AuthHandler) UpdateAvatar(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Avatar file is required")
	}
	data, contentType, err := readUpload(fileHeader)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "cannot read avatar file")
	}

	user := middleware.CurrentUser(c)
	updated, err := h.svc.UpdateAvatar(c.Context(), user.ID, fileHeader.Filename, contentType, data)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, updated, "Avatar updated successfully")
}

func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	return utils.JSONSuccess(c, fiber.StatusOK, middleware.CurrentUser(c), "User fetched successfully")
}

type updateAccountReq struct {
	FullName string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) UpdateAccount(c *fiber.Ctx) error {
	var req updateAccountReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	user := middleware.CurrentUser(c)
	updated, err := h.svc.UpdateAccount(c.Context(), user.ID, req.FullName, req.Email)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, updated, "Account details updated successfully")
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, pair *services.TokenPair) {
	now := time.Now()
	c.Cookie(&fiber.Cookie{
		Name:     "accessToken",
		Value:    pair.AccessToken,
		Expires:  now.Add(h.accessTTL),
		HTTPOnly: true,
		Secure:   true,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refreshToken",
		Value:    pair.RefreshToken,
		Expires:  now.Add(h.refreshTTL),
		HTTPOnly: true,
		Secure:   true,
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{"accessToken", "refreshToken"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  expired,
			HTTPOnly: true,
			Secure:   true,
		})
	}
}

func validationError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  fiber.StatusBadRequest,
		"message": "validation failed",
		"errors":  utils.FormatValidationErrors(err),
	})
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
