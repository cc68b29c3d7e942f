package middleware

import (
	"errors"
	"strings"

	"github.com/NikhilKumarMandal/todo-backend/internal/models"
	"github.com/NikhilKumarMandal/todo-backend/internal/repository"
	"github.com/NikhilKumarMandal/todo-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const userContextKey = "user"

// RequireAuth verifies the access token from the cookie or Authorization
// header and loads the authenticated user into the request context.
func RequireAuth(tokens *utils.TokenManager, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("accessToken")
		if token == "" {
			header := c.Get("Authorization")
			token = strings.TrimPrefix(header, "Bearer ")
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized request")
		}

		claims, err := tokens.ParseAccess(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid access token")
		}
		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid access token")
		}

		user, err := users.FindByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid access token")
			}
			return err
		}

		c.Locals(userContextKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user loaded by RequireAuth. Only valid on routes
// behind the auth gate.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userContextKey).(*models.User)
	return user
}
