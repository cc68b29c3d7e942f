package server

import (
	"errors"

	"github.com/NikhilKumarMandal/todo-backend/internal/config"
	"github.com/NikhilKumarMandal/todo-backend/internal/handlers"
	"github.com/NikhilKumarMandal/todo-backend/internal/middleware"
	"github.com/NikhilKumarMandal/todo-backend/internal/routes"
	"github.com/NikhilKumarMandal/todo-backend/internal/services"
	"github.com/NikhilKumarMandal/todo-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

// New builds the Fiber application: timeouts, CORS, request logging, the
// centralized error boundary, and the route table.
func New(cfg *config.Config, auth *handlers.AuthHandler, todos *handlers.TodoHandler, gate fiber.Handler, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
		ErrorHandler: errorHandler(logger),
	})

	app.Use(cors.New())
	app.Use(middleware.RequestLogger(logger.Sugar()))

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	routes.Setup(app, auth, todos, gate)

	return app
}

// errorHandler translates every error escaping a handler into the wire
// error envelope. Unknown errors become a 500 without leaking detail.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, services.ErrUserExists):
			status = fiber.StatusConflict
			message = err.Error()
		case errors.Is(err, services.ErrUserNotFound):
			status = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, services.ErrInvalidCredentials):
			status = fiber.StatusUnauthorized
			message = err.Error()
		case errors.Is(err, services.ErrInvalidOldPassword):
			status = fiber.StatusBadRequest
			message = err.Error()
		case errors.Is(err, services.ErrInvalidRefreshToken):
			status = fiber.StatusUnauthorized
			message = err.Error()
		case errors.Is(err, services.ErrResetTokenInvalid):
			status = fiber.StatusUnauthorized
			message = err.Error()
		case errors.Is(err, services.ErrUploadFailed):
			status = fiber.StatusBadRequest
			message = err.Error()
		case errors.Is(err, services.ErrInvalidTodoID):
			status = fiber.StatusBadRequest
			message = "Invalid Todo id"
		case errors.Is(err, services.ErrTodoNotFound):
			status = fiber.StatusNotFound
			message = err.Error()
		default:
			logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}

		return utils.JSONError(c, status, message)
	}
}
