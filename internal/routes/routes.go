package routes

import (
	"github.com/NikhilKumarMandal/todo-backend/internal/handlers"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, auth *handlers.AuthHandler, todos *handlers.TodoHandler, gate fiber.Handler) {
	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Post("/register", auth.Register)
	users.Post("/login", auth.Login)
	users.Post("/refresh-token", auth.Refresh)
	users.Post("/forgot-password", auth.ForgotPassword)
	users.Post("/reset-password/:token", auth.ResetPassword)

	users.Post("/logout", gate, auth.Logout)
	users.Post("/change-password", gate, auth.ChangePassword)
	users.Get("/me", gate, auth.CurrentUser)
	users.Patch("/update-account", gate, auth.UpdateAccount)
	users.Patch("/avatar", gate, auth.UpdateAvatar)

	todo := api.Group("/todos", gate)
	todo.Post("/", todos.Create)
	todo.Get("/", todos.List)
	todo.Get("/:todoId", todos.Get)
	todo.Patch("/:todoId", todos.Update)
	todo.Delete("/:todoId", todos.Delete)
	todo.Patch("/toggle/status/:todoId", todos.Toggle)
}
