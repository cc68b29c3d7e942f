package handlers

import (
	"strconv"
	"strings"

	"github.com/NikhilKumarMandal/todo-backend/internal/services"
	"github.com/NikhilKumarMandal/todo-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type TodoHandler struct {
	svc services.TodoService
}

func NewTodoHandler(svc services.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

type todoReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *TodoHandler) Create(c *fiber.Ctx) error {
	var req todoReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Todo title is required")
	}

	todo, err := h.svc.Create(c.Context(), req.Title, req.Description)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, todo, "Todo created successfully")
}

func (h *TodoHandler) List(c *fiber.Ctx) error {
	var complete *bool
	if raw := c.Query("complete"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "complete must be a boolean")
		}
		complete = &v
	}

	todos, err := h.svc.List(c.Context(), c.Query("query"), complete)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, todos, "Todos fetched successfully")
}

func (h *TodoHandler) Get(c *fiber.Ctx) error {
	todo, err := h.svc.Get(c.Context(), c.Params("todoId"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, todo, "Todo fetched successfully")
}

func (h *TodoHandler) Update(c *fiber.Ctx) error {
	var req todoReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Todo title is required")
	}

	todo, err := h.svc.Update(c.Context(), c.Params("todoId"), req.Title, req.Description)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, todo, "Todo updated successfully")
}

func (h *TodoHandler) Delete(c *fiber.Ctx) error {
	todo, err := h.svc.Delete(c.Context(), c.Params("todoId"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"deletedTodo": todo}, "Todo deleted successfully")
}

func (h *TodoHandler) Toggle(c *fiber.Ctx) error {
	todo, err := h.svc.Toggle(c.Context(), c.Params("todoId"))
	if err != nil {
		return err
	}
	message := "Todo marked undone"
	if todo.IsComplete {
		message = "Todo marked done"
	}
	return utils.JSONSuccess(c, fiber.StatusOK, todo, message)
}
