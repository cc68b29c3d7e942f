package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/NikhilKumarMandal/todo-backend/internal/models"
	"github.com/NikhilKumarMandal/todo-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type todoService struct {
	todos repository.TodoRepository
}

func NewTodoService(todos repository.TodoRepository) TodoService {
	return &todoService{todos: todos}
}

func (s *todoService) Create(ctx context.Context, title, description string) (*models.Todo, error) {
	todo := &models.Todo{
		Title:       title,
		Description: description,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

func (s *todoService) List(ctx context.Context, query string, complete *bool) ([]models.Todo, error) {
	todos, err := s.todos.List(ctx, query, complete)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

func (s *todoService) Get(ctx context.Context, todoID string) (*models.Todo, error) {
	id, err := parseTodoID(todoID)
	if err != nil {
		return nil, err
	}
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, mapTodoErr(err)
	}
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, todoID, title, description string) (*models.Todo, error) {
	id, err := parseTodoID(todoID)
	if err != nil {
		return nil, err
	}
	todo, err := s.todos.Update(ctx, id, title, description)
	if err != nil {
		return nil, mapTodoErr(err)
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, todoID string) (*models.Todo, error) {
	id, err := parseTodoID(todoID)
	if err != nil {
		return nil, err
	}
	todo, err := s.todos.Delete(ctx, id)
	if err != nil {
		return nil, mapTodoErr(err)
	}
	return todo, nil
}

func (s *todoService) Toggle(ctx context.Context, todoID string) (*models.Todo, error) {
	id, err := parseTodoID(todoID)
	if err != nil {
		return nil, err
	}
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, mapTodoErr(err)
	}
	toggled, err := s.todos.SetComplete(ctx, id, !todo.IsComplete)
	if err != nil {
		return nil, mapTodoErr(err)
	}
	return toggled, nil
}

func parseTodoID(todoID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(todoID)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidTodoID
	}
	return id, nil
}

func mapTodoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTodoNotFound
	}
	return fmt.Errorf("todo store error: %w", err)
}
