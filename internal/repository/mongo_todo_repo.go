package repository

import (
	"context"
	"strings"
	"time"

	"github.com/NikhilKumarMandal/todo-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoTodoRepo struct {
	col *mongo.Collection
}

func NewMongoTodoRepo(db *mongo.Database) TodoRepository {
	return &mongoTodoRepo{col: db.Collection("todos")}
}

func (r *mongoTodoRepo) Create(ctx context.Context, t *models.Todo) error {
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

func (r *mongoTodoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	var t models.Todo
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// todoListFilter builds the list filter: case-insensitive substring match on
// title and, when given, an exact match on the completion flag.
func todoListFilter(query string, complete *bool) bson.M {
	filter := bson.M{}
	if q := strings.TrimSpace(query); q != "" {
		filter["title"] = primitive.Regex{Pattern: q, Options: "i"}
	}
	if complete != nil {
		filter["is_complete"] = *complete
	}
	return filter
}

func (r *mongoTodoRepo) List(ctx context.Context, query string, complete *bool) ([]models.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.col.Find(ctx, todoListFilter(query, complete), opts)
	if err != nil {
		return nil, err
	}
	todos := []models.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *mongoTodoRepo) Update(ctx context.Context, id primitive.ObjectID, title, description string) (*models.Todo, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"title":       title,
		"description": description,
		"updated_at":  time.Now().UTC(),
	}})
}

func (r *mongoTodoRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	var t models.Todo
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *mongoTodoRepo) SetComplete(ctx context.Context, id primitive.ObjectID, complete bool) (*models.Todo, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"is_complete": complete,
		"updated_at":  time.Now().UTC(),
	}})
}

func (r *mongoTodoRepo) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Todo, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Todo
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
