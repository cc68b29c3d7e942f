package repository

import (
	"context"
	"time"

	"github.com/NikhilKumarMandal/todo-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) UserRepository {
	col := db.Collection("users")
	// uniqueness of username and email is enforced here, not in the service
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	})
	return &mongoUserRepo{col: col}
}

func (r *mongoUserRepo) Create(ctx context.Context, u *models.User) error {
	hashed, err := models.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}})
}

func (r *mongoUserRepo) FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*models.User, error) {
	return r.findOne(ctx, bson.M{
		"forgot_password_token":  hash,
		"forgot_password_expiry": bson.M{"$gt": now},
	})
}

func (r *mongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) UpdateAccount(ctx context.Context, id primitive.ObjectID, fullname, email string) (*models.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"fullname":   fullname,
		"email":      email,
		"updated_at": time.Now().UTC(),
	}})
}

func (r *mongoUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, plain string) error {
	hashed, err := models.HashPassword(plain)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password":   hashed,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// ResetPassword sets the new password and clears the reset-token fields in
// one atomic update, making the token single-use.
func (r *mongoUserRepo) ResetPassword(ctx context.Context, id primitive.ObjectID, plain string) error {
	hashed, err := models.HashPassword(plain)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"password":   hashed,
			"updated_at": time.Now().UTC(),
		},
		"$unset": bson.M{
			"forgot_password_token":  1,
			"forgot_password_expiry": 1,
		},
	})
	return err
}

func (r *mongoUserRepo) SetResetToken(ctx context.Context, id primitive.ObjectID, hash string, expiry time.Time) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"forgot_password_token":  hash,
		"forgot_password_expiry": expiry,
		"updated_at":             time.Now().UTC(),
	}})
	return err
}

func (r *mongoUserRepo) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"refresh_token": token,
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

func (r *mongoUserRepo) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$unset": bson.M{"refresh_token": 1}})
	return err
}

func (r *mongoUserRepo) SetAvatar(ctx context.Context, id primitive.ObjectID, avatar models.Avatar) (*models.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"avatar":     avatar,
		"updated_at": time.Now().UTC(),
	}})
}

func (r *mongoUserRepo) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
