package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Avatar is the stored reference to an uploaded profile image. PublicID is
// the object key in the media store and is what deletion operates on.
type Avatar struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id,omitempty" json:"public_id,omitempty"`
}

// User is a registered account. Password holds a bcrypt hash, never
// plaintext; the refresh token and reset-token fields never serialize to
// JSON.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username             string             `bson:"username" json:"username"`
	Email                string             `bson:"email" json:"email"`
	FullName             string             `bson:"fullname" json:"fullname"`
	Password             string             `bson:"password" json:"-"`
	Avatar               Avatar             `bson:"avatar" json:"avatar"`
	ForgotPasswordToken  string             `bson:"forgot_password_token,omitempty" json:"-"`
	ForgotPasswordExpiry time.Time          `bson:"forgot_password_expiry,omitempty" json:"-"`
	RefreshToken         string             `bson:"refresh_token,omitempty" json:"-"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updated_at"`
}

// PasswordMatches compares a candidate plaintext against the stored hash.
func (u *User) PasswordMatches(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// HashPassword produces the salted one-way hash stored in User.Password.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
