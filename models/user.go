package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Firstname   string               `json:"firstname" bson:"firstname"`
	Lastname    string               `json:"lastname" bson:"lastname"`
	Email       string               `json:"email" bson:"email"`
	PhoneNumber string               `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Password    string               `json:"password,omitempty" bson:"password"`
	Picture     string               `json:"picture" bson:"picture"`
	Thumbnail   string               `json:"thumbnail" bson:"thumbnail"`
	Properties  []primitive.ObjectID `json:"properties" bson:"properties"`
	Whitelist   []primitive.ObjectID `json:"whitelist" bson:"whitelist"`
	Tokens      []string             `json:"-" bson:"tokens"`
	Role        string               `json:"role" bson:"role"`
	Occupation  string               `json:"occupation,omitempty" bson:"occupation,omitempty"`
	Location    string               `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt   time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" bson:"updated_at"`
}

// HasWhitelisted reports whether the given user id is in this user's whitelist.
func (u User) HasWhitelisted(id primitive.ObjectID) bool {
	for _, w := range u.Whitelist {
		if w == id {
			return true
		}
	}
	return false
}

// UserSummary is the trimmed view returned when resolving whitelist members.
type UserSummary struct {
	ID        primitive.ObjectID `json:"id"`
	Firstname string             `json:"firstname"`
	Lastname  string             `json:"lastname"`
	Email     string             `json:"email"`
	Picture   string             `json:"picture"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Picture:   u.Picture,
	}
}

type RegisterRequest struct {
	Firstname   string `json:"firstname" validate:"required"`
	Lastname    string `json:"lastname" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password" validate:"required,min=8"`
	Picture     string `json:"picture"`
	Thumbnail   string `json:"thumbnail"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateUserRequest carries the profile fields a user may change. Empty
// fields are left untouched. A non-empty Password re-hashes the credential
// and revokes every active session.
type UpdateUserRequest struct {
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Occupation string `json:"occupation"`
	Location   string `json:"location"`
}
