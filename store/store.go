// Package store is the persistence boundary. Each store exposes plain
// find/create/update/delete operations plus targeted mutators for the
// denormalized reference fields (user.properties, user.whitelist,
// property.wishlistedBy, user.tokens). Those mutators exist so that the
// relations engine and session manager are the only writers of redundant
// state; no multi-document transaction is assumed anywhere.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Rejoice2374/Homely-API/models"
)

var (
	// ErrNotFound signals that the referenced document does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateEntry signals a unique-index violation on (userId, propertyId).
	ErrDuplicateEntry = errors.New("store: duplicate wishlist entry")
	// ErrDuplicateEmail signals that the email is already registered.
	ErrDuplicateEmail = errors.New("store: email already exists")
)

// ProfileUpdate carries the mutable profile fields. Empty strings leave the
// stored value untouched.
type ProfileUpdate struct {
	Firstname  string
	Lastname   string
	Email      string
	Password   string
	Occupation string
	Location   string
}

type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// AppendProperty adds a listing id to the user's properties set.
	AppendProperty(ctx context.Context, userID, propertyID primitive.ObjectID) error
	// SetWhitelist replaces the user's whitelist with the given ids.
	SetWhitelist(ctx context.Context, userID primitive.ObjectID, whitelist []primitive.ObjectID) error

	AppendToken(ctx context.Context, userID primitive.ObjectID, token string) error
	RemoveToken(ctx context.Context, userID primitive.ObjectID, token string) error
	ClearTokens(ctx context.Context, userID primitive.ObjectID) error
}

type PropertyStore interface {
	Create(ctx context.Context, property models.Property) (models.Property, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Property, error)
	Update(ctx context.Context, id primitive.ObjectID, property models.Property) (models.Property, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByStatus(ctx context.Context, status string) ([]models.Property, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Property, error)

	// AppendWishlistRef adds a wishlist entry id to the property's
	// wishlistedBy collection.
	AppendWishlistRef(ctx context.Context, propertyID, entryID primitive.ObjectID) error
	// RemoveWishlistRef filters a wishlist entry id out of wishlistedBy.
	RemoveWishlistRef(ctx context.Context, propertyID, entryID primitive.ObjectID) error
}

type WishlistStore interface {
	Create(ctx context.Context, entry models.Wishlist) (models.Wishlist, error)
	Find(ctx context.Context, userID, propertyID primitive.ObjectID) (models.Wishlist, error)
	// DeleteByPair removes the entry for (userID, propertyID) and returns it.
	DeleteByPair(ctx context.Context, userID, propertyID primitive.ObjectID) (models.Wishlist, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Wishlist, error)
}
