package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wishlist records that a user has favorited a property. At most one entry
// exists per (userId, propertyId) pair; the wishlists collection carries a
// unique index on the pair.
type Wishlist struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	PropertyID primitive.ObjectID `json:"propertyId" bson:"propertyId"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
