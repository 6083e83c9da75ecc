package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rejoice2374/Homely-API/config"
	"github.com/Rejoice2374/Homely-API/models"
)

// MongoWishlistStore implements WishlistStore backed by a MongoDB collection.
// The wishlists collection is the authoritative record of the user↔property
// relation; property.wishlistedBy is derived from it.
type MongoWishlistStore struct {
	collection *mongo.Collection
}

func NewWishlistStore() *MongoWishlistStore {
	collectionName := os.Getenv("MONGODB_COLLECTION_WISHLISTS")
	if collectionName == "" {
		collectionName = "wishlists"
	}
	return &MongoWishlistStore{
		collection: config.GetCollection(collectionName),
	}
}

// EnsureIndexes creates the unique (userId, propertyId) index. The index
// turns the check-then-insert race between concurrent adds into a
// duplicate-key error instead of a silent duplicate entry.
func (s *MongoWishlistStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "propertyId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("store: ensure wishlist indexes: %w", err)
	}
	return nil
}

func (s *MongoWishlistStore) Create(ctx context.Context, entry models.Wishlist) (models.Wishlist, error) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	_, err := s.collection.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Wishlist{}, ErrDuplicateEntry
		}
		return models.Wishlist{}, fmt.Errorf("store: create wishlist entry: %w", err)
	}
	return entry, nil
}

func (s *MongoWishlistStore) Find(ctx context.Context, userID, propertyID primitive.ObjectID) (models.Wishlist, error) {
	var entry models.Wishlist
	err := s.collection.FindOne(ctx, bson.M{"userId": userID, "propertyId": propertyID}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Wishlist{}, ErrNotFound
		}
		return models.Wishlist{}, fmt.Errorf("store: find wishlist entry: %w", err)
	}
	return entry, nil
}

func (s *MongoWishlistStore) DeleteByPair(ctx context.Context, userID, propertyID primitive.ObjectID) (models.Wishlist, error) {
	var entry models.Wishlist
	err := s.collection.FindOneAndDelete(ctx, bson.M{"userId": userID, "propertyId": propertyID}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Wishlist{}, ErrNotFound
		}
		return models.Wishlist{}, fmt.Errorf("store: delete wishlist entry: %w", err)
	}
	return entry, nil
}

func (s *MongoWishlistStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Wishlist, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("store: list wishlist entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.Wishlist
	for cursor.Next(ctx) {
		var entry models.Wishlist
		if err := cursor.Decode(&entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
