package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Rejoice2374/Homely-API/config"
	"github.com/Rejoice2374/Homely-API/models"
)

// MongoPropertyStore implements PropertyStore backed by a MongoDB collection.
type MongoPropertyStore struct {
	collection *mongo.Collection
}

func NewPropertyStore() *MongoPropertyStore {
	collectionName := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if collectionName == "" {
		collectionName = "properties"
	}
	return &MongoPropertyStore{
		collection: config.GetCollection(collectionName),
	}
}

func (s *MongoPropertyStore) Create(ctx context.Context, property models.Property) (models.Property, error) {
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	if property.PropertyImages == nil {
		property.PropertyImages = []string{}
	}
	if property.WishlistedBy == nil {
		property.WishlistedBy = []primitive.ObjectID{}
	}
	_, err := s.collection.InsertOne(ctx, property)
	if err != nil {
		return models.Property{}, fmt.Errorf("store: create property: %w", err)
	}
	return property, nil
}

func (s *MongoPropertyStore) GetByID(ctx context.Context, id primitive.ObjectID) (models.Property, error) {
	var property models.Property
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Property{}, ErrNotFound
		}
		return models.Property{}, fmt.Errorf("store: get property by id: %w", err)
	}
	return property, nil
}

// Update replaces the mutable listing fields. The owner reference, the
// wishlistedBy collection and the creation timestamp are never touched here.
func (s *MongoPropertyStore) Update(ctx context.Context, id primitive.ObjectID, property models.Property) (models.Property, error) {
	set := bson.M{
		"propertyName":        property.PropertyName,
		"propertyType":        property.PropertyType,
		"propertyDescription": property.PropertyDescription,
		"leaseType":           property.LeaseType,
		"leaseDuration":       property.LeaseDuration,
		"propertyPrice":       property.PropertyPrice,
		"propertyLocation":    property.PropertyLocation,
		"propertyImages":      property.PropertyImages,
		"propertyStatus":      property.PropertyStatus,
		"updatedAt":           time.Now(),
	}
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return models.Property{}, fmt.Errorf("store: update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.Property{}, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *MongoPropertyStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("store: delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPropertyStore) ListByStatus(ctx context.Context, status string) ([]models.Property, error) {
	return s.list(ctx, bson.M{"propertyStatus": status})
}

func (s *MongoPropertyStore) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Property, error) {
	return s.list(ctx, bson.M{"userId": ownerID})
}

func (s *MongoPropertyStore) list(ctx context.Context, filter bson.M) ([]models.Property, error) {
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("store: list properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	for cursor.Next(ctx) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}
	return properties, nil
}

func (s *MongoPropertyStore) AppendWishlistRef(ctx context.Context, propertyID, entryID primitive.ObjectID) error {
	res, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": propertyID},
		bson.M{"$addToSet": bson.M{"wishlistedBy": entryID}},
	)
	if err != nil {
		return fmt.Errorf("store: append wishlist ref: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPropertyStore) RemoveWishlistRef(ctx context.Context, propertyID, entryID primitive.ObjectID) error {
	res, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": propertyID},
		bson.M{"$pull": bson.M{"wishlistedBy": entryID}},
	)
	if err != nil {
		return fmt.Errorf("store: remove wishlist ref: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
