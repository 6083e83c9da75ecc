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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rejoice2374/Homely-API/config"
	"github.com/Rejoice2374/Homely-API/models"
)

// MongoUserStore implements UserStore backed by a MongoDB collection.
type MongoUserStore struct {
	collection *mongo.Collection
}

func NewUserStore() *MongoUserStore {
	collectionName := os.Getenv("MONGODB_COLLECTION_USER")
	if collectionName == "" {
		collectionName = "user"
	}
	return &MongoUserStore{
		collection: config.GetCollection(collectionName),
	}
}

// EnsureIndexes creates the unique email index.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("store: ensure user indexes: %w", err)
	}
	return nil
}

func (s *MongoUserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Properties == nil {
		user.Properties = []primitive.ObjectID{}
	}
	if user.Whitelist == nil {
		user.Whitelist = []primitive.ObjectID{}
	}
	if user.Tokens == nil {
		user.Tokens = []string{}
	}
	_, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("store: create user: %w", err)
	}
	return user, nil
}

func (s *MongoUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("store: get user by id: %w", err)
	}
	return user, nil
}

func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("store: get user by email: %w", err)
	}
	return user, nil
}

func (s *MongoUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Firstname != "" {
		set["firstname"] = upd.Firstname
	}
	if upd.Lastname != "" {
		set["lastname"] = upd.Lastname
	}
	if upd.Email != "" {
		set["email"] = upd.Email
	}
	if upd.Password != "" {
		set["password"] = upd.Password
	}
	if upd.Occupation != "" {
		set["occupation"] = upd.Occupation
	}
	if upd.Location != "" {
		set["location"] = upd.Location
	}

	after := options.After
	var user models.User
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("store: update profile: %w", err)
	}
	return user, nil
}

func (s *MongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("store: delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) AppendProperty(ctx context.Context, userID, propertyID primitive.ObjectID) error {
	res, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"properties": propertyID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("store: append property: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) SetWhitelist(ctx context.Context, userID primitive.ObjectID, whitelist []primitive.ObjectID) error {
	if whitelist == nil {
		whitelist = []primitive.ObjectID{}
	}
	res, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"whitelist": whitelist, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("store: set whitelist: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) AppendToken(ctx context.Context, userID primitive.ObjectID, token string) error {
	res, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"tokens": token}},
	)
	if err != nil {
		return fmt.Errorf("store: append token: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) RemoveToken(ctx context.Context, userID primitive.ObjectID, token string) error {
	res, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"tokens": token}},
	)
	if err != nil {
		return fmt.Errorf("store: remove token: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) ClearTokens(ctx context.Context, userID primitive.ObjectID) error {
	res, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"tokens": []string{}}},
	)
	if err != nil {
		return fmt.Errorf("store: clear tokens: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
