package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edulaunch/edumarket/internal/models"
)

// UserRepo is the Mongo-backed user directory.
type UserRepo struct {
	col *mongo.Collection
}

func NewUserRepo(database *mongo.Database) *UserRepo {
	return &UserRepo{col: database.Collection("users")}
}

func (r *UserRepo) Insert(ctx context.Context, user *models.User) (string, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return user.ID.Hex(), nil
}

// FindByEmail returns (nil, nil) when no user has ever signed up under the
// email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// UpsertProfile merges the profile fields under the auth user id, stamping
// lastLogin. Safe to call on every authenticated session.
func (r *UserRepo) UpsertProfile(ctx context.Context, userID string, email, fullName, imageURL string, lastLogin time.Time) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	set := bson.M{
		"email":     email,
		"lastLogin": lastLogin,
	}
	if fullName != "" {
		set["fullName"] = fullName
	}
	if imageURL != "" {
		set["imageUrl"] = imageURL
	}

	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to sync user profile: %w", err)
	}
	return nil
}
