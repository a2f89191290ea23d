package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edulaunch/edumarket/internal/models"
)

// The allow-list lives in a single well-known settings document.
const rolesDocID = "roles"

// AdminRepo is the Mongo-backed store for the admin allow-list document.
type AdminRepo struct {
	col *mongo.Collection
}

func NewAdminRepo(database *mongo.Database) *AdminRepo {
	return &AdminRepo{col: database.Collection("settings")}
}

// GetSettings returns (nil, nil) when the allow-list document has never been
// created.
func (r *AdminRepo) GetSettings(ctx context.Context) (*models.AdminSettings, error) {
	var settings models.AdminSettings
	err := r.col.FindOne(ctx, bson.M{"_id": rolesDocID}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read admin settings: %w", err)
	}
	return &settings, nil
}

// CreateSettings creates the allow-list document with a single member.
func (r *AdminRepo) CreateSettings(ctx context.Context, email string) error {
	_, err := r.col.InsertOne(ctx, models.AdminSettings{
		ID:          rolesDocID,
		AdminEmails: []string{email},
	})
	if err != nil {
		return fmt.Errorf("failed to create admin settings: %w", err)
	}
	return nil
}

func (r *AdminRepo) AddEmail(ctx context.Context, email string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": rolesDocID}, bson.M{
		"$addToSet": bson.M{"adminEmails": email},
	})
	if err != nil {
		return fmt.Errorf("failed to add admin: %w", err)
	}
	return nil
}

// RemoveEmail is an unconditional set-remove; pulling a non-member changes
// nothing and is not an error.
func (r *AdminRepo) RemoveEmail(ctx context.Context, email string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": rolesDocID}, bson.M{
		"$pull": bson.M{"adminEmails": email},
	})
	if err != nil {
		return fmt.Errorf("failed to remove admin: %w", err)
	}
	return nil
}
