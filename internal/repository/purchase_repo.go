package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edulaunch/edumarket/internal/models"
)

var ErrRequestNotFound = errors.New("purchase request not found")

// PurchaseRepo is the Mongo-backed store for the purchase request ledger.
// Requests are only ever inserted and status-flipped, never deleted.
type PurchaseRepo struct {
	col *mongo.Collection
}

func NewPurchaseRepo(database *mongo.Database) *PurchaseRepo {
	return &PurchaseRepo{col: database.Collection("purchaseRequests")}
}

func (r *PurchaseRepo) Insert(ctx context.Context, request *models.PurchaseRequest) (string, error) {
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to insert purchase request: %w", err)
	}
	return request.ID.Hex(), nil
}

// FindByStatus returns requests in the given status, most recent first.
func (r *PurchaseRepo) FindByStatus(ctx context.Context, status string) ([]models.PurchaseRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.PurchaseRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode purchase requests: %w", err)
	}
	return requests, nil
}

func (r *PurchaseRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count purchase requests: %w", err)
	}
	return count, nil
}

// SetStatus flips the request's status, but only when the current status is
// one of allowedFrom. The boolean reports whether a document matched; a
// request already sitting in newStatus still matches when newStatus is
// included in allowedFrom, which is what makes admin retries idempotent.
func (r *PurchaseRepo) SetStatus(ctx context.Context, id, newStatus string, allowedFrom []string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrRequestNotFound
	}

	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": objID, "status": bson.M{"$in": allowedFrom}},
		bson.M{"$set": bson.M{"status": newStatus}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update purchase request: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// FindByID returns (nil, nil) when no request exists under the id.
func (r *PurchaseRepo) FindByID(ctx context.Context, id string) (*models.PurchaseRequest, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var request models.PurchaseRequest
	err = r.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find purchase request: %w", err)
	}
	return &request, nil
}
