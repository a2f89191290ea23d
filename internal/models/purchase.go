package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Purchase request statuses. Requests are never deleted; declined requests
// can be reopened to pending, nothing ever leaves completed.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusDeclined  = "declined"
)

// ValidStatus reports whether s is one of the three ledger statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusDeclined
}

// PurchaseRequest is a student's attestation of a manual payment, awaiting
// admin confirmation.
type PurchaseRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string             `bson:"userId" json:"userId" validate:"required"`
	UserName    string             `bson:"userName" json:"userName"`
	Email       string             `bson:"email" json:"email" validate:"required,email"`
	CourseID    string             `bson:"courseId" json:"courseId" validate:"required"`
	CourseTitle string             `bson:"courseTitle" json:"courseTitle"`
	Amount      float64            `bson:"amount" json:"amount" validate:"gte=0"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
