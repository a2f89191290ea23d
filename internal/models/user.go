package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email" validate:"required,email"`
	FullName     string             `bson:"fullName" json:"fullName"`
	ImageURL     string             `bson:"imageUrl" json:"imageUrl"`
	PasswordHash string             `bson:"password,omitempty" json:"-"`
	LastLogin    time.Time          `bson:"lastLogin" json:"lastLogin"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
