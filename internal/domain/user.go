package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserAccount is the domain model for marketplace accounts. The password
// hash is stored under the legacy "password" key and must never be
// serialized into a response or a log line.
type UserAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	FirstName    string             `bson:"firstName"`
	LastName     string             `bson:"lastName"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    *time.Time         `bson:"updatedAt,omitempty"`
}
