package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Agent es un agente que aparece en el directorio público
type Agent struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone" json:"phone"`
	City           string             `bson:"city" json:"city"`
	Bio            string             `bson:"bio" json:"bio"`
	Specialization string             `bson:"specialization" json:"specialization"`
	Photo          string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Verified       bool               `bson:"verified" json:"verified"`
	ListingsCount  int                `bson:"listingsCount" json:"listingsCount"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
