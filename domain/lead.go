package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead es una consulta enviada desde un formulario del sitio
type Lead struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name       string              `bson:"name" json:"name"`
	Email      string              `bson:"email" json:"email"`
	Phone      string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Message    string              `bson:"message" json:"message"`
	PropertyID *primitive.ObjectID `bson:"propertyId,omitempty" json:"propertyId,omitempty"`
	Source     string              `bson:"source" json:"source"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}
