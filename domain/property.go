package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property es una publicación tal como se guarda en la colección "properties"
type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Address     string             `bson:"address" json:"address"`
	City        string             `bson:"city" json:"city"`
	ProjectName string             `bson:"projectName,omitempty" json:"projectName,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Type        string             `bson:"type" json:"type"`
	Status      string             `bson:"status" json:"status"`
	Price       float64            `bson:"price" json:"price"`
	Size        float64            `bson:"size" json:"size"`
	Bedrooms    int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms   int                `bson:"bathrooms" json:"bathrooms"`
	Amenities   []string           `bson:"amenities" json:"amenities"`
	HighROI     bool               `bson:"highROI" json:"highROI"`
	Verified    bool               `bson:"verified" json:"verified"`
	AgentID     primitive.ObjectID `bson:"agentId,omitempty" json:"agentId,omitempty"`
	Images      []string           `bson:"images" json:"images"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PropertySummary es la proyección que devuelven los listados
type PropertySummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Address     string             `bson:"address" json:"address"`
	City        string             `bson:"city" json:"city"`
	ProjectName string             `bson:"projectName,omitempty" json:"projectName,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Type        string             `bson:"type" json:"type"`
	Status      string             `bson:"status" json:"status"`
	Price       float64            `bson:"price" json:"price"`
	Size        float64            `bson:"size" json:"size"`
	Bedrooms    int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms   int                `bson:"bathrooms" json:"bathrooms"`
	Amenities   []string           `bson:"amenities" json:"amenities"`
	HighROI     bool               `bson:"highROI" json:"highROI"`
	Verified    bool               `bson:"verified" json:"verified"`
	AgentID     primitive.ObjectID `bson:"agentId,omitempty" json:"agentId,omitempty"`
	CoverImage  string             `bson:"-" json:"coverImage,omitempty"`
	Images      []string           `bson:"images" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Summary proyecta una propiedad completa a su forma de listado
func (p Property) Summary() PropertySummary {
	s := PropertySummary{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		City:        p.City,
		ProjectName: p.ProjectName,
		Category:    p.Category,
		Type:        p.Type,
		Status:      p.Status,
		Price:       p.Price,
		Size:        p.Size,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Amenities:   p.Amenities,
		HighROI:     p.HighROI,
		Verified:    p.Verified,
		AgentID:     p.AgentID,
		Images:      p.Images,
		CreatedAt:   p.CreatedAt,
	}
	s.SetCover()
	return s
}

// SetCover completa CoverImage con la primera imagen
func (s *PropertySummary) SetCover() {
	if len(s.Images) > 0 {
		s.CoverImage = s.Images[0]
	}
}
