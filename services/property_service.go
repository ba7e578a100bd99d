package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-api/domain"
	"estate-api/dto"
	"estate-api/publishers"
	"estate-api/repositories"
)

// PropertyService maneja propiedades individuales: el detalle público y las
// escrituras del back-office.
type PropertyService interface {
	GetProperty(ctx context.Context, id string, principal *domain.Principal) (*domain.Property, error)
	CreateProperty(ctx context.Context, req dto.PropertyRequest) (*domain.Property, error)
	UpdateProperty(ctx context.Context, id string, req dto.PropertyUpdateRequest) (*domain.Property, error)
	DeleteProperty(ctx context.Context, id string) error
}

type propertyService struct {
	repo      repositories.PropertyRepository
	publisher publishers.Publisher
	cache     repositories.CacheRepository
	now       func() time.Time
}

// NewPropertyService crea el servicio de propiedades. Cada escritura exitosa se
// publica; si falla la publicación se invalida directamente la cache local.
func NewPropertyService(repo repositories.PropertyRepository, publisher publishers.Publisher, cache repositories.CacheRepository) PropertyService {
	return &propertyService{repo: repo, publisher: publisher, cache: cache, now: time.Now}
}

func (s *propertyService) GetProperty(ctx context.Context, id string, principal *domain.Principal) (*domain.Property, error) {
	oid, err := parseID("id", id)
	if err != nil {
		return nil, err
	}
	property, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, translate(err)
	}
	if !property.Verified && !principal.Privileged() {
		return nil, ErrNotFound
	}
	return property, nil
}

func (s *propertyService) CreateProperty(ctx context.Context, req dto.PropertyRequest) (*domain.Property, error) {
	agentID, err := optionalID("agentId", req.AgentID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	property := &domain.Property{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		ProjectName: strings.TrimSpace(req.ProjectName),
		Category:    strings.TrimSpace(req.Category),
		Type:        strings.TrimSpace(req.Type),
		Status:      defaultStatus(req.Status),
		Price:       req.Price,
		Size:        req.Size,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Amenities:   normalizeAmenities(req.Amenities),
		HighROI:     req.HighROI,
		Verified:    req.Verified,
		AgentID:     agentID,
		Images:      nonNil(req.Images),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("error creating property: %w", err)
	}
	s.announce(ctx, domain.PropertyCreated, property.ID)
	return property, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, id string, req dto.PropertyUpdateRequest) (*domain.Property, error) {
	oid, err := parseID("id", id)
	if err != nil {
		return nil, err
	}
	property, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, translate(err)
	}

	setString(&property.Name, req.Name)
	setString(&property.Description, req.Description)
	setString(&property.Address, req.Address)
	setString(&property.City, req.City)
	setString(&property.ProjectName, req.ProjectName)
	setString(&property.Category, req.Category)
	setString(&property.Type, req.Type)
	if req.Status != nil {
		property.Status = defaultStatus(*req.Status)
	}
	if req.Price != nil {
		property.Price = *req.Price
	}
	if req.Size != nil {
		property.Size = *req.Size
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		property.Bathrooms = *req.Bathrooms
	}
	if req.Amenities != nil {
		property.Amenities = normalizeAmenities(*req.Amenities)
	}
	if req.HighROI != nil {
		property.HighROI = *req.HighROI
	}
	if req.Verified != nil {
		property.Verified = *req.Verified
	}
	if req.AgentID != nil {
		if property.AgentID, err = optionalID("agentId", *req.AgentID); err != nil {
			return nil, err
		}
	}
	if req.Images != nil {
		property.Images = nonNil(*req.Images)
	}
	property.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, translate(err)
	}
	s.announce(ctx, domain.PropertyUpdated, property.ID)
	return property, nil
}

func (s *propertyService) DeleteProperty(ctx context.Context, id string) error {
	oid, err := parseID("id", id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		return translate(err)
	}
	s.announce(ctx, domain.PropertyDeleted, oid)
	return nil
}

// announce publica un cambio. La escritura ya se hizo, así que un fallo solo
// queda en una invalidación local.
func (s *propertyService) announce(ctx context.Context, action domain.PropertyAction, id primitive.ObjectID) {
	event := domain.PropertyEvent{Action: action, PropertyID: id.Hex()}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("action", string(action)).Str("property_id", id.Hex()).Msg("Error publishing property event")
		s.cache.Invalidate()
	}
}

func optionalID(field, raw string) (primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return primitive.NilObjectID, nil
	}
	return parseID(field, raw)
}

func defaultStatus(status string) string {
	if s := strings.ToLower(strings.TrimSpace(status)); s != "" {
		return s
	}
	return "available"
}

// normalizeAmenities pasa a minúscula, recorta y saca duplicados, igual que
// compara amenities la búsqueda.
func normalizeAmenities(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, a := range in {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
