package consumers

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-api/domain"
	"estate-api/repositories"
)

// ErrMalformedEvent marca eventos que nunca se van a poder procesar
var ErrMalformedEvent = errors.New("malformed property event")

// PropertyLoader lee la fuente de verdad para reindexar
type PropertyLoader interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Property, error)
}

// Indexer mantiene sincronizado un índice de búsqueda secundario
type Indexer interface {
	Index(ctx context.Context, property domain.Property) error
	Delete(ctx context.Context, propertyID string) error
}

// PropertyEventHandler aplica un cambio de propiedad al lado de lectura: el
// índice de búsqueda, si hay uno configurado, y la cache de resultados.
type PropertyEventHandler struct {
	cache      repositories.CacheRepository
	properties PropertyLoader
	index      Indexer
}

// NewPropertyEventHandler crea un handler. index puede ser nil.
func NewPropertyEventHandler(cache repositories.CacheRepository, properties PropertyLoader, index Indexer) *PropertyEventHandler {
	return &PropertyEventHandler{cache: cache, properties: properties, index: index}
}

// Handle procesa un evento. Los errores que envuelven ErrMalformedEvent no se
// reintentan; cualquier otro puede funcionar al reintentar.
func (h *PropertyEventHandler) Handle(ctx context.Context, event domain.PropertyEvent) error {
	id, err := primitive.ObjectIDFromHex(event.PropertyID)
	if err != nil {
		return fmt.Errorf("%w: property id %q", ErrMalformedEvent, event.PropertyID)
	}
	switch event.Action {
	case domain.PropertyCreated, domain.PropertyUpdated, domain.PropertyDeleted:
	default:
		return fmt.Errorf("%w: action %q", ErrMalformedEvent, event.Action)
	}

	err = h.reindex(ctx, event.Action, id)
	h.cache.Invalidate()
	if err != nil {
		return err
	}
	log.Info().Str("action", string(event.Action)).Str("property_id", event.PropertyID).Msg("Property event applied")
	return nil
}

func (h *PropertyEventHandler) reindex(ctx context.Context, action domain.PropertyAction, id primitive.ObjectID) error {
	if h.index == nil {
		return nil
	}
	if action == domain.PropertyDeleted {
		if err := h.index.Delete(ctx, id.Hex()); err != nil {
			return fmt.Errorf("failed to delete property from index: %w", err)
		}
		return nil
	}

	property, err := h.properties.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		// Se borró antes de consumir el evento
		if err := h.index.Delete(ctx, id.Hex()); err != nil {
			return fmt.Errorf("failed to delete property from index: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load property: %w", err)
	}
	if err := h.index.Index(ctx, *property); err != nil {
		return fmt.Errorf("failed to index property: %w", err)
	}
	return nil
}
