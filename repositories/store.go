package repositories

import (
	"context"
	"errors"

	"estate-api/domain"
	"estate-api/query"
)

// ErrNotFound se devuelve cuando la búsqueda por id no encuentra nada
var ErrNotFound = errors.New("document not found")

// Store es la interfaz de lectura contra la que el executor corre los planes
type Store[T any] interface {
	Find(ctx context.Context, plan query.Plan) ([]T, error)
	Count(ctx context.Context, filter query.Filter) (int64, error)
}

// PropertyStore sirve los listados de propiedades
type PropertyStore = Store[domain.PropertySummary]

// AgentStore sirve el directorio de agentes
type AgentStore = Store[domain.Agent]
