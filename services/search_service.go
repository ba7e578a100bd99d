package services

import (
	"context"

	"estate-api/domain"
	"estate-api/query"
	"estate-api/repositories"
)

// SearchService sirve los listados de propiedades
type SearchService interface {
	// SearchProperties es la búsqueda pública. Quien no es admin solo ve
	// propiedades verificadas.
	SearchProperties(ctx context.Context, params query.Params, principal *domain.Principal) (query.Result[domain.PropertySummary], error)
	// AdminProperties es la tabla del back-office; no se oculta nada
	AdminProperties(ctx context.Context, params query.Params) (query.Result[domain.PropertySummary], error)
}

type searchService struct {
	properties *Executor[domain.PropertySummary]
}

// NewSearchService crea el servicio de búsqueda sobre store
func NewSearchService(store repositories.PropertyStore, cache repositories.CacheRepository) SearchService {
	return &searchService{properties: NewExecutor(store, cache)}
}

func (s *searchService) SearchProperties(ctx context.Context, params query.Params, principal *domain.Principal) (query.Result[domain.PropertySummary], error) {
	plan, err := query.PublicPropertySearch.Compile(params, scopeFor(principal))
	if err != nil {
		return query.Result[domain.PropertySummary]{}, err
	}
	return s.properties.Execute(ctx, plan)
}

func (s *searchService) AdminProperties(ctx context.Context, params query.Params) (query.Result[domain.PropertySummary], error) {
	plan, err := query.AdminPropertyListing.Compile(params, query.Scope{})
	if err != nil {
		return query.Result[domain.PropertySummary]{}, err
	}
	return s.properties.Execute(ctx, plan)
}

// scopeFor arma el scope del compilador según quien llama
func scopeFor(principal *domain.Principal) query.Scope {
	return query.Scope{Public: !principal.Privileged()}
}
