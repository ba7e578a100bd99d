package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"estate-api/query"
	"estate-api/repositories"
)

// Executor corre planes compilados contra un store. Las filas y el total se
// buscan en paralelo; si falla cualquiera falla toda la llamada.
type Executor[T any] struct {
	store repositories.Store[T]
	cache repositories.CacheRepository
}

// NewExecutor crea un executor que guarda los resultados en cache
func NewExecutor[T any](store repositories.Store[T], cache repositories.CacheRepository) *Executor[T] {
	return &Executor[T]{store: store, cache: cache}
}

// Execute devuelve una página de resultados del plan
func (e *Executor[T]) Execute(ctx context.Context, plan query.Plan) (query.Result[T], error) {
	key := e.cache.Key(plan)
	if raw, ok := e.cache.Get(key); ok {
		var cached query.Result[T]
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		log.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
	}

	var (
		rows  []T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = e.store.Find(gctx, plan)
		if err != nil {
			return fmt.Errorf("error finding %s: %w", plan.Endpoint, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = e.store.Count(gctx, plan.Filter)
		if err != nil {
			return fmt.Errorf("error counting %s: %w", plan.Endpoint, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return query.Result[T]{}, err
	}

	result := query.NewResult(rows, total, plan.Pagination)
	if raw, err := json.Marshal(result); err == nil {
		e.cache.Set(key, raw)
	}
	log.Debug().
		Str("endpoint", plan.Endpoint).
		Str("filter", plan.Filter.String()).
		Int64("total", total).
		Int("rows", len(result.Rows)).
		Msg("Search executed")
	return result, nil
}
