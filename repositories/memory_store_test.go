package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-api/domain"
	"estate-api/query"
)

func sampleProperties() []domain.Property {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Property{
		{ID: primitive.NewObjectID(), Name: "Marina Loft", Description: "sea view", City: "Dubai", Price: 300000, Bedrooms: 1, Amenities: []string{"pool"}, Verified: true, CreatedAt: base},
		{ID: primitive.NewObjectID(), Name: "Palm Villa", Description: "private beach and pool", City: "Dubai", Price: 900000, Bedrooms: 4, Amenities: []string{"pool", "gym", "beach"}, Verified: true, CreatedAt: base.Add(time.Hour)},
		{ID: primitive.NewObjectID(), Name: "Downtown Studio", Description: "city view", City: "dubai", Price: 150000, Bedrooms: 0, Amenities: []string{"gym"}, Verified: false, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestMemoryPropertyStore_PublicHidesUnverified(t *testing.T) {
	store := NewMemoryPropertyStore(sampleProperties()...)
	plan := compile(t, query.PublicPropertySearch, query.Scope{Public: true})

	rows, err := store.Find(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Palm Villa", rows[0].Name)

	total, err := store.Count(context.Background(), plan.Filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestMemoryPropertyStore_AmenitiesSuperset(t *testing.T) {
	store := NewMemoryPropertyStore(sampleProperties()...)
	plan := compile(t, query.PublicPropertySearch, query.Scope{}, "amenities", "pool,gym")

	rows, err := store.Find(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Palm Villa", rows[0].Name)
}

func TestMemoryPropertyStore_SortAndWindow(t *testing.T) {
	store := NewMemoryPropertyStore(sampleProperties()...)
	plan := compile(t, query.PublicPropertySearch, query.Scope{}, "sortBy", "price", "sortOrder", "asc", "limit", "2", "page", "2")

	rows, err := store.Find(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Palm Villa", rows[0].Name)
}

func TestMemoryPropertyStore_StringSortIsByteOrder(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryPropertyStore(
		domain.Property{ID: primitive.NewObjectID(), Name: "alpha Loft", CreatedAt: base},
		domain.Property{ID: primitive.NewObjectID(), Name: "Beta Villa", CreatedAt: base},
		domain.Property{ID: primitive.NewObjectID(), Name: "Ceder House", CreatedAt: base},
	)
	plan := compile(t, query.PublicPropertySearch, query.Scope{}, "sortBy", "name", "sortOrder", "asc")

	rows, err := store.Find(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Beta Villa", "Ceder House", "alpha Loft"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
}

func TestMemoryPropertyStore_ExactIsCaseInsensitive(t *testing.T) {
	store := NewMemoryPropertyStore(sampleProperties()...)
	plan := compile(t, query.PublicPropertySearch, query.Scope{}, "city", "DUBAI")

	total, err := store.Count(context.Background(), plan.Filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestMemoryStore_FailWith(t *testing.T) {
	store := NewMemoryPropertyStore(sampleProperties()...)
	boom := errors.New("boom")
	store.FailWith(boom)

	_, err := store.Find(context.Background(), compile(t, query.PublicPropertySearch, query.Scope{}))
	assert.ErrorIs(t, err, boom)
	_, err = store.Count(context.Background(), query.Filter{})
	assert.ErrorIs(t, err, boom)
}

func TestMemoryStore_Agents(t *testing.T) {
	store := NewMemoryStore[domain.Agent](AgentValue,
		domain.Agent{ID: primitive.NewObjectID(), Name: "Sara", Bio: "Luxury villas", Verified: true, ListingsCount: 4},
		domain.Agent{ID: primitive.NewObjectID(), Name: "Omar", Specialization: "Off-plan", Verified: true, ListingsCount: 9},
	)
	plan := compile(t, query.AgentDirectory, query.Scope{Public: true}, "sortBy", "listingsCount")

	rows, err := store.Find(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Omar", rows[0].Name)
}
