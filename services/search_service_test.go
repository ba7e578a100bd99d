package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-api/domain"
	"estate-api/query"
	"estate-api/repositories"
)

var admin = &domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleAdmin}

func newSearch(t *testing.T) (SearchService, *countingStore) {
	t.Helper()
	store := &countingStore{PropertyStore: repositories.NewMemoryPropertyStore(listings()...)}
	return NewSearchService(store, newCache()), store
}

func names(rows []domain.PropertySummary) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestSearchProperties_PublicOnlySeesVerified(t *testing.T) {
	svc, _ := newSearch(t)

	res, err := svc.SearchProperties(context.Background(), values(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.TotalCount)
	assert.NotContains(t, names(res.Rows), "Draft Townhouse")

	agent := &domain.Principal{UserID: 2, Role: domain.RoleAgent}
	res, err = svc.SearchProperties(context.Background(), values(), agent)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.TotalCount)
}

func TestSearchProperties_AdminPrincipalSeesEverything(t *testing.T) {
	svc, _ := newSearch(t)

	res, err := svc.SearchProperties(context.Background(), values(), admin)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.TotalCount)
}

func TestAdminProperties_NoVerifiedConstraint(t *testing.T) {
	svc, _ := newSearch(t)

	res, err := svc.AdminProperties(context.Background(), values("verified", "false"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Draft Townhouse"}, names(res.Rows))
	assert.Equal(t, 10, res.Limit)
}

func TestSearchProperties_DefaultSortIsNewestFirst(t *testing.T) {
	svc, _ := newSearch(t)

	res, err := svc.SearchProperties(context.Background(), values("sortBy", "bogus"), nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Rows)
	assert.Equal(t, "Corniche Penthouse", res.Rows[0].Name)
	assert.Equal(t, 12, res.Limit)
}

func TestSearchProperties_SortByPriceAscending(t *testing.T) {
	svc, _ := newSearch(t)

	res, err := svc.SearchProperties(context.Background(), values("sortBy", "price", "sortOrder", "ASC"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Downtown Studio", "Marina Sea View Loft", "Palm Villa", "Corniche Penthouse"}, names(res.Rows))
}

func TestSearchProperties_PageBeyondLast(t *testing.T) {
	svc, _ := newSearch(t)

	res, err := svc.SearchProperties(context.Background(), values("limit", "2", "page", "3"), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.NotNil(t, res.Rows)
	assert.Equal(t, int64(4), res.TotalCount)
	assert.Equal(t, 2, res.TotalPages)
	assert.False(t, res.HasMore)
}

func TestSearchProperties_LimitClamped(t *testing.T) {
	svc, _ := newSearch(t)

	res, err := svc.SearchProperties(context.Background(), values("limit", "500"), nil)
	require.NoError(t, err)
	assert.Equal(t, query.MaxLimit, res.Limit)

	res, err = svc.SearchProperties(context.Background(), values("limit", "0"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Limit)
	assert.Len(t, res.Rows, 1)
	assert.True(t, res.HasMore)
}

func TestSearchProperties_MultiTermSearch(t *testing.T) {
	svc, _ := newSearch(t)

	res, err := svc.SearchProperties(context.Background(), values("search", "sea VIEW", "sortBy", "name", "sortOrder", "asc"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Corniche Penthouse", "Marina Sea View Loft"}, names(res.Rows))
}

func TestSearchProperties_TermsMayMatchDifferentFields(t *testing.T) {
	both := domain.Property{ID: primitive.NewObjectID(), Name: "Lot 7", Description: "Spacious villa with garden", Address: "12 Luxury Lane", City: "Dubai", Verified: true, CreatedAt: baseTime}
	villaOnly := domain.Property{ID: primitive.NewObjectID(), Name: "Lot 8", Description: "Villa near the park", Address: "4 Main Street", City: "Dubai", Verified: true, CreatedAt: baseTime}
	luxuryOnly := domain.Property{ID: primitive.NewObjectID(), Name: "Lot 9", Description: "Compact studio", Address: "Luxury Tower", City: "Dubai", Verified: true, CreatedAt: baseTime}
	svc := NewSearchService(repositories.NewMemoryPropertyStore(both, villaOnly, luxuryOnly), repositories.NewNoopCache())

	res, err := svc.SearchProperties(context.Background(), values("search", "luxury villa"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lot 7"}, names(res.Rows))
	assert.Equal(t, int64(1), res.TotalCount)
}

func TestSearchProperties_AmenitiesSuperset(t *testing.T) {
	svc, _ := newSearch(t)

	res, err := svc.SearchProperties(context.Background(), values("amenities", "Pool", "amenities", "gym", "sortBy", "price", "sortOrder", "asc"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Marina Sea View Loft", "Palm Villa"}, names(res.Rows))
}

func TestSearchProperties_Filters(t *testing.T) {
	tests := []struct {
		name   string
		params query.Params
		want   int64
	}{
		{"location alias", values("location", "abu dhabi"), 1},
		{"beds at least", values("beds", "3+"), 2},
		{"price window", values("minPrice", "200000", "maxPrice", "950000"), 2},
		{"inverted price window", values("minPrice", "500000", "maxPrice", "300000"), 0},
		{"high roi", values("highROI", "yes"), 1},
		{"garbage numbers ignored", values("minPrice", "cheap", "beds", "-2"), 4},
		{"type", values("type", "APARTMENT"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newSearch(t)
			res, err := svc.SearchProperties(context.Background(), tt.params, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.TotalCount)
		})
	}
}

func TestSearchProperties_IdenticalParamsIdenticalResults(t *testing.T) {
	store := repositories.NewMemoryPropertyStore(listings()...)
	svc := NewSearchService(store, repositories.NewNoopCache())
	p := values("city", "dubai", "sortBy", "size", "limit", "2")

	first, err := svc.SearchProperties(context.Background(), p, nil)
	require.NoError(t, err)
	second, err := svc.SearchProperties(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSearchProperties_CachedUntilInvalidated(t *testing.T) {
	store := &countingStore{PropertyStore: repositories.NewMemoryPropertyStore(listings()...)}
	cache := newCache()
	svc := NewSearchService(store, cache)
	p := values("city", "Dubai")

	first, err := svc.SearchProperties(context.Background(), p, nil)
	require.NoError(t, err)
	second, err := svc.SearchProperties(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, names(first.Rows), names(second.Rows))
	assert.Equal(t, first.PageInfo, second.PageInfo)
	assert.Equal(t, int32(1), store.finds.Load())
	assert.Equal(t, int32(1), store.counts.Load())

	cache.Invalidate()
	_, err = svc.SearchProperties(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), store.finds.Load())
}

func TestSearchProperties_CraftedValueDoesNotShareCacheEntry(t *testing.T) {
	villa := domain.Property{ID: primitive.NewObjectID(), Name: "Hills Villa", City: "Dubai", Type: "villa", Verified: true, CreatedAt: baseTime}
	svc := NewSearchService(repositories.NewMemoryPropertyStore(villa), newCache())

	crafted, err := svc.SearchProperties(context.Background(), values("type", "villa)&eq(city=dubai"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), crafted.TotalCount)

	res, err := svc.SearchProperties(context.Background(), values("type", "villa", "city", "dubai"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.TotalCount)
	assert.Equal(t, []string{"Hills Villa"}, names(res.Rows))
}

func TestSearchProperties_StoreFailureFailsWholeCall(t *testing.T) {
	mem := repositories.NewMemoryPropertyStore(listings()...)
	mem.FailWith(errStoreDown)
	svc := NewSearchService(mem, newCache())

	res, err := svc.SearchProperties(context.Background(), values(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Nil(t, res.Rows)
}
