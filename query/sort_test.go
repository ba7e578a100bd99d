package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSort_UnknownFieldFallsBackToCreatedAtDesc(t *testing.T) {
	for _, field := range []string{"", "password", "$where", "agentId", "updatedAt"} {
		spec := PublicPropertySearch.ResolveSort(field, "asc")
		keys := spec.Keys()
		if assert.Len(t, keys, 1, field) {
			assert.Equal(t, FieldCreatedAt, keys[0].Field, field)
		}
	}

	spec := PublicPropertySearch.ResolveSort("bogus", "")
	assert.Equal(t, SortKey{Field: FieldCreatedAt, Direction: Descending}, spec.Primary())
}

func TestResolveSort_OrderTokens(t *testing.T) {
	assert.Equal(t, Ascending, PublicPropertySearch.ResolveSort("price", "ASC").Primary().Direction)
	assert.Equal(t, Descending, PublicPropertySearch.ResolveSort("price", "desc").Primary().Direction)
	assert.Equal(t, Descending, PublicPropertySearch.ResolveSort("price", "sideways").Primary().Direction)
	assert.Equal(t, Descending, PublicPropertySearch.ResolveSort("price", "").Primary().Direction)
}

func TestResolveSort_AppendsCreatedAtTiebreak(t *testing.T) {
	spec := PublicPropertySearch.ResolveSort("price", "asc")
	assert.Equal(t, []SortKey{
		{Field: FieldPrice, Direction: Ascending},
		{Field: FieldCreatedAt, Direction: Descending},
	}, spec.Keys())

	spec = PublicPropertySearch.ResolveSort("createdAt", "asc")
	assert.Equal(t, []SortKey{{Field: FieldCreatedAt, Direction: Ascending}}, spec.Keys())
}

func TestResolveSort_AllowListsArePerEndpoint(t *testing.T) {
	assert.Equal(t, FieldUpdatedAt, AdminPropertyListing.ResolveSort("updatedAt", "asc").Primary().Field)
	assert.Equal(t, FieldCreatedAt, PublicPropertySearch.ResolveSort("updatedAt", "asc").Primary().Field)
	assert.Equal(t, FieldListingsCount, AgentDirectory.ResolveSort("listingsCount", "desc").Primary().Field)
	assert.Equal(t, FieldCreatedAt, AgentDirectory.ResolveSort("price", "desc").Primary().Field)
}

func TestSortSpec_String(t *testing.T) {
	assert.Equal(t, "price:asc,createdAt:desc", PublicPropertySearch.ResolveSort("price", "asc").String())
}
