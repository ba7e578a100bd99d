package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-api/domain"
	"estate-api/query"
)

func TestSolrRepository_FindTranslatesPlan(t *testing.T) {
	id := primitive.NewObjectID()
	var got http.Header
	var fq []string
	var sort, start, rows string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/select", r.URL.Path)
		got = r.Header
		q := r.URL.Query()
		fq, sort, start, rows = q["fq"], q.Get("sort"), q.Get("start"), q.Get("rows")
		_, _ = w.Write([]byte(`{"response":{"numFound":1,"docs":[{"id":"` + id.Hex() +
			`","name":"Palm Villa","city":["Dubai"],"price":900000,"bedrooms":4,"amenities":["pool"],` +
			`"images":["a.jpg","b.jpg"],"verified":true,"createdAt":"2024-01-01T00:00:00Z"}]}}`))
	}))
	defer srv.Close()

	repo := NewSolrRepository(srv.URL + "/")
	plan := compile(t, query.PublicPropertySearch, query.Scope{Public: true},
		"city", "Dubai", "minPrice", "500000", "amenities", "pool,gym", "search", "villa",
		"sortBy", "price", "sortOrder", "asc", "page", "2", "limit", "5")

	result, err := repo.Find(context.Background(), plan)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, []string{
		`city:"dubai"`,
		`price:[500000 TO *]`,
		`amenities:"pool"`,
		`amenities:"gym"`,
		`(name:*villa* OR description:*villa* OR address:*villa*)`,
		`verified:true`,
	}, fq)
	assert.Equal(t, "price asc,createdAt desc", sort)
	assert.Equal(t, "5", start)
	assert.Equal(t, "5", rows)

	require.Len(t, result, 1)
	assert.Equal(t, id, result[0].ID)
	assert.Equal(t, "Dubai", result[0].City)
	assert.Equal(t, 4, result[0].Bedrooms)
	assert.Equal(t, "a.jpg", result[0].CoverImage)
	assert.True(t, result[0].Verified)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), result[0].CreatedAt)
}

func TestSolrRepository_AdminSortByUpdatedAt(t *testing.T) {
	var sort string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sort = r.URL.Query().Get("sort")
		_, _ = w.Write([]byte(`{"response":{"numFound":0,"docs":[]}}`))
	}))
	defer srv.Close()

	plan := compile(t, query.AdminPropertyListing, query.Scope{}, "sortBy", "updatedAt", "sortOrder", "asc")
	_, err := NewSolrRepository(srv.URL).Find(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, "updatedAt asc,createdAt desc", sort)
}

func TestSolrRepository_CountUsesZeroRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.URL.Query().Get("rows"))
		_, _ = w.Write([]byte(`{"response":{"numFound":42,"docs":[]}}`))
	}))
	defer srv.Close()

	total, err := NewSolrRepository(srv.URL).Count(context.Background(), query.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
}

func TestSolrRepository_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewSolrRepository(srv.URL).Count(context.Background(), query.Filter{})
	assert.Error(t, err)
}

func TestSolrRepository_IndexAndDeleteCommit(t *testing.T) {
	var mu sync.Mutex
	var bodies []map[string]interface{}
	var paths []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		paths = append(paths, r.URL.Path)
		bodies = append(bodies, body)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"responseHeader":{"status":0}}`))
	}))
	defer srv.Close()

	repo := NewSolrRepository(srv.URL)
	updated := time.Date(2024, 6, 2, 10, 30, 0, 0, time.UTC)
	p := domain.Property{ID: primitive.NewObjectID(), Name: "Loft", AgentID: primitive.NewObjectID(), UpdatedAt: updated}
	require.NoError(t, repo.Index(context.Background(), p))
	require.NoError(t, repo.Delete(context.Background(), p.ID.Hex()))

	assert.Equal(t, []string{"/update/json/docs", "/update", "/update", "/update"}, paths)
	assert.Equal(t, p.ID.Hex(), bodies[0]["id"])
	assert.Equal(t, p.AgentID.Hex(), bodies[0]["agentId"])
	assert.Equal(t, "2024-06-02T10:30:00Z", bodies[0]["updatedAt"])
	assert.Contains(t, bodies[1], "commit")
	assert.Contains(t, bodies[2], "delete")
}

func TestEscapeSolrQuery(t *testing.T) {
	assert.Equal(t, `a\:b\*\ c`, escapeSolrQuery("a:b* c"))
}
