package services

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
	"estate-api/repositories"
)

func newAgents() (AgentService, domain.Agent, domain.Agent) {
	verified := domain.Agent{ID: agentA, Name: "Sara Haddad", Bio: "Waterfront specialist", Specialization: "Villas", City: "Dubai", Verified: true, ListingsCount: 3, CreatedAt: baseTime}
	pending := domain.Agent{ID: agentB, Name: "Omar Khan", Specialization: "Off-plan", City: "Abu Dhabi", Verified: false, ListingsCount: 2, CreatedAt: baseTime.Add(time.Hour)}
	svc := NewAgentService(newAgentRepo(verified, pending), repositories.NewMemoryPropertyStore(listings()...), newCache())
	return svc, verified, pending
}

func TestListAgents(t *testing.T) {
	svc, verified, _ := newAgents()

	res, err := svc.ListAgents(context.Background(), values(), nil)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, verified.Name, res.Rows[0].Name)

	res, err = svc.ListAgents(context.Background(), values("sortBy", "listingsCount", "sortOrder", "asc"), admin)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Omar Khan", res.Rows[0].Name)
}

func TestListAgents_SearchAcrossFields(t *testing.T) {
	svc, _, _ := newAgents()

	res, err := svc.ListAgents(context.Background(), values("search", "villas"), admin)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Sara Haddad", res.Rows[0].Name)
}

func TestGetAgent(t *testing.T) {
	svc, verified, pending := newAgents()

	got, err := svc.GetAgent(context.Background(), verified.ID.Hex(), nil)
	require.NoError(t, err)
	assert.Equal(t, verified.Name, got.Name)

	_, err = svc.GetAgent(context.Background(), pending.ID.Hex(), nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetAgent(context.Background(), pending.ID.Hex(), admin)
	assert.NoError(t, err)

	_, err = svc.GetAgent(context.Background(), primitive.NewObjectID().Hex(), admin)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetAgent(context.Background(), "xyz", nil)
	var verr *query.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestAgentProperties(t *testing.T) {
	svc, _, _ := newAgents()

	res, err := svc.AgentProperties(context.Background(), agentA.Hex(), values(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Palm Villa", "Marina Sea View Loft"}, names(res.Rows))

	res, err = svc.AgentProperties(context.Background(), agentA.Hex(), values(), admin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.TotalCount)
}

func TestAgentProperties_MalformedID(t *testing.T) {
	svc, _, _ := newAgents()

	_, err := svc.AgentProperties(context.Background(), "not-an-id", values(), nil)
	var verr *query.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "agentId", verr.Field)
}
