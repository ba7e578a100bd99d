package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-api/dto"
	"estate-api/query"
)

func newLeads() (*leadService, *leadRepo) {
	repo := &leadRepo{}
	svc := NewLeadService(repo).(*leadService)
	svc.now = func() time.Time { return baseTime }
	return svc, repo
}

func TestSubmitLead(t *testing.T) {
	svc, repo := newLeads()
	propertyID := listings()[0].ID

	lead, err := svc.SubmitLead(context.Background(), dto.LeadRequest{
		Name:       " Lina ",
		Email:      "Lina@Example.com",
		Message:    "Is it still available?",
		PropertyID: propertyID.Hex(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lina", lead.Name)
	assert.Equal(t, "lina@example.com", lead.Email)
	assert.Equal(t, "website", lead.Source)
	require.NotNil(t, lead.PropertyID)
	assert.Equal(t, propertyID, *lead.PropertyID)
	assert.Equal(t, baseTime, lead.CreatedAt)
	assert.Len(t, repo.leads, 1)
}

func TestSubmitLead_Validation(t *testing.T) {
	svc, repo := newLeads()

	_, err := svc.SubmitLead(context.Background(), dto.LeadRequest{Name: "A", Email: "a@b.c", PropertyID: "bad"})
	var verr *query.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "propertyId", verr.Field)

	_, err = svc.SubmitLead(context.Background(), dto.LeadRequest{Name: "   ", Email: "a@b.c"})
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, repo.leads)
}

func TestListLeads(t *testing.T) {
	svc, _ := newLeads()
	for i := 0; i < 25; i++ {
		_, err := svc.SubmitLead(context.Background(), dto.LeadRequest{Name: fmt.Sprintf("lead %d", i), Email: "x@y.z"})
		require.NoError(t, err)
	}

	res, err := svc.ListLeads(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, res.Rows, 20)
	assert.Equal(t, "lead 24", res.Rows[0].Name)
	assert.True(t, res.HasMore)

	res, err = svc.ListLeads(context.Background(), "2", "")
	require.NoError(t, err)
	assert.Len(t, res.Rows, 5)
	assert.False(t, res.HasMore)
	assert.Equal(t, 2, res.TotalPages)
}

func TestListLeads_StoreError(t *testing.T) {
	svc, repo := newLeads()
	repo.err = errStoreDown

	_, err := svc.ListLeads(context.Background(), "1", "10")
	assert.ErrorIs(t, err, errStoreDown)
}
