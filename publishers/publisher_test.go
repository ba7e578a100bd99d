package publishers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-api/domain"
)

type recordingHandler struct {
	events []domain.PropertyEvent
}

func (r *recordingHandler) Handle(_ context.Context, event domain.PropertyEvent) error {
	r.events = append(r.events, event)
	return nil
}

func TestInProcessPublisher(t *testing.T) {
	h := &recordingHandler{}
	var p Publisher = NewInProcessPublisher(h)

	ev := domain.PropertyEvent{Action: domain.PropertyDeleted, PropertyID: "abc"}
	require.NoError(t, p.Publish(context.Background(), ev))
	assert.Equal(t, []domain.PropertyEvent{ev}, h.events)
	assert.NoError(t, p.Close())
}
