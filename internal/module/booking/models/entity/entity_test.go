package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"triplus-booking-service/internal/module/booking/models/entity"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, entity.StatusPending.CanTransitionTo(entity.StatusConfirmed))
	assert.True(t, entity.StatusPending.CanTransitionTo(entity.StatusCancelled))
	assert.True(t, entity.StatusConfirmed.CanTransitionTo(entity.StatusCompleted))
	assert.True(t, entity.StatusConfirmed.CanTransitionTo(entity.StatusCancelled))

	assert.False(t, entity.StatusPending.CanTransitionTo(entity.StatusCompleted))
	assert.False(t, entity.StatusCancelled.CanTransitionTo(entity.StatusPending))
	assert.False(t, entity.StatusCompleted.CanTransitionTo(entity.StatusCancelled))
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, entity.StatusPending.Terminal())
	assert.False(t, entity.StatusConfirmed.Terminal())
	assert.True(t, entity.StatusCancelled.Terminal())
	assert.True(t, entity.StatusCompleted.Terminal())
}

func TestParseStatus(t *testing.T) {
	status, ok := entity.ParseStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, entity.StatusConfirmed, status)

	_, ok = entity.ParseStatus("unknown")
	assert.False(t, ok)
}

func TestParseItemKind(t *testing.T) {
	kind, ok := entity.ParseItemKind("offer")
	assert.True(t, ok)
	assert.Equal(t, entity.ItemOffer, kind)

	_, ok = entity.ParseItemKind("hotel")
	assert.False(t, ok)
}
