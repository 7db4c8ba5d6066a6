package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduportfolio/eduportfolio-be/internal/models"
)

type captureBroadcaster struct {
	events []models.Event
}

func (c *captureBroadcaster) BroadcastEvent(event models.Event) {
	c.events = append(c.events, event)
}

func TestCreateEvent(t *testing.T) {
	db := newTestDB(t)
	broadcaster := &captureBroadcaster{}
	svc := NewEventService(db, broadcaster)

	entityID := "abc-123"
	svc.CreateEvent("module.create", "info", "Module created: Linear Algebra", &entityID)
	svc.CreateEvent("system.backup", "warn", "Backup skipped", nil)

	require.Len(t, broadcaster.events, 2)
	assert.Equal(t, "module.create", broadcaster.events[0].Type)
	assert.Equal(t, &entityID, broadcaster.events[0].EntityID)
	assert.Nil(t, broadcaster.events[1].EntityID)

	events, err := svc.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 2)
}

func TestCreateEventWithoutBroadcaster(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)

	// A nil broadcaster only disables live delivery.
	svc.CreateEvent("category.delete", "info", "Category deleted", nil)

	events, err := svc.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "category.delete", events[0].Type)
}

func TestGetRecentEventsLimit(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)

	for i := 0; i < 5; i++ {
		svc.CreateEvent("project.update", "info", "Project updated", nil)
	}

	events, err := svc.GetRecentEvents(3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}
