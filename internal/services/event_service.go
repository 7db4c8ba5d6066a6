package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/eduportfolio/eduportfolio-be/internal/models"
)

// EventBroadcaster pushes events to connected admin clients. The websocket
// hub implements it; a nil broadcaster disables live delivery.
type EventBroadcaster interface {
	BroadcastEvent(event models.Event)
}

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, entityID *string)
	GetRecentEvents(limit int) ([]models.Event, error)
}

// EventService records admin activity and feeds the live dashboard.
type EventService struct {
	db          *sql.DB
	broadcaster EventBroadcaster
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, broadcaster EventBroadcaster) *EventService {
	return &EventService{db: db, broadcaster: broadcaster}
}

// CreateEvent logs a new event to the database and broadcasts it. Event
// recording never fails the admin action that triggered it; failures are
// logged and swallowed.
func (s *EventService) CreateEvent(eventType, level, message string, entityID *string) {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		EntityID:  entityID,
		CreatedAt: time.Now(),
	}

	_, err := s.db.Exec("INSERT INTO events (id, type, level, message, entity_id) VALUES (?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Level, event.Message, event.EntityID)
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record event")
		return
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent(event)
	}
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, entity_id, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.EntityID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
