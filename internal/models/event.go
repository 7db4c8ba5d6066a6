package models

import "time"

// Event represents a loggable admin action in the system.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "module.create", "category.delete"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	EntityID  *string   `json:"entityId,omitempty"` // Nullable for system-wide events
	CreatedAt time.Time `json:"createdAt"`
}
