package models

import "time"

// Connection is a directed edge between two contacts in the network graph.
type Connection struct {
	// ID is the server-assigned identifier of the edge.
	ID int64 `json:"id"`

	// ContactID is the source contact of the edge.
	ContactID string `json:"contact_id"`

	// TargetContactID is the destination contact of the edge.
	TargetContactID string `json:"target_contact_id"`

	// Strength qualifies the relationship (e.g. "weak", "medium", "strong").
	Strength string `json:"strength,omitempty"`

	// Type describes the nature of the connection (e.g. "business", "family").
	Type string `json:"type,omitempty"`

	// Notes holds arbitrary notes about the edge.
	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Connection model.
func (c Connection) TableName() string {
	return "connections"
}
