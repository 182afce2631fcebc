package model

import "time"

// Area is a flat, ordered top-level category grouping processes.
type Area struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Processes referencing this area -- populated by list reads, not stored
	// on the areas table.
	Processes []*Process `json:"processes,omitempty"`
}
