package models

import "time"

// Class is a catalog entry pointing at an external GradeSource page.
// URLs are unique across the catalog.
type Class struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}
