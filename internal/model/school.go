package model

import "time"

// School is the tenant record scoping every member and record collection
// beneath it. Schools are created out-of-band (admin onboarding CLI); the
// API only reads them.
type School struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"` // human-entered tenant key, e.g. "DPS01"
	Address   *string   `json:"address,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Class represents one class group within a school ("10A").
type Class struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"school_id"`
	Name      string    `json:"name"`
	CreatedOn time.Time `json:"created_on"`
}

// Event is an entry in a school's announcements/events feed.
type Event struct {
	ID          string    `json:"id"`
	SchoolID    string    `json:"school_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedOn   time.Time `json:"created_on"`
}
