package model

import "time"

// Acceptance records that a specific user agreed to a specific document
// version. Rows are append-only: they are never updated or deleted by normal
// operation, and repeated agreement produces additional rows rather than an
// upsert.
type Acceptance struct {
	ID         int64     `json:"id"`
	VersionID  string    `json:"version_id"`
	UserID     string    `json:"user_id"`
	AcceptedAt time.Time `json:"accepted_at"`
}
