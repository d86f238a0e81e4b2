package model

import "time"

// DocumentVersion is a snapshot of a document's text at a point in time.
// A version never moves between documents, and once at least one acceptance
// has been recorded against it the version is frozen.
type DocumentVersion struct {
	ID              string    `json:"id"`
	DocumentID      string    `json:"document_id"`
	Label           string    `json:"label"`
	AcceptanceLabel string    `json:"acceptance_label"`
	Body            string    `json:"body"`
	LanguageCode    string    `json:"language_code,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	ChangedAt       time.Time `json:"changed_at"`
}

// DefaultAcceptanceLabel is used when a version is created without one.
const DefaultAcceptanceLabel = "I agree"
