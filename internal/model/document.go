package model

import "time"

// Document is a named category of legal text (e.g. "Terms of Service").
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, repository) without coupling to persistence.
type Document struct {
	ID                 string           `json:"id"`
	Label              string           `json:"label"`
	PublishedVersionID string           `json:"published_version_id,omitempty"`
	RequireSignup      bool             `json:"require_signup"`
	RequireExisting    bool             `json:"require_existing"`
	Settings           DocumentSettings `json:"settings"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// DocumentSettings holds per-document configuration keyed by user class.
type DocumentSettings struct {
	NewUsers      UserClassSettings `json:"new_users"`
	ExistingUsers UserClassSettings `json:"existing_users"`
}

// UserClassSettings configures how acceptance is requested from one class of users.
type UserClassSettings struct {
	RequireMethod string `json:"require_method,omitempty"`
}

// HasPublishedVersion reports whether the document currently points at a
// published version. A document without one cannot be agreed to.
func (d *Document) HasPublishedVersion() bool {
	return d.PublishedVersionID != ""
}

// PermissionExistingUser is the capability an existing user must hold before
// re-acceptance is required of them.
func (d *Document) PermissionExistingUser() string {
	return "legal re-accept " + d.ID
}

// PermissionView is the capability gating read access to the document.
func (d *Document) PermissionView() string {
	return "legal view " + d.ID
}
