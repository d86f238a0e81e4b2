package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import "errors"

// Sentinel errors implementations translate driver-specific failures into.
// Services map these onto the request-level error taxonomy; raw driver errors
// (connection loss, timeouts) pass through unmodified.
var (
	// ErrDuplicateKey indicates a unique-constraint violation on insert.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrReferenceNotFound indicates a foreign-key target was absent, e.g.
	// creating a version for a document that does not exist.
	ErrReferenceNotFound = errors.New("referenced row not found")

	// ErrVersionMismatch indicates an attempt to publish a version that
	// belongs to a different document.
	ErrVersionMismatch = errors.New("version belongs to a different document")

	// ErrRowFrozen indicates an update was refused because dependent rows
	// (acceptances) exist.
	ErrRowFrozen = errors.New("row is referenced by acceptances")

	// ErrRowInUse indicates a delete was refused because dependent rows exist.
	ErrRowInUse = errors.New("row is referenced by dependent rows")
)
