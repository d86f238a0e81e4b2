package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// EvidenceArchive writes and reads immutable version-body snapshots. A
// snapshot is taken when a version is published; it is never overwritten with
// different content because versions freeze once accepted, so re-publishing
// the same version is an idempotent write of identical bytes.
type EvidenceArchive struct {
	store Storage
}

// NewEvidenceArchive wraps an object storage client.
func NewEvidenceArchive(store Storage) *EvidenceArchive {
	return &EvidenceArchive{store: store}
}

// SnapshotKey is the object key for a version snapshot.
func SnapshotKey(documentID, versionID string) string {
	return fmt.Sprintf("acceptance-evidence/%s/%s.html", documentID, versionID)
}

// PutSnapshot archives the body of a version being published.
func (a *EvidenceArchive) PutSnapshot(ctx context.Context, documentID, versionID, body string) (ObjectInfo, error) {
	key := SnapshotKey(documentID, versionID)
	return a.store.Put(ctx, key, strings.NewReader(body), PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "text/html; charset=utf-8",
		Metadata: map[string]string{
			"document-id": documentID,
			"version-id":  versionID,
		},
	})
}

// DeleteSnapshot removes an archived snapshot, used to roll back when the
// publish itself fails after the archive write succeeded.
func (a *EvidenceArchive) DeleteSnapshot(ctx context.Context, documentID, versionID string) error {
	return a.store.Delete(ctx, SnapshotKey(documentID, versionID))
}

// PresignSnapshot returns a time-limited download URL for a snapshot.
func (a *EvidenceArchive) PresignSnapshot(ctx context.Context, documentID, versionID string, expiry time.Duration) (string, error) {
	return a.store.PresignGet(ctx, SnapshotKey(documentID, versionID), expiry)
}
