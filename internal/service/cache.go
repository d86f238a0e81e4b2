package service

import "sync"

// labelCache memoizes resolved acceptance labels per document. Resolution
// involves token substitution plus sanitization on every read, so the result
// is kept until the document is republished. Entries carry a fingerprint of
// the version they were computed from; a fingerprint miss (republish, or an
// edit to a not-yet-accepted published version) recomputes, so a stale entry
// can never be served.
type labelCache struct {
	mu     sync.RWMutex
	labels map[string]labelEntry
}

type labelEntry struct {
	fingerprint string
	label       string
}

func newLabelCache() *labelCache {
	return &labelCache{labels: make(map[string]labelEntry)}
}

func (c *labelCache) get(documentID, fingerprint string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.labels[documentID]
	if !ok || e.fingerprint != fingerprint {
		return "", false
	}
	return e.label, true
}

func (c *labelCache) set(documentID, fingerprint, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.labels[documentID] = labelEntry{fingerprint: fingerprint, label: label}
}

func (c *labelCache) invalidate(documentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.labels, documentID)
}
