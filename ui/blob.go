package ui

import (
	"sync"

	"github.com/google/uuid"

	"github.com/use-agent/reviewui/models"
)

const objectURLScheme = "blob:"

// BlobStore hands out temporary object URLs for in-memory blobs, in the
// manner of URL.createObjectURL. A URL stays resolvable until revoked.
type BlobStore struct {
	mu    sync.Mutex
	blobs map[string]*models.Blob
}

// NewBlobStore creates an empty BlobStore.
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string]*models.Blob)}
}

// Create registers b and returns its object URL.
func (s *BlobStore) Create(b *models.Blob) string {
	href := objectURLScheme + uuid.NewString()
	s.mu.Lock()
	s.blobs[href] = b
	s.mu.Unlock()
	return href
}

// Resolve returns the blob behind href, if it has not been revoked.
func (s *BlobStore) Resolve(href string) (*models.Blob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[href]
	return b, ok
}

// Revoke releases href.
func (s *BlobStore) Revoke(href string) {
	s.mu.Lock()
	delete(s.blobs, href)
	s.mu.Unlock()
}

// Len returns the number of live object URLs.
func (s *BlobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
