// Package memory provides in-memory storage implementations.
// Used for tests and as a reference for the storage contracts.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/echopress/internal/core/domain"
	"github.com/custodia-labs/echopress/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

type storedObject struct {
	item       domain.Item
	data       []byte
	locationID string
}

// ContentStore is a thread-safe in-memory ContentStore.
type ContentStore struct {
	mu      sync.RWMutex
	objects map[string]*storedObject
}

// NewContentStore creates an empty in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{objects: make(map[string]*storedObject)}
}

// Put inserts an object directly, bypassing Upload. Intended for test
// seeding; the returned ID is store-assigned when item.ID is empty.
func (s *ContentStore) Put(locationID string, item domain.Item, data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	s.objects[item.ID] = &storedObject{item: item, data: data, locationID: locationID}
	return item.ID
}

// List returns the objects under a location, oldest first.
func (s *ContentStore) List(_ context.Context, locationID string) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []domain.Item
	for _, obj := range s.objects {
		if obj.locationID == locationID {
			items = append(items, obj.item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// Download fetches an object's payload.
func (s *ContentStore) Download(_ context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[id]
	if !ok {
		return nil, fmt.Errorf("object %s: %w", id, domain.ErrNotFound)
	}
	return append([]byte(nil), obj.data...), nil
}

// Upload creates a new object under a location.
func (s *ContentStore) Upload(_ context.Context, data []byte, name, mimeType, locationID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.objects[id] = &storedObject{
		item: domain.Item{
			ID:        id,
			Name:      name,
			MIMEType:  mimeType,
			CreatedAt: time.Now(),
		},
		data:       append([]byte(nil), data...),
		locationID: locationID,
	}
	return id, nil
}

// Move relocates an object between locations.
func (s *ContentStore) Move(_ context.Context, id, fromLocationID, toLocationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[id]
	if !ok || obj.locationID != fromLocationID {
		return fmt.Errorf("object %s in %s: %w", id, fromLocationID, domain.ErrNotFound)
	}
	obj.locationID = toLocationID
	return nil
}

// Claim renames the object iff its name still matches currentName.
// IDs are stable here, so newID always equals id on a win.
func (s *ContentStore) Claim(_ context.Context, id, currentName string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[id]
	if !ok {
		return "", false, fmt.Errorf("object %s: %w", id, domain.ErrNotFound)
	}
	if obj.item.Name != currentName {
		return "", false, nil
	}
	obj.item.Name = domain.ClaimedName(currentName)
	return id, true, nil
}

// LocationURL returns empty: the memory store has no web surface.
func (s *ContentStore) LocationURL(string) string { return "" }

// Capabilities reports full atomicity; everything happens under one lock.
func (s *ContentStore) Capabilities() driven.StoreCapabilities {
	return driven.StoreCapabilities{AtomicClaim: true, AtomicMove: true}
}
