// Package filesystem implements the content store over a local
// directory tree. Each location is a directory and each object is a
// file; the object ID is the file's absolute path. Used for local
// development and as the second store backend in integration tests.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/echopress/internal/core/domain"
	"github.com/custodia-labs/echopress/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore stores objects as files under location directories.
type ContentStore struct{}

// New creates a filesystem content store.
func New() *ContentStore {
	return &ContentStore{}
}

var mimeByExt = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pdf":  "application/pdf",
}

// List returns the files directly under the location directory, oldest
// modification first. Subdirectories are not objects and are skipped.
func (s *ContentStore) List(_ context.Context, locationID string) ([]domain.Item, error) {
	entries, err := os.ReadDir(locationID)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("location %s: %w", locationID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read location %s: %w", locationID, err)
	}

	var items []domain.Item
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		items = append(items, domain.Item{
			ID:        filepath.Join(locationID, entry.Name()),
			Name:      entry.Name(),
			MIMEType:  mimeByExt[strings.ToLower(filepath.Ext(entry.Name()))],
			CreatedAt: info.ModTime(),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// Download reads the file's content.
func (s *ContentStore) Download(_ context.Context, id string) ([]byte, error) {
	data, err := os.ReadFile(id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("object %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", id, err)
	}
	return data, nil
}

// Upload writes a new file under the location directory, creating the
// directory when needed.
func (s *ContentStore) Upload(_ context.Context, data []byte, name, _, locationID string) (string, error) {
	if err := os.MkdirAll(locationID, 0o755); err != nil {
		return "", fmt.Errorf("create location %s: %w", locationID, err)
	}
	path := filepath.Join(locationID, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Move relocates the file into the target directory via rename.
func (s *ContentStore) Move(_ context.Context, id, _, toLocationID string) error {
	if err := os.MkdirAll(toLocationID, 0o755); err != nil {
		return fmt.Errorf("create location %s: %w", toLocationID, err)
	}
	target := filepath.Join(toLocationID, filepath.Base(id))
	if err := os.Rename(id, target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("object %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("move %s: %w", id, err)
	}
	return nil
}

// Claim renames the file to its claimed name. The rename source is the
// path carrying currentName, so a concurrent claimer that already
// renamed it makes this rename fail with ErrNotExist: that racer won,
// and this call reports a lost claim instead of an error. The winner
// gets the renamed path back as the new object ID.
func (s *ContentStore) Claim(_ context.Context, id, currentName string) (string, bool, error) {
	dir := filepath.Dir(id)
	source := filepath.Join(dir, currentName)
	target := filepath.Join(dir, domain.ClaimedName(currentName))

	if err := os.Rename(source, target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("claim %s: %w", source, err)
	}
	return target, true, nil
}

// LocationURL returns empty: directories have no web surface.
func (s *ContentStore) LocationURL(string) string { return "" }

// Capabilities reports atomic claims and moves; both map to rename(2).
func (s *ContentStore) Capabilities() driven.StoreCapabilities {
	return driven.StoreCapabilities{AtomicClaim: true, AtomicMove: true}
}
