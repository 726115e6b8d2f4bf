// Package dropbox implements the content store over Dropbox.
// Locations are folder paths; objects are addressed by their full path,
// which doubles as the object ID.
package dropbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"

	"github.com/custodia-labs/echopress/internal/core/domain"
	"github.com/custodia-labs/echopress/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// MaxDownloadSize caps object payloads (10MB).
const MaxDownloadSize = 10 * 1024 * 1024

// ContentStore is a Dropbox-backed content store.
type ContentStore struct {
	client files.Client
}

// New creates a Dropbox content store from an access token.
func New(token string) *ContentStore {
	return NewWithClient(files.New(dropbox.Config{Token: token}))
}

// NewWithClient wraps an existing files client. Used by tests.
func NewWithClient(client files.Client) *ContentStore {
	return &ContentStore{client: client}
}

var mimeByExt = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pdf":  "application/pdf",
}

// List returns the files directly under a folder, oldest first by
// server modification time. Dropbox reports no creation time, so the
// server timestamp stands in for it.
func (s *ContentStore) List(_ context.Context, locationID string) ([]domain.Item, error) {
	arg := files.NewListFolderArg(locationID)

	res, err := s.client.ListFolder(arg)
	if err != nil {
		return nil, fmt.Errorf("list folder %s: %w", locationID, wrapLookupError(err))
	}

	var items []domain.Item
	for {
		for _, entry := range res.Entries {
			meta, ok := entry.(*files.FileMetadata)
			if !ok {
				continue
			}
			items = append(items, domain.Item{
				ID:        meta.PathDisplay,
				Name:      meta.Name,
				MIMEType:  mimeByExt[strings.ToLower(path.Ext(meta.Name))],
				CreatedAt: meta.ServerModified,
			})
		}
		if !res.HasMore {
			break
		}
		res, err = s.client.ListFolderContinue(files.NewListFolderContinueArg(res.Cursor))
		if err != nil {
			return nil, fmt.Errorf("continue listing %s: %w", locationID, err)
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

// Download fetches a file's content.
func (s *ContentStore) Download(_ context.Context, id string) ([]byte, error) {
	_, content, err := s.client.Download(files.NewDownloadArg(id))
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", id, wrapLookupError(err))
	}
	defer content.Close()

	data, err := io.ReadAll(io.LimitReader(content, MaxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", id, err)
	}
	return data, nil
}

// Upload creates a new file under a folder. Existing files with the
// same name are overwritten; artifact names are deterministic, so a
// retried pipeline pass refreshes the review copy rather than piling
// up conflicted duplicates.
func (s *ContentStore) Upload(_ context.Context, data []byte, name, _, locationID string) (string, error) {
	target := path.Join(locationID, name)
	arg := files.NewUploadArg(target)
	arg.Mode.Tag = "overwrite"

	meta, err := s.client.Upload(arg, strings.NewReader(string(data)))
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", target, err)
	}
	return meta.PathDisplay, nil
}

// Move relocates a file into another folder.
func (s *ContentStore) Move(_ context.Context, id, _, toLocationID string) error {
	target := path.Join(toLocationID, path.Base(id))
	arg := files.NewRelocationArg(id, target)

	if _, err := s.client.MoveV2(arg); err != nil {
		return fmt.Errorf("move %s: %w", id, wrapLookupError(err))
	}
	return nil
}

// Claim renames the file to its claimed name via MoveV2. The move
// source is the path carrying currentName; once a concurrent claimer
// renames it, Dropbox reports the source as missing and this call
// reports a lost claim.
func (s *ContentStore) Claim(_ context.Context, id, currentName string) (string, bool, error) {
	dir := path.Dir(id)
	source := path.Join(dir, currentName)
	target := path.Join(dir, domain.ClaimedName(currentName))

	if _, err := s.client.MoveV2(files.NewRelocationArg(source, target)); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("claim %s: %w", source, err)
	}
	return target, true, nil
}

// LocationURL returns the folder's web URL.
func (s *ContentStore) LocationURL(locationID string) string {
	encoded := url.PathEscape(strings.TrimPrefix(locationID, "/"))
	return "https://www.dropbox.com/home/" + encoded
}

// Capabilities reports atomic claims: MoveV2 fails when the source path
// no longer exists, which is exactly the check-and-set the claim needs.
func (s *ContentStore) Capabilities() driven.StoreCapabilities {
	return driven.StoreCapabilities{AtomicClaim: true, AtomicMove: true}
}

// isNotFound reports whether the error is a missing-source lookup
// failure from a relocation call.
func isNotFound(err error) bool {
	var moveErr files.MoveV2APIError
	if errors.As(err, &moveErr) && moveErr.EndpointError != nil {
		lookup := moveErr.EndpointError.FromLookup
		return lookup != nil && lookup.Tag == files.LookupErrorNotFound
	}
	return false
}

// wrapLookupError maps missing-path failures onto domain.ErrNotFound.
func wrapLookupError(err error) error {
	if strings.Contains(err.Error(), "not_found") {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}
