// Package drive implements the content store over Google Drive.
// Locations are Drive folder IDs; objects are files inside them.
package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/custodia-labs/echopress/internal/core/domain"
	"github.com/custodia-labs/echopress/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// MaxDownloadSize caps object payloads (10MB). Raw notes and artifacts
// are text; anything larger is not something the pipeline generates from.
const MaxDownloadSize = 10 * 1024 * 1024

// Conservative client-side rate limit, below Drive's 10/sec/user quota.
const (
	requestsPerSecond = 8.0
	burstSize         = 10
)

// ContentStore is a Google Drive-backed content store.
type ContentStore struct {
	svc     *drive.Service
	limiter *rate.Limiter
}

// New creates a Drive content store authenticated by the token source.
func New(ctx context.Context, ts oauth2.TokenSource) (*ContentStore, error) {
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return NewWithService(svc), nil
}

// NewWithService wraps an existing Drive service. Used by tests.
func NewWithService(svc *drive.Service) *ContentStore {
	return &ContentStore{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// List returns the files in a folder, oldest created first.
func (s *ContentStore) List(ctx context.Context, locationID string) ([]domain.Item, error) {
	var items []domain.Item
	pageToken := ""
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := s.svc.Files.List().
			Q(fmt.Sprintf("'%s' in parents and trashed = false", locationID)).
			Fields("nextPageToken, files(id, name, mimeType, createdTime)").
			OrderBy("createdTime").
			PageSize(100).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		list, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list folder %s: %w", locationID, wrapAPIError(err))
		}

		for _, f := range list.Files {
			if f.MimeType == "application/vnd.google-apps.folder" {
				continue
			}
			created, _ := time.Parse(time.RFC3339, f.CreatedTime)
			items = append(items, domain.Item{
				ID:        f.Id,
				Name:      f.Name,
				MIMEType:  f.MimeType,
				CreatedAt: created,
			})
		}

		pageToken = list.NextPageToken
		if pageToken == "" {
			return items, nil
		}
	}
}

// Download fetches a file's content.
func (s *ContentStore) Download(ctx context.Context, id string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.svc.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", id, wrapAPIError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", id, err)
	}
	return data, nil
}

// Upload creates a new file in a folder.
func (s *ContentStore) Upload(ctx context.Context, data []byte, name, mimeType, locationID string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	file := &drive.File{
		Name:     name,
		MimeType: mimeType,
		Parents:  []string{locationID},
	}
	created, err := s.svc.Files.Create(file).
		Media(bytes.NewReader(data)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, wrapAPIError(err))
	}
	return created.Id, nil
}

// Move reparents a file from one folder to another.
func (s *ContentStore) Move(ctx context.Context, id, fromLocationID, toLocationID string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := s.svc.Files.Update(id, nil).
		AddParents(toLocationID).
		RemoveParents(fromLocationID).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("move %s: %w", id, wrapAPIError(err))
	}
	return nil
}

// Claim renames the file to its claimed name after re-reading its
// current name. The Drive API has no conditional rename, so the
// get-then-update pair is not atomic; Capabilities reports the gap and
// callers decide whether that risk is acceptable for their deployment.
func (s *ContentStore) Claim(ctx context.Context, id, currentName string) (string, bool, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", false, err
	}

	file, err := s.svc.Files.Get(id).Fields("name").Context(ctx).Do()
	if err != nil {
		return "", false, fmt.Errorf("claim check %s: %w", id, wrapAPIError(err))
	}
	if file.Name != currentName {
		return "", false, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", false, err
	}
	_, err = s.svc.Files.Update(id, &drive.File{Name: domain.ClaimedName(currentName)}).
		Context(ctx).
		Do()
	if err != nil {
		return "", false, fmt.Errorf("claim rename %s: %w", id, wrapAPIError(err))
	}
	return id, true, nil
}

// LocationURL returns the folder's web URL.
func (s *ContentStore) LocationURL(locationID string) string {
	return "https://drive.google.com/drive/folders/" + locationID
}

// Capabilities reports the non-atomic claim; see Claim.
func (s *ContentStore) Capabilities() driven.StoreCapabilities {
	return driven.StoreCapabilities{AtomicClaim: false, AtomicMove: true}
}

// wrapAPIError maps Drive API status codes onto domain errors.
func wrapAPIError(err error) error {
	if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 404 {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}
