package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/echopress/internal/core/domain"
	"github.com/custodia-labs/echopress/internal/core/ports/driven"
)

// fakeStore is an in-memory ContentStore test double with switches for
// the failure modes the orchestrators must survive.
type fakeStore struct {
	mu        sync.Mutex
	locations map[string][]domain.Item
	payloads  map[string][]byte

	uploads []upload
	moves   []move

	caps        driven.StoreCapabilities
	claimLost   bool
	claimErr    error
	downloadErr error
	uploadErr   error
	moveErr     error
	listErr     error
	locationURL string
}

type upload struct {
	name       string
	mimeType   string
	locationID string
	data       string
}

type move struct {
	id   string
	from string
	to   string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		locations: make(map[string][]domain.Item),
		payloads:  make(map[string][]byte),
		caps:      driven.StoreCapabilities{AtomicClaim: true, AtomicMove: true},
	}
}

func (s *fakeStore) add(locationID string, item domain.Item, payload []byte) {
	s.locations[locationID] = append(s.locations[locationID], item)
	s.payloads[item.ID] = payload
}

func (s *fakeStore) List(_ context.Context, locationID string) ([]domain.Item, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Item(nil), s.locations[locationID]...), nil
}

func (s *fakeStore) Download(_ context.Context, id string) ([]byte, error) {
	if s.downloadErr != nil {
		return nil, s.downloadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.payloads[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (s *fakeStore) Upload(_ context.Context, data []byte, name, mimeType, locationID string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, upload{
		name:       name,
		mimeType:   mimeType,
		locationID: locationID,
		data:       string(data),
	})
	return fmt.Sprintf("upload-%d", len(s.uploads)), nil
}

func (s *fakeStore) Move(_ context.Context, id, from, to string) error {
	if s.moveErr != nil {
		return s.moveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves = append(s.moves, move{id: id, from: from, to: to})

	kept := s.locations[from][:0]
	for _, item := range s.locations[from] {
		if item.ID == id {
			s.locations[to] = append(s.locations[to], item)
			continue
		}
		kept = append(kept, item)
	}
	s.locations[from] = kept
	return nil
}

func (s *fakeStore) Claim(_ context.Context, id, currentName string) (string, bool, error) {
	if s.claimErr != nil {
		return "", false, s.claimErr
	}
	if s.claimLost {
		return "", false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for loc, items := range s.locations {
		for i, item := range items {
			if item.ID == id && item.Name == currentName {
				s.locations[loc][i].Name = domain.ClaimedName(currentName)
				return id, true, nil
			}
		}
	}
	return "", false, nil
}

func (s *fakeStore) LocationURL(string) string { return s.locationURL }

func (s *fakeStore) Capabilities() driven.StoreCapabilities { return s.caps }

// fakeRegistry returns the payload as text, or a canned error.
type fakeRegistry struct {
	err error
}

func (r *fakeRegistry) Extract(_ context.Context, data []byte, _ string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return string(data), nil
}

// fakeGenerator produces deterministic artifacts keyed by kind.
type fakeGenerator struct {
	outputs map[domain.ArtifactKind]string
	errs    map[domain.ArtifactKind]error
	calls   []domain.ArtifactKind
}

func (g *fakeGenerator) Generate(_ context.Context, _ string, kind domain.ArtifactKind) (string, error) {
	g.calls = append(g.calls, kind)
	if err := g.errs[kind]; err != nil {
		return "", err
	}
	if out, ok := g.outputs[kind]; ok {
		return out, nil
	}
	return "generated " + string(kind), nil
}

func (g *fakeGenerator) ModelName() string { return "fake-model" }

// fakePublisher records created pages.
type fakePublisher struct {
	err   error
	pages []createdPage
}

type createdPage struct {
	title      string
	blocks     []domain.Block
	properties map[string]string
}

func (p *fakePublisher) CreatePage(_ context.Context, title string, blocks []domain.Block, properties map[string]string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.pages = append(p.pages, createdPage{title: title, blocks: blocks, properties: properties})
	return fmt.Sprintf("page-%d", len(p.pages)), nil
}

// fakeNotifier records delivered events.
type fakeNotifier struct {
	reviews   []driven.ReviewEvent
	published []driven.PublishEvent
	errors    []driven.ErrorEvent
}

func (n *fakeNotifier) ReviewReady(_ context.Context, ev driven.ReviewEvent) {
	n.reviews = append(n.reviews, ev)
}

func (n *fakeNotifier) Published(_ context.Context, ev driven.PublishEvent) {
	n.published = append(n.published, ev)
}

func (n *fakeNotifier) Error(_ context.Context, ev driven.ErrorEvent) {
	n.errors = append(n.errors, ev)
}

// fakeReportStore records journalled runs.
type fakeReportStore struct {
	saved   []domain.RunRecord
	saveErr error
}

func (r *fakeReportStore) SaveRun(_ context.Context, rec domain.RunRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, rec)
	return nil
}

func (r *fakeReportStore) ListRuns(_ context.Context, limit int) ([]domain.RunRecord, error) {
	if limit > len(r.saved) {
		limit = len(r.saved)
	}
	out := make([]domain.RunRecord, 0, limit)
	for i := len(r.saved) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.saved[i])
	}
	return out, nil
}

func (r *fakeReportStore) Close() error { return nil }
