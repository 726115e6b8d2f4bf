package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

func TestContentStore_ListOldestFirst(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	store.Put("inbox", domain.Item{ID: "b", Name: "newer.txt", CreatedAt: base.Add(time.Hour)}, nil)
	store.Put("inbox", domain.Item{ID: "a", Name: "older.txt", CreatedAt: base}, nil)
	store.Put("other", domain.Item{ID: "c", Name: "elsewhere.txt", CreatedAt: base}, nil)

	items, err := store.List(ctx, "inbox")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "older.txt", items[0].Name)
	assert.Equal(t, "newer.txt", items[1].Name)
}

func TestContentStore_UploadAndDownload(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	id, err := store.Upload(ctx, []byte("payload"), "notes.txt", "text/plain", "inbox")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	data, err := store.Download(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	items, err := store.List(ctx, "inbox")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "notes.txt", items[0].Name)
	assert.Equal(t, "text/plain", items[0].MIMEType)
}

func TestContentStore_DownloadMissing(t *testing.T) {
	store := NewContentStore()

	_, err := store.Download(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContentStore_Move(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	id := store.Put("approved", domain.Item{Name: "post_blog.md"}, []byte("x"))

	err := store.Move(ctx, id, "approved", "archive")
	require.NoError(t, err)

	approved, _ := store.List(ctx, "approved")
	archive, _ := store.List(ctx, "archive")
	assert.Empty(t, approved)
	require.Len(t, archive, 1)
}

func TestContentStore_MoveWrongSource(t *testing.T) {
	store := NewContentStore()
	id := store.Put("approved", domain.Item{Name: "post_blog.md"}, nil)

	err := store.Move(context.Background(), id, "inbox", "archive")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContentStore_ClaimWinsOnce(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	id := store.Put("inbox", domain.Item{Name: "notes.txt"}, nil)

	newID, won, err := store.Claim(ctx, id, "notes.txt")
	require.NoError(t, err)
	assert.True(t, won)
	assert.Equal(t, id, newID)

	// Same precondition again: the name changed, so the claim is lost.
	_, won, err = store.Claim(ctx, id, "notes.txt")
	require.NoError(t, err)
	assert.False(t, won)

	items, _ := store.List(ctx, "inbox")
	require.Len(t, items, 1)
	assert.Equal(t, "notes_processed.txt", items[0].Name)
	assert.True(t, items[0].Claimed())
}

func TestContentStore_ClaimConcurrentSingleWinner(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	id := store.Put("inbox", domain.Item{Name: "contested.txt"}, nil)

	const racers = 16
	wins := make(chan bool, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, won, err := store.Claim(ctx, id, "contested.txt")
			assert.NoError(t, err)
			wins <- won
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for won := range wins {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestContentStore_Capabilities(t *testing.T) {
	caps := NewContentStore().Capabilities()
	assert.True(t, caps.AtomicClaim)
	assert.True(t, caps.AtomicMove)
}
