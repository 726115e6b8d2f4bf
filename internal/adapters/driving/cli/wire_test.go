package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/echopress/internal/adapters/driven/notify/discord"
	"github.com/custodia-labs/echopress/internal/adapters/driven/notify/noop"
	"github.com/custodia-labs/echopress/internal/adapters/driven/storage/dropbox"
	"github.com/custodia-labs/echopress/internal/adapters/driven/storage/filesystem"
)

func TestBuildContentStore_DefaultsToFilesystem(t *testing.T) {
	store, err := buildContentStore(&mockConfigStore{})

	require.NoError(t, err)
	assert.IsType(t, &filesystem.ContentStore{}, store)
}

func TestBuildContentStore_Dropbox(t *testing.T) {
	cfg := &mockConfigStore{values: map[string]any{
		keyStorageBackend:     "dropbox",
		keyDropboxAccessToken: "token",
	}}

	store, err := buildContentStore(cfg)

	require.NoError(t, err)
	assert.IsType(t, &dropbox.ContentStore{}, store)
}

func TestBuildContentStore_MissingCredentials(t *testing.T) {
	tests := []struct {
		backend string
		wantKey string
	}{
		{"drive", keyGoogleAccessToken},
		{"dropbox", keyDropboxAccessToken},
	}
	for _, tt := range tests {
		cfg := &mockConfigStore{values: map[string]any{keyStorageBackend: tt.backend}}

		_, err := buildContentStore(cfg)

		assert.Error(t, err, "backend %s", tt.backend)
		assert.Contains(t, err.Error(), tt.wantKey)
	}
}

func TestBuildContentStore_UnknownBackend(t *testing.T) {
	cfg := &mockConfigStore{values: map[string]any{keyStorageBackend: "ftp"}}

	_, err := buildContentStore(cfg)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestBuildNotifier_Discord(t *testing.T) {
	cfg := &mockConfigStore{values: map[string]any{
		keyDiscordWebhook: "https://discord.com/api/webhooks/1/abc",
	}}

	assert.IsType(t, &discord.Notifier{}, buildNotifier(cfg))
}

func TestBuildNotifier_DefaultsToNoop(t *testing.T) {
	assert.IsType(t, &noop.Notifier{}, buildNotifier(&mockConfigStore{}))
}

func TestResolveLocation_DriveURL(t *testing.T) {
	cfg := &mockConfigStore{values: map[string]any{
		keyStorageBackend: "drive",
		keySourceLocation: "https://drive.google.com/drive/folders/1AbC_def",
	}}

	assert.Equal(t, "1AbC_def", resolveLocation(cfg, keySourceLocation))
}

func TestResolveLocation_VerbatimForOtherBackends(t *testing.T) {
	cfg := &mockConfigStore{values: map[string]any{
		keySourceLocation: "/inbox",
	}}

	assert.Equal(t, "/inbox", resolveLocation(cfg, keySourceLocation))
}
