package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockConfigStore implements driven.ConfigStore for testing.
type mockConfigStore struct {
	values map[string]any
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if v, ok := m.values[key].(int); ok {
		return v
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return ""
}

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch", watchCmd.Use)
}

func TestWatchCmd_NotConfigured(t *testing.T) {
	cleanup := setupRunTest(nil)
	pipelineOrchestrator = nil
	defer cleanup()

	_, err := execute("watch")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline not configured")
}

func TestWatchCmd_RequiresFilesystemBackend(t *testing.T) {
	cleanup := setupRunTest(&mockPipelineOrchestrator{})
	defer cleanup()

	oldConfig := configStore
	configStore = &mockConfigStore{values: map[string]any{
		keyStorageBackend: "drive",
	}}
	defer func() {
		configStore = oldConfig
	}()

	_, err := execute("watch")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "filesystem storage backend")
}

func TestWatchCmd_RequiresSourceLocation(t *testing.T) {
	cleanup := setupRunTest(&mockPipelineOrchestrator{})
	defer cleanup()

	oldConfig := configStore
	oldSource := sourceLocation
	configStore = &mockConfigStore{values: map[string]any{}}
	sourceLocation = ""
	defer func() {
		configStore = oldConfig
		sourceLocation = oldSource
	}()

	_, err := execute("watch")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "storage.source_location")
}
