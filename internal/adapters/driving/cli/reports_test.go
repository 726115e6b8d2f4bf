package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

// mockReportStore implements driven.ReportStore for testing.
type mockReportStore struct {
	runs []domain.RunRecord
}

func (m *mockReportStore) SaveRun(_ context.Context, rec domain.RunRecord) error {
	m.runs = append(m.runs, rec)
	return nil
}

func (m *mockReportStore) ListRuns(_ context.Context, _ int) ([]domain.RunRecord, error) {
	return m.runs, nil
}

func (m *mockReportStore) Close() error { return nil }

func setupReportsTest(mock *mockReportStore) func() {
	old := reportStore
	reportStore = mock
	return func() {
		reportStore = old
	}
}

func TestReportsCmd_Use(t *testing.T) {
	assert.Equal(t, "reports", reportsCmd.Use)
}

func TestReportsCmd_Empty(t *testing.T) {
	cleanup := setupReportsTest(&mockReportStore{})
	defer cleanup()

	buf, err := execute("reports")

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No runs recorded yet.")
}

func TestReportsCmd_ListsRuns(t *testing.T) {
	started := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	cleanup := setupReportsTest(&mockReportStore{
		runs: []domain.RunRecord{
			{
				Kind:       domain.RunPipeline,
				StartedAt:  started,
				FinishedAt: started.Add(3 * time.Second),
				Processed:  2,
				Failed:     1,
				Outcomes: []domain.ItemOutcome{
					{ItemName: "bad.docx", Status: domain.StatusFailed, Err: "extract: invalid input"},
				},
			},
		},
	})
	defer cleanup()

	buf, err := execute("reports")

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "2026-03-01 09:30:00")
	assert.Contains(t, buf.String(), "pipeline")
	assert.Contains(t, buf.String(), "2 processed, 0 skipped, 1 failed")
	assert.Contains(t, buf.String(), "bad.docx: extract: invalid input")
}

func TestReportsCmd_NotConfigured(t *testing.T) {
	cleanup := setupReportsTest(nil)
	reportStore = nil
	defer cleanup()

	_, err := execute("reports")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "run journal not configured")
}
