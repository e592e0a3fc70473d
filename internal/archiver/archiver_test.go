package archiver

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"SAFE_AISafetySuite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readZipEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string]string)
	for _, f := range reader.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		entries[f.Name] = string(content)
	}
	return entries
}

func TestBuildReport(t *testing.T) {
	rec := models.AnalysisRecord{
		JobID:     "job-1",
		Module:    "moderation",
		Target:    "chat-log",
		Status:    models.AnalysisStatusCompleted,
		Result:    `{"job_id":"job-1","module":"moderation","status":"completed","summary":"1 moderation categories matched","findings":[{"type":"flagged_content","severity":"medium","description":"Keyword matched."}]}`,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	data, err := BuildReport(rec)
	require.NoError(t, err)

	entries := readZipEntries(t, data)
	require.Len(t, entries, 2)

	assert.JSONEq(t, rec.Result, entries["job-1_result.json"])

	summary := entries["summary.txt"]
	assert.Contains(t, summary, "Job ID:     job-1")
	assert.Contains(t, summary, "Module:     moderation")
	assert.Contains(t, summary, "1 moderation categories matched")
	assert.Contains(t, summary, "[medium] flagged_content")
}

func TestBuildReportWithoutResult(t *testing.T) {
	rec := models.AnalysisRecord{
		JobID:  "job-2",
		Module: "bias",
		Status: models.AnalysisStatusFailed,
	}

	data, err := BuildReport(rec)
	require.NoError(t, err)

	entries := readZipEntries(t, data)
	assert.Equal(t, "{}", entries["job-2_result.json"])
	assert.Contains(t, entries["summary.txt"], "Status:     failed")
}
