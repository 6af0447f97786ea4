package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*ParquetHandler, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	var out bytes.Buffer
	next := slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})

	h, err := NewParquetHandler(next, dir)
	require.NoError(t, err)
	return h, &out, dir
}

func readRecords(t *testing.T, dir string) []LogRecord {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.parquet"))
	require.NoError(t, err)

	var records []LogRecord
	for _, path := range matches {
		rows, err := parquet.ReadFile[LogRecord](path)
		require.NoError(t, err)
		records = append(records, rows...)
	}
	return records
}

func TestParquetHandlerChainsToNext(t *testing.T) {
	h, out, _ := newTestHandler(t)
	log := slog.New(h)

	log.Info("catalog loaded", "types", 5)

	assert.Contains(t, out.String(), "catalog loaded")
	assert.Contains(t, out.String(), "types=5")
}

func TestParquetHandlerPersistsWarningsAndErrors(t *testing.T) {
	h, _, dir := newTestHandler(t)
	log := slog.New(h)

	log.Debug("noise")
	log.Info("more noise")
	log.Warn("entity store slow", "elapsed_ms", 1200)
	log.Error("entity store unreachable", "broker", "http://localhost:1026")

	require.NoError(t, h.Close())

	records := readRecords(t, dir)
	require.Len(t, records, 2)

	assert.Equal(t, "WARN", records[0].Level)
	assert.Equal(t, "entity store slow", records[0].Message)
	assert.Contains(t, records[0].Attributes, "elapsed_ms")
	assert.NotEmpty(t, records[0].ID)
	assert.NotEmpty(t, records[0].SourceFile)

	assert.Equal(t, "ERROR", records[1].Level)
	assert.Equal(t, "entity store unreachable", records[1].Message)
	assert.Contains(t, records[1].Attributes, "broker")
}

func TestParquetHandlerRecordsRequestID(t *testing.T) {
	h, _, dir := newTestHandler(t)
	log := slog.New(h)

	ctx := context.WithValue(context.Background(), ContextKeyRequestID, "req-123")
	log.ErrorContext(ctx, "read failed")

	require.NoError(t, h.Close())

	records := readRecords(t, dir)
	require.Len(t, records, 1)
	assert.Equal(t, "req-123", records[0].RequestID)
}

func TestParquetHandlerClonesShareSink(t *testing.T) {
	h, _, dir := newTestHandler(t)

	child := slog.New(h).With("component", "dispatcher")
	child.Warn("first")
	slog.New(h).WithGroup("req").Warn("second")

	require.NoError(t, h.Close())

	records := readRecords(t, dir)
	assert.Len(t, records, 2, "records from clones flush through the root handler")
}

func TestParquetHandlerCloseIsIdempotent(t *testing.T) {
	h, _, dir := newTestHandler(t)
	slog.New(h).Error("boom")

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
