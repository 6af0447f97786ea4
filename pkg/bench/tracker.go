package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/iot-data-space/dataspace/pkg/llm"
)

// UsageRecord is one model call's token accounting for Parquet storage.
type UsageRecord struct {
	ID               string    `parquet:"id"`
	RunID            string    `parquet:"run_id"`
	Timestamp        time.Time `parquet:"timestamp"`
	Model            string    `parquet:"model"`
	PromptIndex      int       `parquet:"prompt_index"`
	PromptTokens     int       `parquet:"prompt_tokens"`
	CompletionTokens int       `parquet:"completion_tokens"`
	TotalTokens      int       `parquet:"total_tokens"`
}

// Tracker buffers per-call token usage and flushes it to parquet files in
// batches. All calls of one benchmark run share a run id.
type Tracker struct {
	outputDir string
	runID     string
	batchSize int

	mu     sync.Mutex
	buffer []UsageRecord
}

// NewTracker creates a tracker writing under outputDir.
func NewTracker(outputDir string) (*Tracker, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create token usage directory: %w", err)
	}

	return &Tracker{
		outputDir: outputDir,
		runID:     uuid.New().String(),
		batchSize: 100,
		buffer:    make([]UsageRecord, 0, 100),
	}, nil
}

// RunID returns the identifier shared by all records of this run.
func (t *Tracker) RunID() string {
	return t.runID
}

// Record buffers the usage of one model call. Calls without usage data are
// ignored.
func (t *Tracker) Record(promptIndex int, model string, usage *llm.TokenUsage) error {
	if usage == nil {
		return nil
	}

	record := UsageRecord{
		ID:               uuid.New().String(),
		RunID:            t.runID,
		Timestamp:        time.Now().UTC(),
		Model:            model,
		PromptIndex:      promptIndex,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.buffer = append(t.buffer, record)
	if len(t.buffer) >= t.batchSize {
		return t.flush()
	}
	return nil
}

// Close flushes any buffered records to disk.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flush()
}

// flush writes the current buffer to a new Parquet file.
// Caller must hold the lock.
func (t *Tracker) flush() error {
	if len(t.buffer) == 0 {
		return nil
	}

	filename := fmt.Sprintf("token_usage_%s_%d.parquet", time.Now().Format("20060102_150405"), time.Now().UnixNano())
	path := filepath.Join(t.outputDir, filename)

	if err := parquet.WriteFile(path, t.buffer); err != nil {
		return fmt.Errorf("failed to write token usage parquet file: %w", err)
	}

	t.buffer = t.buffer[:0]
	return nil
}
