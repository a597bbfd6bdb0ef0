package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// AnswerRecord captures one resolved question for offline evaluation:
// which path answered it, whether any stage degraded, and how long it took.
type AnswerRecord struct {
	ID         string    `parquet:"id"`
	Timestamp  time.Time `parquet:"timestamp"`
	Question   string    `parquet:"question"`
	Intent     string    `parquet:"intent"`
	Source     string    `parquet:"source"`
	Degraded   bool      `parquet:"degraded"`
	Empty      bool      `parquet:"empty"`
	DurationMS int64     `parquet:"duration_ms"`
	Error      string    `parquet:"error"`
}

// AnswerWriter batches answer records to Parquet files.
type AnswerWriter struct {
	outputDir string
	mu        sync.Mutex
	buffer    []AnswerRecord
	batchSize int
}

// NewAnswerWriter creates a writer storing files under outputDir.
func NewAnswerWriter(outputDir string) (*AnswerWriter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}
	return &AnswerWriter{
		outputDir: outputDir,
		batchSize: 50,
		buffer:    make([]AnswerRecord, 0, 50),
	}, nil
}

// Record buffers one answer outcome.
func (w *AnswerWriter) Record(question string, answer *types.FormattedAnswer, duration time.Duration, err error) {
	rec := AnswerRecord{
		ID:         uuid.New().String(),
		Timestamp:  time.Now().UTC(),
		Question:   question,
		DurationMS: duration.Milliseconds(),
	}
	if answer != nil {
		rec.Intent = string(answer.Intent)
		rec.Source = string(answer.Source)
		rec.Degraded = answer.Degraded
		rec.Empty = answer.Empty
	}
	if err != nil {
		rec.Error = err.Error()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.buffer = append(w.buffer, rec)
	if len(w.buffer) >= w.batchSize {
		_ = w.flush()
	}
}

// Flush forces buffered records to disk.
func (w *AnswerWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flush()
}

// caller must hold the lock
func (w *AnswerWriter) flush() error {
	if len(w.buffer) == 0 {
		return nil
	}
	filename := fmt.Sprintf("answers_%s_%d.parquet", time.Now().Format("20060102_150405"), time.Now().UnixNano())
	path := filepath.Join(w.outputDir, filename)
	if err := parquet.WriteFile(path, w.buffer); err != nil {
		return fmt.Errorf("failed to write answer telemetry: %w", err)
	}
	w.buffer = w.buffer[:0]
	return nil
}
