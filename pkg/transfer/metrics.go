package transfer

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/David-Botos/movie-ingress/pkg/model"
)

// RunMetrics tracks metrics across cleaning runs
type RunMetrics struct {
	mu               sync.Mutex
	logger           *zap.Logger
	StartTime        time.Time
	EndTime          time.Time
	SuccessfulRuns   int
	FailedRuns       int
	TotalRowsSeen    int64
	TotalRowsKept    int64
	TotalCorrections int
	TotalPublished   int64
	ErrorCounts      map[ErrorCategory]int
}

// NewRunMetrics creates a new RunMetrics instance
func NewRunMetrics(logger *zap.Logger) *RunMetrics {
	return &RunMetrics{
		StartTime:   time.Now(),
		ErrorCounts: make(map[ErrorCategory]int),
		logger:      logger,
	}
}

// RecordRun records metrics for a completed run
func (m *RunMetrics) RecordRun(result *CleaningResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRowsSeen += int64(result.Stats.Seen)
	m.TotalRowsKept += int64(result.Stats.Kept)
	m.TotalCorrections += result.Corrections
	m.TotalPublished += result.RowsPublished

	m.recordRowErrors(result.Stats)

	if result.Success {
		m.SuccessfulRuns++
	} else {
		m.FailedRuns++
		for _, err := range result.Errors {
			m.ErrorCounts[err.Category]++
		}
	}

	if m.logger != nil {
		m.logger.Info("Cleaning run completed",
			zap.String("runID", result.JobID),
			zap.String("input", result.InputPath),
			zap.Bool("success", result.Success),
			zap.Int("rowsSeen", result.Stats.Seen),
			zap.Int("rowsKept", result.Stats.Kept),
			zap.Int("malformed", result.Stats.Malformed),
			zap.Int("invalid", result.Stats.Invalid),
			zap.Int("unexpected", result.Stats.Unexpected),
			zap.Int("corrections", result.Corrections),
			zap.Int64("published", result.RowsPublished),
			zap.Duration("duration", result.Duration))
	}
}

// recordRowErrors folds the per-row drop counters into the category counts.
// Called with the lock held.
func (m *RunMetrics) recordRowErrors(stats model.CleaningStats) {
	if stats.Malformed > 0 {
		m.ErrorCounts[ErrorCategoryMalformedRow] += stats.Malformed
	}
	if stats.Invalid > 0 {
		m.ErrorCounts[ErrorCategoryValidation] += stats.Invalid
	}
	if stats.Unexpected > 0 {
		m.ErrorCounts[ErrorCategoryUnexpectedRow] += stats.Unexpected
	}
}

// Complete marks the metrics window as closed
func (m *RunMetrics) Complete() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EndTime = time.Now()
}

// Duration returns the total duration covered by the metrics
func (m *RunMetrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// getPercentage safely calculates a percentage, avoiding division by zero
func getPercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * 100
}

// formatDuration formats a duration to a human-readable string
func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// ToJSON serializes metrics to JSON
func (m *RunMetrics) ToJSON() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[ErrorCategory]int, len(m.ErrorCounts))
	for category, count := range m.ErrorCounts {
		counts[category] = count
	}

	return json.Marshal(struct {
		Duration         string                `json:"duration"`
		SuccessfulRuns   int                   `json:"successfulRuns"`
		FailedRuns       int                   `json:"failedRuns"`
		TotalRowsSeen    int64                 `json:"totalRowsSeen"`
		TotalRowsKept    int64                 `json:"totalRowsKept"`
		KeepRate         float64               `json:"keepRate"`
		TotalCorrections int                   `json:"totalCorrections"`
		TotalPublished   int64                 `json:"totalPublished"`
		ErrorCounts      map[ErrorCategory]int `json:"errorCounts"`
	}{
		Duration:         formatDuration(m.Duration()),
		SuccessfulRuns:   m.SuccessfulRuns,
		FailedRuns:       m.FailedRuns,
		TotalRowsSeen:    m.TotalRowsSeen,
		TotalRowsKept:    m.TotalRowsKept,
		KeepRate:         getPercentage(float64(m.TotalRowsKept), float64(m.TotalRowsSeen)),
		TotalCorrections: m.TotalCorrections,
		TotalPublished:   m.TotalPublished,
		ErrorCounts:      counts,
	})
}
