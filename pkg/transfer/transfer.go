package transfer

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/David-Botos/movie-ingress/pkg/cleaner"
	"github.com/David-Botos/movie-ingress/pkg/connector"
	"github.com/David-Botos/movie-ingress/pkg/dataset"
	"github.com/David-Botos/movie-ingress/pkg/model"
)

// Manager orchestrates a cleaning run: read, clean, write, publish
type Manager struct {
	rowCleaner *cleaner.RowCleaner
	publisher  connector.Publisher
	metrics    *RunMetrics
	logger     *zap.Logger
}

// NewManager creates a new run manager. publisher may be nil to skip publishing.
func NewManager(
	rowCleaner *cleaner.RowCleaner,
	publisher connector.Publisher,
	logger *zap.Logger,
) (*Manager, error) {
	if rowCleaner == nil {
		return nil, errors.New("row cleaner cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Manager{
		rowCleaner: rowCleaner,
		publisher:  publisher,
		metrics:    NewRunMetrics(logger),
		logger:     logger,
	}, nil
}

// Metrics returns the metrics collected across runs
func (m *Manager) Metrics() *RunMetrics {
	return m.metrics
}

// Run executes a cleaning job. Row-level problems never fail the run; a
// missing source, an unwritable output or a publish failure returns a *RunError.
func (m *Manager) Run(ctx context.Context, job CleaningJob) (*CleaningResult, error) {
	result := NewCleaningResult(job)

	m.logger.Info("Starting cleaning run",
		zap.String("runID", job.ID),
		zap.String("input", job.InputPath),
		zap.String("output", job.OutputPath))

	table, err := dataset.ReadTable(job.InputPath)
	if err != nil {
		return m.fail(result, newRunError(ErrorCategoryNone, err), job.InputPath)
	}

	if !slices.Equal(table.Header, model.Columns()) {
		m.logger.Warn("Source header differs from the movie columns; rows are still read by position",
			zap.Strings("header", table.Header),
			zap.Strings("expected", model.Columns()))
	}

	cleaned := m.rowCleaner.CleanRows(job.ID, table.Rows)
	result.Stats = cleaned.Stats
	result.Corrections = len(cleaned.Operations)

	output := &dataset.Table{
		Header: table.Header,
		Rows:   make([][]string, 0, len(cleaned.Records)),
	}
	for _, rec := range cleaned.Records {
		output.Rows = append(output.Rows, rec.Row())
	}

	if err := dataset.WriteTable(job.OutputPath, output); err != nil {
		return m.fail(result, newRunError(ErrorCategoryOutput, err), job.OutputPath)
	}

	if m.publisher != nil {
		published, err := m.publish(ctx, job.ID, cleaned)
		if err != nil {
			return m.fail(result, newRunError(ErrorCategoryPublish, err), "")
		}
		result.RowsPublished = published
	}

	result.Complete(true)
	m.metrics.RecordRun(result)
	return result, nil
}

// publish mirrors kept records and their correction audit. Destination
// tables are only created once the source has been read and cleaned.
func (m *Manager) publish(ctx context.Context, runID string, cleaned *cleaner.CleanResult) (int64, error) {
	if err := m.publisher.EnsureTables(ctx); err != nil {
		return 0, err
	}

	return m.publisher.Publish(ctx, runID, cleaned.Records, cleaned.Operations)
}

// fail records a run-level error and completes the result unsuccessfully
func (m *Manager) fail(result *CleaningResult, runErr *RunError, path string) (*CleaningResult, error) {
	result.AddError(NewErrorRecord(runErr.Err, runErr.Category).WithPath(path))
	result.Complete(false)
	m.metrics.RecordRun(result)

	m.logger.Error("Cleaning run failed",
		zap.String("runID", result.JobID),
		zap.String("category", runErr.Category.String()),
		zap.Error(runErr.Err))

	return result, runErr
}

// CleanFile runs a single job over inputPath and writes outputPath
func (m *Manager) CleanFile(ctx context.Context, inputPath, outputPath string) (*CleaningResult, error) {
	return m.Run(ctx, NewCleaningJob(inputPath, outputPath))
}

// Summary is the user-facing outcome of a run
type Summary struct {
	OriginalRows int
	CleanedRows  int
	OutputPath   string
}

// Summarize extracts the aggregate counts shown to the user
func (r *CleaningResult) Summarize() Summary {
	return Summary{
		OriginalRows: r.Stats.Seen,
		CleanedRows:  r.Stats.Kept,
		OutputPath:   r.OutputPath,
	}
}
