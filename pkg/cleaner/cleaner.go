// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/David-Botos/movie-ingress/pkg/model"
)

// RowCleaner applies the fixed correction tables and validation rules to raw movie rows
type RowCleaner struct {
	logger *zap.Logger
	now    func() time.Time
}

// CleanResult is the outcome of a single cleaning pass
type CleanResult struct {
	Records    []model.MovieRecord       // Kept records, in input order
	Operations []model.CleaningOperation // Corrections applied to kept records
	Stats      model.CleaningStats
}

// NewRowCleaner creates a new RowCleaner instance
func NewRowCleaner(logger *zap.Logger) (*RowCleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &RowCleaner{
		logger: logger,
		now:    time.Now,
	}, nil
}

// CleanRows runs one pass over the raw rows. A failing row is dropped and
// counted; it never aborts the pass.
func (c *RowCleaner) CleanRows(runID string, rows [][]string) *CleanResult {
	result := &CleanResult{
		Records: make([]model.MovieRecord, 0, len(rows)),
	}

	for i, row := range rows {
		result.Stats.Seen++
		rowNumber := i + 1

		record, operations, err := c.safeCleanRow(row, rowNumber, runID)
		if err != nil {
			switch {
			case errors.Is(err, ErrFieldCount), errors.Is(err, ErrParse):
				result.Stats.Malformed++
			case errors.Is(err, ErrValidation):
				result.Stats.Invalid++
			default:
				result.Stats.Unexpected++
			}
			continue
		}

		result.Records = append(result.Records, record)
		result.Operations = append(result.Operations, operations...)
		result.Stats.Kept++
	}

	c.logger.Debug("Cleaned rows",
		zap.String("runID", runID),
		zap.Int("seen", result.Stats.Seen),
		zap.Int("kept", result.Stats.Kept),
		zap.Int("corrections", len(result.Operations)))

	return result
}

// safeCleanRow runs cleanSingleRow and turns a panic into ErrUnexpected
func (c *RowCleaner) safeCleanRow(
	row []string,
	rowNumber int,
	runID string,
) (record model.MovieRecord, operations []model.CleaningOperation, err error) {
	defer func() {
		if r := recover(); r != nil {
			record, operations = model.MovieRecord{}, nil
			err = fmt.Errorf("%w: row %d: %v", ErrUnexpected, rowNumber, r)
		}
	}()
	return c.cleanSingleRow(row, rowNumber, runID)
}

// cleanSingleRow parses, corrects and validates a single raw row
func (c *RowCleaner) cleanSingleRow(
	row []string,
	rowNumber int,
	runID string,
) (model.MovieRecord, []model.CleaningOperation, error) {
	record, err := parseRecord(row)
	if err != nil {
		return model.MovieRecord{}, nil, err
	}

	operations := applyCorrections(&record, rowNumber, runID)

	if err := validateRecord(record); err != nil {
		return model.MovieRecord{}, nil, err
	}

	cleanedAt := c.now()
	for i := range operations {
		operations[i].CleanedAt = cleanedAt
	}

	return record, operations, nil
}
