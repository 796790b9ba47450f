// pkg/model/cleaning.go
package model

import (
	"time"
)

// Cleaning operation types recorded when a correction table changes a value
const (
	OperationYearCorrection       = "year_correction"
	OperationGenreCorrection      = "genre_correction"
	OperationCountryNormalization = "country_normalization"
)

// CleaningOperation represents a single correction applied to a row
type CleaningOperation struct {
	RunID             string    `db:"run_id"`             // Cleaning run that applied the correction
	RowNumber         int       `db:"source_row"`         // 1-based data row number (header excluded)
	Title             string    `db:"title"`              // Title of the corrected movie
	ColumnName        string    `db:"column_name"`        // Column that was corrected
	OriginalValue     string    `db:"original_value"`     // Value before correction
	NewValue          string    `db:"new_value"`          // Value after correction
	CleaningOperation string    `db:"cleaning_operation"` // e.g. "year_correction"
	CleaningReason    string    `db:"cleaning_reason"`    // e.g. "known_title_override"
	CleanedAt         time.Time `db:"cleaned_at"`
}

// CleaningStats holds aggregate counters for one cleaning pass.
// Kept + Malformed + Invalid + Unexpected always equals Seen.
type CleaningStats struct {
	Seen       int
	Kept       int
	Malformed  int
	Invalid    int
	Unexpected int
}

// Dropped returns the number of rows that were not kept
func (s CleaningStats) Dropped() int {
	return s.Malformed + s.Invalid + s.Unexpected
}
