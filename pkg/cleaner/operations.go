// pkg/cleaner/operations.go
package cleaner

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/David-Botos/movie-ingress/pkg/model"
)

// Row-level failure sentinels, checked with errors.Is
var (
	ErrFieldCount = errors.New("unexpected field count")
	ErrParse      = errors.New("numeric parse failure")
	ErrValidation = errors.New("value out of range")
	ErrUnexpected = errors.New("unexpected row failure")
)

// parseRecord destructures a raw row into a typed MovieRecord
func parseRecord(row []string) (model.MovieRecord, error) {
	if len(row) != model.FieldCount {
		return model.MovieRecord{}, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(row), model.FieldCount)
	}

	year, err := toInt(row[2])
	if err != nil {
		return model.MovieRecord{}, fmt.Errorf("%w: year: %v", ErrParse, err)
	}
	rating, err := toFloat(row[3])
	if err != nil {
		return model.MovieRecord{}, fmt.Errorf("%w: rating: %v", ErrParse, err)
	}
	votes, err := toInt(row[4])
	if err != nil {
		return model.MovieRecord{}, fmt.Errorf("%w: votes: %v", ErrParse, err)
	}
	duration, err := toInt(row[6])
	if err != nil {
		return model.MovieRecord{}, fmt.Errorf("%w: duration: %v", ErrParse, err)
	}
	boxOffice, err := toFloat(row[8])
	if err != nil {
		return model.MovieRecord{}, fmt.Errorf("%w: box_office: %v", ErrParse, err)
	}

	return model.MovieRecord{
		Title:            row[0],
		Genre:            row[1],
		Year:             year,
		Rating:           rating,
		Votes:            votes,
		Director:         row[5],
		DurationMinutes:  duration,
		Country:          row[7],
		BoxOfficeMillion: boxOffice,
	}, nil
}

// applyCorrections overrides year, genre and country from the fixed tables.
// An operation is returned for every field whose value actually changed.
func applyCorrections(rec *model.MovieRecord, rowNumber int, runID string) []model.CleaningOperation {
	var operations []model.CleaningOperation

	if year, ok := CorrectedYear(rec.Title); ok && year != rec.Year {
		operations = append(operations, newOperation(rec.Title, rowNumber, runID,
			model.ColumnYear, strconv.Itoa(rec.Year), strconv.Itoa(year),
			model.OperationYearCorrection, "known_title_override"))
		rec.Year = year
	}

	if genre, ok := CorrectedGenre(rec.Title); ok && genre != rec.Genre {
		operations = append(operations, newOperation(rec.Title, rowNumber, runID,
			model.ColumnGenre, rec.Genre, genre,
			model.OperationGenreCorrection, "known_title_override"))
		rec.Genre = genre
	}

	if country := NormalizeCountry(rec.Country); country != rec.Country {
		operations = append(operations, newOperation(rec.Title, rowNumber, runID,
			model.ColumnCountry, rec.Country, country,
			model.OperationCountryNormalization, "regional_variant"))
		rec.Country = country
	}

	return operations
}

func newOperation(title string, rowNumber int, runID, column, original, updated, operation, reason string) model.CleaningOperation {
	return model.CleaningOperation{
		RunID:             runID,
		RowNumber:         rowNumber,
		Title:             title,
		ColumnName:        column,
		OriginalValue:     original,
		NewValue:          updated,
		CleaningOperation: operation,
		CleaningReason:    reason,
	}
}

// validateRecord checks the numeric invariants of a corrected record
func validateRecord(rec model.MovieRecord) error {
	if rec.Year < model.MinYear || rec.Year > model.MaxYear {
		return fmt.Errorf("%w: year %d", ErrValidation, rec.Year)
	}
	// NaN fails both comparisons, so test the accepted range
	if !(rec.Rating >= model.MinRating && rec.Rating <= model.MaxRating) {
		return fmt.Errorf("%w: rating %v", ErrValidation, rec.Rating)
	}
	if rec.DurationMinutes < model.MinDuration || rec.DurationMinutes > model.MaxDuration {
		return fmt.Errorf("%w: duration %d", ErrValidation, rec.DurationMinutes)
	}
	if rec.Votes < model.MinVotes {
		return fmt.Errorf("%w: votes %d", ErrValidation, rec.Votes)
	}
	if !(rec.BoxOfficeMillion >= model.MinBoxOffice && rec.BoxOfficeMillion <= model.MaxBoxOffice) {
		return fmt.Errorf("%w: box_office %v", ErrValidation, rec.BoxOfficeMillion)
	}
	return nil
}

// int64 bounds as float64; every float64 at or beyond 2^53 is already integral
const (
	minIntFloat = -(1 << 63)
	maxIntFloat = 1 << 63
)

// toFloat parses a decimal field, tolerating surrounding whitespace
func toFloat(v string) (float64, error) {
	cleaned := strings.TrimSpace(v)
	if cleaned == "" {
		return 0, errors.New("empty string")
	}
	return strconv.ParseFloat(cleaned, 64)
}

// toInt parses an integer field through a decimal so "1998.0" is accepted.
// The fractional part is truncated toward zero.
func toInt(v string) (int, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("cannot convert %q to int", v)
	}
	if f < minIntFloat || f >= maxIntFloat {
		return 0, fmt.Errorf("value %q overflows int64", v)
	}
	return int(f), nil
}
