package cleaner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-Botos/movie-ingress/pkg/model"
)

func newTestCleaner(t *testing.T) *RowCleaner {
	t.Helper()
	c, err := NewRowCleaner(zap.NewNop())
	require.NoError(t, err)
	c.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return c
}

func TestNewRowCleanerRequiresLogger(t *testing.T) {
	_, err := NewRowCleaner(nil)
	require.Error(t, err)
}

func TestCleanRowsTitanicCorrected(t *testing.T) {
	c := newTestCleaner(t)

	result := c.CleanRows("run-1", [][]string{
		{"Titanic", "Romance", "1998", "7.8", "100000", "Cameron", "195", "USA", "1800"},
	})

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, 1997, rec.Year)
	assert.Equal(t, "United States", rec.Country)
	assert.Equal(t, "Romance", rec.Genre)
	assert.Equal(t, 1, result.Stats.Seen)
	assert.Equal(t, 1, result.Stats.Kept)

	// genre already matched the table, so only year and country are audited
	require.Len(t, result.Operations, 2)
	assert.Equal(t, model.OperationYearCorrection, result.Operations[0].CleaningOperation)
	assert.Equal(t, "1998", result.Operations[0].OriginalValue)
	assert.Equal(t, "1997", result.Operations[0].NewValue)
	assert.Equal(t, model.OperationCountryNormalization, result.Operations[1].CleaningOperation)
	for _, op := range result.Operations {
		assert.Equal(t, "run-1", op.RunID)
		assert.Equal(t, 1, op.RowNumber)
		assert.False(t, op.CleanedAt.IsZero())
	}
}

func TestCleanRowsOverridesFromTables(t *testing.T) {
	c := newTestCleaner(t)

	rows := [][]string{
		{"Inception", "Drama", "2011", "8.8", "2000000", "Nolan", "148", "UK", "836.8"},
		{"The Matrix", "Action", "2001", "8.7", "1900000", "Wachowski", "136", "US", "467.2"},
		{"Unknown Film", "Comedy", "2005", "6.1", "1200", "Nobody", "99", "France", "3.5"},
	}
	result := c.CleanRows("run-2", rows)

	require.Len(t, result.Records, 3)
	for _, rec := range result.Records {
		if year, ok := CorrectedYear(rec.Title); ok {
			assert.Equal(t, year, rec.Year, rec.Title)
		}
		if genre, ok := CorrectedGenre(rec.Title); ok {
			assert.Equal(t, genre, rec.Genre, rec.Title)
		}
	}
	assert.Equal(t, "Sci-Fi", result.Records[0].Genre)
	assert.Equal(t, 2010, result.Records[0].Year)
	assert.Equal(t, "United Kingdom", result.Records[0].Country)
	assert.Equal(t, 1999, result.Records[1].Year)
	assert.Equal(t, "Action", result.Records[1].Genre)
	assert.Equal(t, "United States", result.Records[1].Country)

	unknown := result.Records[2]
	assert.Equal(t, 2005, unknown.Year)
	assert.Equal(t, "Comedy", unknown.Genre)
	assert.Equal(t, "France", unknown.Country)
}

func TestCleanRowsDropsMalformedAndInvalid(t *testing.T) {
	c := newTestCleaner(t)

	rows := [][]string{
		{"Good", "Drama", "2001", "7.0", "10", "A", "100", "Spain", "10"},
		{"Rating NA", "Drama", "2001", "N/A", "10", "A", "100", "Spain", "10"},
		{"Eight Fields", "Drama", "2001", "7.0", "10", "A", "100", "Spain"},
		{"Too Old", "Drama", "1899", "7.0", "10", "A", "100", "Spain", "10"},
		{"Too Long", "Drama", "2001", "7.0", "10", "A", "241", "Spain", "10"},
		{"Negative Votes", "Drama", "2001", "7.0", "-1", "A", "100", "Spain", "10"},
		{"Huge Box Office", "Drama", "2001", "7.0", "10", "A", "100", "Spain", "3000.5"},
		{"Low Rating", "Drama", "2001", "0.9", "10", "A", "100", "Spain", "10"},
		{"NaN Rating", "Drama", "2001", "nan", "10", "A", "100", "Spain", "10"},
		{"Inf Year", "Drama", "inf", "7.0", "10", "A", "100", "Spain", "10"},
		{},
		{"Edge", "Drama", "2023.9", "10.0", "0", "A", "30", "Spain", "3000"},
	}
	result := c.CleanRows("run-3", rows)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "Good", result.Records[0].Title)
	assert.Equal(t, "Edge", result.Records[1].Title)
	assert.Equal(t, 2023, result.Records[1].Year)

	stats := result.Stats
	assert.Equal(t, len(rows), stats.Seen)
	assert.Equal(t, 2, stats.Kept)
	assert.Equal(t, 4, stats.Malformed)
	assert.Equal(t, 6, stats.Invalid)
	assert.Zero(t, stats.Unexpected)
	assert.Equal(t, stats.Seen, stats.Kept+stats.Dropped())
}

func TestCleanRowsEmittedRowsSatisfyInvariants(t *testing.T) {
	c := newTestCleaner(t)

	var rows [][]string
	for _, year := range []string{"1850", "1900", "1999", "2023", "2024"} {
		for _, rating := range []string{"0.5", "1.0", "5.5", "10.0", "10.1"} {
			for _, duration := range []string{"29", "30", "240", "241"} {
				for _, boxOffice := range []string{"-0.1", "0", "3000", "3001"} {
					rows = append(rows, []string{"T", "G", year, rating, "5", "D", duration, "C", boxOffice})
				}
			}
		}
	}

	result := c.CleanRows("grid", rows)
	require.NotEmpty(t, result.Records)
	for _, rec := range result.Records {
		assert.NoError(t, validateRecord(rec))
		assert.GreaterOrEqual(t, rec.Year, 1900)
		assert.LessOrEqual(t, rec.Year, 2023)
		assert.GreaterOrEqual(t, rec.Rating, 1.0)
		assert.LessOrEqual(t, rec.Rating, 10.0)
		assert.GreaterOrEqual(t, rec.DurationMinutes, 30)
		assert.LessOrEqual(t, rec.DurationMinutes, 240)
		assert.GreaterOrEqual(t, rec.BoxOfficeMillion, 0.0)
		assert.LessOrEqual(t, rec.BoxOfficeMillion, 3000.0)
	}
	// 3 years x 3 ratings x 2 durations x 2 box office values
	assert.Equal(t, 36, result.Stats.Kept)
	assert.Equal(t, result.Stats.Seen, result.Stats.Kept+result.Stats.Dropped())
}

func TestCleanRowsPreservesOrder(t *testing.T) {
	c := newTestCleaner(t)

	rows := [][]string{
		{"C", "G", "2000", "5", "1", "D", "90", "X", "1"},
		{"bad"},
		{"A", "G", "2001", "5", "1", "D", "90", "X", "1"},
		{"B", "G", "2002", "5", "1", "D", "90", "X", "1"},
	}
	result := c.CleanRows("order", rows)

	var titles []string
	for _, rec := range result.Records {
		titles = append(titles, rec.Title)
	}
	assert.Equal(t, []string{"C", "A", "B"}, titles)
}

func TestCleanRowsRecoversPanics(t *testing.T) {
	c := newTestCleaner(t)
	calls := 0
	c.now = func() time.Time {
		calls++
		if calls == 1 {
			panic("clock failure")
		}
		return time.Now()
	}

	rows := [][]string{
		{"First", "G", "2000", "5", "1", "D", "90", "X", "1"},
		{"Second", "G", "2000", "5", "1", "D", "90", "X", "1"},
	}
	result := c.CleanRows("panic", rows)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "Second", result.Records[0].Title)
	assert.Equal(t, 1, result.Stats.Unexpected)
	assert.Equal(t, 2, result.Stats.Seen)
}

func TestCleanRowsEmptyInput(t *testing.T) {
	c := newTestCleaner(t)

	result := c.CleanRows("empty", nil)
	assert.Empty(t, result.Records)
	assert.Equal(t, model.CleaningStats{}, result.Stats)
}

func TestCleanRowsKeepsHugeVoteCounts(t *testing.T) {
	c := newTestCleaner(t)

	result := c.CleanRows("votes", [][]string{
		{"Viral", "Drama", "2020", "7.0", "1e17", "A", "100", "Spain", "10"},
	})

	require.Len(t, result.Records, 1)
	assert.Equal(t, 100000000000000000, result.Records[0].Votes)
	assert.Equal(t, "100000000000000000", result.Records[0].Row()[4])
}
