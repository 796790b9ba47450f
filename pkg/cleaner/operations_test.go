package cleaner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David-Botos/movie-ingress/pkg/model"
)

func TestToInt(t *testing.T) {
	valid := map[string]int{
		"1998":    1998,
		"1998.0":  1998,
		" 195 ":   195,
		"99.9":    99,
		"-3.7":    -3,
		"1e3":     1000,
		"2000000": 2000000,
		"1e17":    100000000000000000,
		"-1e18":   -1000000000000000000,
	}
	for in, want := range valid {
		got, err := toInt(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "  ", "N/A", "abc", "nan", "inf", "-Infinity", "1e300", "9.3e18", "-9.3e18"} {
		_, err := toInt(in)
		assert.Error(t, err, in)
	}
}

func TestToFloat(t *testing.T) {
	got, err := toFloat(" 7.8 ")
	require.NoError(t, err)
	assert.Equal(t, 7.8, got)

	_, err = toFloat("N/A")
	assert.Error(t, err)
	_, err = toFloat("")
	assert.Error(t, err)
}

func TestParseRecordFieldCount(t *testing.T) {
	_, err := parseRecord([]string{"a", "b"})
	assert.True(t, errors.Is(err, ErrFieldCount))

	row := make([]string, model.FieldCount+1)
	_, err = parseRecord(row)
	assert.True(t, errors.Is(err, ErrFieldCount))
}

func TestParseRecordParseFailure(t *testing.T) {
	_, err := parseRecord([]string{"T", "G", "2000", "7", "many", "D", "90", "C", "1"})
	assert.True(t, errors.Is(err, ErrParse))
	assert.Contains(t, err.Error(), "votes")
}

func TestValidateRecordBounds(t *testing.T) {
	base := model.MovieRecord{Year: 2000, Rating: 5, Votes: 0, DurationMinutes: 90, BoxOfficeMillion: 0}
	require.NoError(t, validateRecord(base))

	mutations := map[string]func(*model.MovieRecord){
		"year low":       func(r *model.MovieRecord) { r.Year = 1899 },
		"year high":      func(r *model.MovieRecord) { r.Year = 2024 },
		"rating low":     func(r *model.MovieRecord) { r.Rating = 0.99 },
		"rating high":    func(r *model.MovieRecord) { r.Rating = 10.01 },
		"duration low":   func(r *model.MovieRecord) { r.DurationMinutes = 29 },
		"duration high":  func(r *model.MovieRecord) { r.DurationMinutes = 241 },
		"votes negative": func(r *model.MovieRecord) { r.Votes = -1 },
		"box office neg": func(r *model.MovieRecord) { r.BoxOfficeMillion = -0.01 },
		"box office max": func(r *model.MovieRecord) { r.BoxOfficeMillion = 3000.01 },
	}
	for name, mutate := range mutations {
		rec := base
		mutate(&rec)
		err := validateRecord(rec)
		assert.True(t, errors.Is(err, ErrValidation), name)
	}
}

func TestApplyCorrectionsUnchangedValuesNotAudited(t *testing.T) {
	rec := model.MovieRecord{Title: "Frozen", Year: 2013, Genre: "Animation", Country: "United States"}
	ops := applyCorrections(&rec, 4, "run")
	assert.Empty(t, ops)

	rec.Country = "US"
	ops = applyCorrections(&rec, 4, "run")
	require.Len(t, ops, 1)
	assert.Equal(t, model.ColumnCountry, ops[0].ColumnName)
	assert.Equal(t, "US", ops[0].OriginalValue)
	assert.Equal(t, "United States", rec.Country)
}

func TestCorrectionTables(t *testing.T) {
	assert.Len(t, yearCorrections, 50)
	assert.Len(t, genreCorrections, 43)

	year, ok := CorrectedYear("Titanic")
	assert.True(t, ok)
	assert.Equal(t, 1997, year)

	_, ok = CorrectedYear("titanic")
	assert.False(t, ok, "lookups are exact match")

	genre, ok := CorrectedGenre("Django Unchained")
	assert.True(t, ok)
	assert.Equal(t, "Western", genre)

	assert.Equal(t, "United Kingdom", NormalizeCountry("UK"))
	assert.Equal(t, "Canada", NormalizeCountry("Canada"))
}
