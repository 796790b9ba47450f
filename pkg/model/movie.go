// pkg/model/movie.go
package model

import (
	"strconv"
	"strings"
)

// Column names of the movie dataset, in file order
const (
	ColumnTitle     = "title"
	ColumnGenre     = "genre"
	ColumnYear      = "year"
	ColumnRating    = "rating"
	ColumnVotes     = "votes"
	ColumnDirector  = "director"
	ColumnDuration  = "duration"
	ColumnCountry   = "country"
	ColumnBoxOffice = "box_office"
)

// FieldCount is the number of fields every movie row must carry
const FieldCount = 9

// Columns returns the dataset columns in file order
func Columns() []string {
	return []string{
		ColumnTitle,
		ColumnGenre,
		ColumnYear,
		ColumnRating,
		ColumnVotes,
		ColumnDirector,
		ColumnDuration,
		ColumnCountry,
		ColumnBoxOffice,
	}
}

// MovieRecord is a single typed row of the movie dataset
type MovieRecord struct {
	Title            string  `db:"title"`
	Genre            string  `db:"genre"`
	Year             int     `db:"year"`
	Rating           float64 `db:"rating"`
	Votes            int     `db:"votes"`
	Director         string  `db:"director"`
	DurationMinutes  int     `db:"duration_minutes"`
	Country          string  `db:"country"`
	BoxOfficeMillion float64 `db:"box_office_million"`
}

// Valid bounds for cleaned records (inclusive)
const (
	MinYear      = 1900
	MaxYear      = 2023
	MinRating    = 1.0
	MaxRating    = 10.0
	MinDuration  = 30
	MaxDuration  = 240
	MinVotes     = 0
	MinBoxOffice = 0.0
	MaxBoxOffice = 3000.0
)

// Row renders the record in dataset column order
func (m MovieRecord) Row() []string {
	return []string{
		m.Title,
		m.Genre,
		strconv.Itoa(m.Year),
		FormatDecimal(m.Rating),
		strconv.Itoa(m.Votes),
		m.Director,
		strconv.Itoa(m.DurationMinutes),
		m.Country,
		FormatDecimal(m.BoxOfficeMillion),
	}
}

// FormatDecimal renders a decimal in shortest round-trip form and always
// keeps a fractional part, so 1800 is written as "1800.0"
func FormatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsAny(s, ".NI") {
		return s
	}
	return s + ".0"
}
