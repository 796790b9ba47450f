// pkg/cleaner/corrections.go
package cleaner

// yearCorrections maps exact titles to their correct release year
var yearCorrections = map[string]int{
	"Memento": 2000, "Get Out": 2017, "The Incredibles": 2004,
	"The Hunger Games": 2012, "The Departed": 2006, "Inglourious Basterds": 2009,
	"Encanto": 2021, "Titanic": 1997, "Divergent": 2014, "Soul": 2020,
	"The Ring": 2002, "Toy Story": 1995, "The Flash": 2023, "The Godfather": 1972,
	"Forrest Gump": 1994, "The Suicide Squad": 2021, "Blue Beetle": 2023,
	"Shrek": 2001, "Django Unchained": 2012, "Spider-Man: No Way Home": 2021,
	"Frozen": 2013, "Superman": 1978, "Interstellar": 2014, "Iron Man": 2008,
	"Twilight": 2008, "Captain America: Civil War": 2016, "Deadpool": 2016,
	"Mad Max: Fury Road": 2015, "Inside Out": 2015, "Us": 2019,
	"Avengers: Endgame": 2019, "Insidious": 2010, "A Quiet Place": 2018,
	"Zootopia": 2016, "Big Hero 6": 2014, "Logan": 2017, "Birdman": 2014,
	"The Conjuring": 2013, "Catch Me If You Can": 2002, "Arrival": 2016,
	"Ratatouille": 2007, "Inception": 2010, "12 Years a Slave": 2013,
	"Guardians of the Galaxy": 2014, "Kung Fu Panda": 2008, "Wonder Woman": 2017,
	"Moana": 2016, "Man of Steel": 2013, "The Matrix": 1999, "Whiplash": 2014,
}

// genreCorrections maps exact titles to their correct genre
var genreCorrections = map[string]string{
	"Memento": "Thriller", "Get Out": "Horror", "The Incredibles": "Animation",
	"The Hunger Games": "Action", "The Departed": "Crime", "Inglourious Basterds": "War",
	"Encanto": "Animation", "Titanic": "Romance", "Divergent": "Action",
	"Soul": "Animation", "The Ring": "Horror", "Toy Story": "Animation",
	"The Flash": "Action", "The Godfather": "Crime", "Forrest Gump": "Drama",
	"The Suicide Squad": "Action", "Blue Beetle": "Action", "Shrek": "Animation",
	"Django Unchained": "Western", "Spider-Man: No Way Home": "Action",
	"Frozen": "Animation", "Superman": "Action", "Interstellar": "Sci-Fi",
	"Iron Man": "Action", "Twilight": "Romance", "Captain America: Civil War": "Action",
	"Deadpool": "Action", "Mad Max: Fury Road": "Action", "Inside Out": "Animation",
	"Us": "Horror", "Avengers: Endgame": "Action", "Insidious": "Horror",
	"A Quiet Place": "Horror", "Zootopia": "Animation", "Big Hero 6": "Animation",
	"Logan": "Action", "Birdman": "Drama", "The Conjuring": "Horror",
	"Catch Me If You Can": "Biography", "Arrival": "Sci-Fi", "Ratatouille": "Animation",
	"Inception": "Sci-Fi", "12 Years a Slave": "Biography",
}

// countryCorrections normalizes regional naming variants
var countryCorrections = map[string]string{
	"USA": "United States",
	"US":  "United States",
	"UK":  "United Kingdom",
}

// CorrectedYear returns the override year for a title, if one exists
func CorrectedYear(title string) (int, bool) {
	year, ok := yearCorrections[title]
	return year, ok
}

// CorrectedGenre returns the override genre for a title, if one exists
func CorrectedGenre(title string) (string, bool) {
	genre, ok := genreCorrections[title]
	return genre, ok
}

// NormalizeCountry maps a regional variant to its canonical name.
// Unknown values are returned unchanged.
func NormalizeCountry(country string) string {
	if normalized, ok := countryCorrections[country]; ok {
		return normalized
	}
	return country
}
