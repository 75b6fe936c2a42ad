package domain

import "strconv"

// Media types retained from TMDB multi-search. Everything else (people,
// collections) is discarded.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// MediaSearchResult is one movie/TV search hit enriched with regional
// streaming availability.
type MediaSearchResult struct {
	TMDBID             int64    `json:"tmdb_id"`
	MediaType          string   `json:"media_type"`
	Title              string   `json:"title"`
	PosterPath         string   `json:"poster_path"`
	ReleaseYear        *int     `json:"release_year"`
	Genres             []string `json:"genres"`
	StreamingPlatforms []string `json:"streaming_platforms"`
	RentBuyPlatforms   []string `json:"rent_buy_platforms,omitempty"`
	Overview           string   `json:"overview"`
}

// IsSupportedMediaType reports whether a TMDB media_type belongs in results.
func IsSupportedMediaType(mediaType string) bool {
	return mediaType == MediaTypeMovie || mediaType == MediaTypeTV
}

// ReleaseYear derives the year from whichever date is present, preferring
// releaseDate over firstAirDate. The year is the integer value of the first
// four characters; nil when neither date is usable.
func ReleaseYear(releaseDate, firstAirDate string) *int {
	date := releaseDate
	if date == "" {
		date = firstAirDate
	}
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	return &year
}

var movieGenres = map[int64]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

var tvGenres = map[int64]string{
	10759: "Action & Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	10762: "Kids",
	9648:  "Mystery",
	10763: "News",
	10764: "Reality",
	10765: "Sci-Fi & Fantasy",
	10766: "Soap",
	10767: "Talk",
	10768: "War & Politics",
	37:    "Western",
}

// GenreNames joins genre IDs to display names using the fixed table for the
// media type. Unknown IDs are dropped, not placeholdered.
func GenreNames(mediaType string, ids []int64) []string {
	table := movieGenres
	if mediaType == MediaTypeTV {
		table = tvGenres
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := table[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
