package catalog

// MovieSummary is one row of a listing or search response. Summaries are
// ephemeral; the catalog id is the only stable handle.
type MovieSummary struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	OriginalLanguage string  `json:"original_language"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// MovieDetail is the full record shown on the detail screen. Cast is
// truncated to the leading entries of the credits response.
type MovieDetail struct {
	MovieSummary
	Overview string       `json:"overview"`
	Tagline  string       `json:"tagline"`
	Genres   []Genre      `json:"genres"`
	Cast     []CastMember `json:"-"`
}

type Video struct {
	Site string `json:"site"`
	Type string `json:"type"`
	Key  string `json:"key"`
}

// GenreNames returns the genre list as names, in response order.
func (d MovieDetail) GenreNames() []string {
	out := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		out = append(out, g.Name)
	}
	return out
}
