package catalog

// Filter is a named listing with a fixed upstream endpoint and parameters.
type Filter string

const (
	FilterPopular  Filter = "Popular"
	FilterTopRated Filter = "Top Rated"
	FilterAnime    Filter = "Anime"
	FilterHorror   Filter = "Horror"
)

type filterRoute struct {
	path   string
	params string
}

var filterRoutes = map[Filter]filterRoute{
	FilterPopular:  {path: "movie/popular"},
	FilterTopRated: {path: "movie/top_rated"},
	FilterAnime:    {path: "discover/movie", params: "&with_genres=16&sort_by=popularity.desc"},
	FilterHorror:   {path: "discover/movie", params: "&with_genres=27&sort_by=popularity.desc"},
}

// Filters returns the chips in display order.
func Filters() []Filter {
	return []Filter{FilterPopular, FilterTopRated, FilterAnime, FilterHorror}
}

// NormalizeFilter maps an unknown filter name to the default chip.
func NormalizeFilter(f Filter) Filter {
	if _, ok := filterRoutes[f]; ok {
		return f
	}
	return FilterPopular
}
