package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testServer(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key")
}

func TestListByFilterParsesResults(t *testing.T) {
	var gotPath, gotQuery string
	c := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"results":[{"id":27205,"title":"Inception","poster_path":"/p.jpg","release_date":"2010-07-16","vote_average":8.4,"original_language":"en"}]}`)
	}))

	movies, err := c.ListByFilter(context.Background(), FilterPopular)
	if err != nil {
		t.Fatalf("list popular: %v", err)
	}
	if gotPath != "/movie/popular" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotQuery != "api_key=test-key" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(movies) != 1 || movies[0].Title != "Inception" || movies[0].ID != 27205 {
		t.Fatalf("unexpected movies: %#v", movies)
	}
}

func TestListByFilterDiscoverCarriesGenreParams(t *testing.T) {
	var gotURL string
	c := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		fmt.Fprint(w, `{"results":[]}`)
	}))

	if _, err := c.ListByFilter(context.Background(), FilterHorror); err != nil {
		t.Fatalf("list horror: %v", err)
	}
	want := "/discover/movie?api_key=test-key&with_genres=27&sort_by=popularity.desc"
	if gotURL != want {
		t.Fatalf("unexpected discover url %q, want %q", gotURL, want)
	}
}

func TestListingMalformedBodyDegradesToEmpty(t *testing.T) {
	c := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>maintenance</html>`)
	}))

	movies, err := c.ListByFilter(context.Background(), FilterPopular)
	if err != nil {
		t.Fatalf("expected degraded empty list, got error: %v", err)
	}
	if len(movies) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(movies))
	}
}

func TestListingMissingResultsFieldDegradesToEmpty(t *testing.T) {
	c := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"page":1}`)
	}))

	movies, err := c.Search(context.Background(), "dune")
	if err != nil {
		t.Fatalf("expected degraded empty list, got error: %v", err)
	}
	if len(movies) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(movies))
	}
}

func TestSearchEscapesQuery(t *testing.T) {
	var gotQuery string
	c := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		fmt.Fprint(w, `{"results":[]}`)
	}))

	if _, err := c.Search(context.Background(), "blade runner & co"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotQuery != "blade runner & co" {
		t.Fatalf("query not round-tripped through escaping: %q", gotQuery)
	}
}

func TestGetDetailJoinsCreditsAndTruncatesCast(t *testing.T) {
	c := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/27205":
			fmt.Fprint(w, `{"id":27205,"title":"Inception","overview":"A thief...","tagline":"Your mind is the scene of the crime.","genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]}`)
		case "/movie/27205/credits":
			fmt.Fprint(w, `{"cast":[`+castJSON(12)+`]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	detail, err := c.GetDetail(context.Background(), 27205)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if detail.Title != "Inception" || detail.Tagline == "" {
		t.Fatalf("unexpected detail: %#v", detail)
	}
	if len(detail.Cast) != 10 {
		t.Fatalf("expected cast truncated to 10, got %d", len(detail.Cast))
	}
	if detail.Cast[0].Name != "actor-0" {
		t.Fatalf("cast order not preserved: %#v", detail.Cast[0])
	}
	if got := detail.GenreNames(); len(got) != 2 || got[1] != "Science Fiction" {
		t.Fatalf("unexpected genre names: %#v", got)
	}
}

func TestGetDetailUnknownIDIsNotFound(t *testing.T) {
	c := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetDetail(context.Background(), 999999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetDetailFailsWhenCreditsLegFails(t *testing.T) {
	c := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/movie/1/credits" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"id":1,"title":"Ok"}`)
	}))

	_, err := c.GetDetail(context.Background(), 1)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream when credits fail, got %v", err)
	}
}

func TestGetTrailerKeyFirstMatchWins(t *testing.T) {
	c := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[
			{"site":"Vimeo","type":"Trailer","key":"x"},
			{"site":"YouTube","type":"Trailer","key":"y"},
			{"site":"YouTube","type":"Trailer","key":"z"}
		]}`)
	}))

	key, ok, err := c.GetTrailerKey(context.Background(), 1)
	if err != nil {
		t.Fatalf("get trailer key: %v", err)
	}
	if !ok || key != "y" {
		t.Fatalf("expected first YouTube trailer 'y', got %q (found=%v)", key, ok)
	}
}

func TestGetTrailerKeyAbsentWhenNoMatch(t *testing.T) {
	c := testServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"site":"YouTube","type":"Featurette","key":"f"}]}`)
	}))

	key, ok, err := c.GetTrailerKey(context.Background(), 1)
	if err != nil {
		t.Fatalf("get trailer key: %v", err)
	}
	if ok || key != "" {
		t.Fatalf("expected absent trailer, got %q (found=%v)", key, ok)
	}
}

func TestImageURLHelpers(t *testing.T) {
	c := NewClient("", "k")
	if got := c.PosterURL("/p.jpg"); got != "https://image.tmdb.org/t/p/w300/p.jpg" {
		t.Fatalf("unexpected poster url %q", got)
	}
	if got := c.BackdropURL("/b.jpg"); got != "https://image.tmdb.org/t/p/w780/b.jpg" {
		t.Fatalf("unexpected backdrop url %q", got)
	}
	if got := c.PosterURL(""); got != "" {
		t.Fatalf("expected empty url for empty path, got %q", got)
	}
}

func castJSON(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"name":"actor-%d","character":"role-%d","profile_path":"/c%d.jpg"}`, i, i, i)
	}
	return out
}
