package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"moviedeck/internal/app"
	"moviedeck/internal/catalog"
)

const fetchTimeout = 20 * time.Second

// listingMsg carries the outcome of a listing fetch back to the model. The
// token travels with it so the controller can tell whether the response still
// belongs to the active query.
type listingMsg struct {
	tok    app.FetchToken
	movies []catalog.MovieSummary
	err    error
}

type detailMsg struct {
	tok    app.DetailToken
	detail catalog.MovieDetail
	err    error
}

type trailerMsg struct {
	tok   app.DetailToken
	key   string
	found bool
}

type statusClearMsg struct{}

func (m Model) fetchListing(tok app.FetchToken) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		var (
			movies []catalog.MovieSummary
			err    error
		)
		if tok.Query.Kind == app.QuerySearch {
			movies, err = m.catalog.Search(ctx, tok.Query.Text)
		} else {
			movies, err = m.catalog.ListByFilter(ctx, tok.Query.Filter)
		}
		return listingMsg{tok: tok, movies: movies, err: err}
	}
}

func (m Model) fetchDetail(tok app.DetailToken) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()
			detail, err := m.catalog.GetDetail(ctx, tok.MovieID)
			return detailMsg{tok: tok, detail: detail, err: err}
		},
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()
			// Trailer absence is a normal outcome; lookup errors fold into it.
			key, found, err := m.catalog.GetTrailerKey(ctx, tok.MovieID)
			if err != nil {
				return trailerMsg{tok: tok}
			}
			return trailerMsg{tok: tok, key: key, found: found}
		},
	)
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return statusClearMsg{} })
}
