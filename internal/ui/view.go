package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"moviedeck/internal/app"
	"moviedeck/internal/catalog"
)

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("🎬 MovieDeck"))
	sb.WriteString("\n")

	switch m.ctrl.Screen() {
	case app.ScreenLogin:
		sb.WriteString(m.viewLogin())
	case app.ScreenHome:
		sb.WriteString(m.viewHome())
	case app.ScreenDetail:
		sb.WriteString(m.viewDetail())
	case app.ScreenProfile:
		sb.WriteString(m.viewProfile())
	}

	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(subtitleStyle.Render(m.status))
	}

	return lipgloss.NewStyle().
		MaxHeight(m.height).
		Padding(1, 2).
		Render(sb.String())
}

func (m Model) viewLogin() string {
	var sb strings.Builder
	sb.WriteString(subtitleStyle.Render("Sign in with your email"))
	sb.WriteString("\n")
	sb.WriteString(inputBoxStyle.Render(m.emailInput.View()))
	sb.WriteString("\n")
	if m.loginErr != "" {
		sb.WriteString(errorStyle.Render(m.loginErr))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("enter: sign in • esc: quit"))
	return sb.String()
}

func (m Model) viewHome() string {
	var sb strings.Builder

	sb.WriteString(renderChips(m.ctrl.ActiveFilter(), m.ctrl.ActiveQuery().Kind == app.QuerySearch))
	sb.WriteString("\n")

	if m.searchMode || m.searchInput.Value() != "" {
		sb.WriteString(inputBoxStyle.Render(m.searchInput.View()))
		sb.WriteString("\n")
	}

	switch {
	case m.ctrl.Loading():
		sb.WriteString(m.spinner.View())
		sb.WriteString(mutedTextStyle.Render(" Loading..."))
		sb.WriteString("\n")
	case m.ctrl.ListingFailed():
		sb.WriteString(errorStyle.Render("Could not reach the movie catalog."))
		sb.WriteString("\n")
	case len(m.ctrl.Movies()) == 0:
		sb.WriteString(mutedTextStyle.Render("Nothing to show."))
		sb.WriteString("\n")
	default:
		sb.WriteString(m.renderListing())
	}

	sb.WriteString(helpStyle.Render("1-4: filters • /: search • ↑/↓: move • enter: open • p: profile • n: notifications • o: sign out • q: quit"))
	return sb.String()
}

func renderChips(active catalog.Filter, searching bool) string {
	parts := make([]string, 0, len(catalog.Filters()))
	for i, f := range catalog.Filters() {
		label := fmt.Sprintf("%d %s", i+1, f)
		if f == active && !searching {
			parts = append(parts, activeChipStyle.Render(label))
		} else {
			parts = append(parts, chipStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderListing() string {
	var rows strings.Builder
	for i, movie := range m.ctrl.Movies() {
		line := fmt.Sprintf("%s (%s)  %s",
			movie.Title, releaseYear(movie.ReleaseDate), formatRating(movie.VoteAverage))
		if i == m.cursor {
			rows.WriteString(selectedRowStyle.Render("> " + line))
		} else {
			rows.WriteString(normalTextStyle.Render("  " + line))
		}
		rows.WriteString("\n")
	}
	return listBoxStyle.Render(strings.TrimRight(rows.String(), "\n")) + "\n"
}

func (m Model) viewDetail() string {
	var sb strings.Builder

	if m.ctrl.DetailLoading() {
		sb.WriteString(m.spinner.View())
		sb.WriteString(mutedTextStyle.Render(" Loading \"" + m.ctrl.Selected().Title + "\"..."))
		sb.WriteString("\n")
	} else if err := m.ctrl.DetailErr(); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			sb.WriteString(errorStyle.Render("This movie is no longer available."))
		} else {
			sb.WriteString(errorStyle.Render("Could not load movie details."))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.viewport.View())
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("↑/↓: scroll • w: add to watchlist • p: profile • esc: back • q: quit"))
	return sb.String()
}

func (m Model) viewProfile() string {
	var sb strings.Builder
	sb.WriteString(subtitleStyle.Render("Your profile"))
	sb.WriteString("\n")
	sb.WriteString(mutedTextStyle.Render("Signed in as " + m.ctrl.Identity()))
	sb.WriteString("\n\n")

	sb.WriteString(normalTextStyle.Render("Name"))
	sb.WriteString("\n")
	sb.WriteString(inputBoxStyle.Render(m.nameInput.View()))
	sb.WriteString("\n")

	sb.WriteString(normalTextStyle.Render("Phone"))
	sb.WriteString("\n")
	sb.WriteString(inputBoxStyle.Render(m.phoneInput.View()))
	sb.WriteString("\n")
	if m.formErr != "" {
		sb.WriteString(errorStyle.Render(m.formErr))
		sb.WriteString("\n")
	}

	sb.WriteString(normalTextStyle.Render("Favourite genre"))
	sb.WriteString("\n")
	sb.WriteString(inputBoxStyle.Render(m.genreInput.View()))
	sb.WriteString("\n")

	if wl := m.ctrl.Profile().Watchlist; wl != "" {
		sb.WriteString(mutedTextStyle.Render("Watchlist ids: " + wl))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("tab: next field • enter: save • esc: back • ctrl+l: sign out"))
	return sb.String()
}

func (m Model) formatDetail() string {
	d := m.ctrl.Detail()
	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width-2, 40))

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", d.Title, releaseYear(d.ReleaseDate))))
	sb.WriteString("\n")
	if d.Tagline != "" {
		sb.WriteString(mutedTextStyle.Italic(true).Render(d.Tagline))
		sb.WriteString("\n")
	}
	sb.WriteString(ratingStyle.Render(formatRating(d.VoteAverage)))
	if names := d.GenreNames(); len(names) > 0 {
		sb.WriteString(mutedTextStyle.Render("  " + strings.Join(names, ", ")))
	}
	sb.WriteString("\n\n")

	if d.Overview != "" {
		sb.WriteString(wrap.Render(normalTextStyle.Render(d.Overview)))
		sb.WriteString("\n\n")
	}

	if key, found := m.ctrl.Trailer(); found {
		sb.WriteString(subtitleStyle.Render("Trailer: "))
		sb.WriteString(normalTextStyle.Render("https://www.youtube.com/watch?v=" + key))
	} else {
		sb.WriteString(mutedTextStyle.Render("No trailer available"))
	}
	sb.WriteString("\n\n")

	if len(d.Cast) > 0 {
		sb.WriteString(subtitleStyle.Render("Cast"))
		sb.WriteString("\n")
		for _, c := range d.Cast {
			line := c.Name
			if c.Character != "" {
				line += " as " + c.Character
			}
			sb.WriteString(normalTextStyle.Render("  " + line))
			sb.WriteString("\n")
			if c.ProfilePath != "" {
				sb.WriteString(mutedTextStyle.Render("    " + m.catalog.ProfileURL(c.ProfilePath)))
				sb.WriteString("\n")
			}
		}
	}

	if d.PosterPath != "" {
		sb.WriteString("\n")
		sb.WriteString(mutedTextStyle.Render("Poster: " + m.catalog.PosterURL(d.PosterPath)))
	}

	return sb.String()
}

func releaseYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return "n/a"
}

func formatRating(avg float64) string {
	return fmt.Sprintf("★ %.1f", avg)
}
