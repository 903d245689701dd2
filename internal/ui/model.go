package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"moviedeck/internal/app"
	"moviedeck/internal/catalog"
	"moviedeck/internal/profile"
)

const statusTTL = 3 * time.Second

// Profile form focus order.
const (
	focusName = iota
	focusPhone
	focusGenre
	focusCount
)

// Model is the terminal front end. All navigation and reconciliation
// decisions live in the controller; the model translates key presses into
// controller calls and fetch commands, and renders whatever state the
// controller holds.
type Model struct {
	ctrl    *app.Controller
	catalog app.CatalogClient

	emailInput  textinput.Model
	searchInput textinput.Model
	nameInput   textinput.Model
	phoneInput  textinput.Model
	genreInput  textinput.Model
	spinner     spinner.Model
	viewport    viewport.Model

	cursor     int
	searchMode bool
	formFocus  int
	formErr    string
	loginErr   string
	status     string
	width      int
	height     int
}

func NewModel(ctrl *app.Controller, cat app.CatalogClient) Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 120
	email.Width = 40
	email.Focus()

	search := textinput.New()
	search.Placeholder = "Search movies..."
	search.CharLimit = 100
	search.Width = 40

	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 80
	name.Width = 40

	phone := textinput.New()
	phone.Placeholder = "+911234567890"
	phone.CharLimit = 16
	phone.Width = 40

	genre := textinput.New()
	genre.Placeholder = "Favourite genre"
	genre.CharLimit = 40
	genre.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedRowStyle

	vp := viewport.New(72, 18)

	return Model{
		ctrl:        ctrl,
		catalog:     cat,
		emailInput:  email,
		searchInput: search,
		nameInput:   name,
		phoneInput:  phone,
		genreInput:  genre,
		spinner:     sp,
		viewport:    vp,
		width:       80,
		height:      24,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	// A resumed session lands on Home and needs its first listing.
	if m.ctrl.Screen() == app.ScreenHome {
		tok := m.ctrl.EnterHome(context.Background())
		cmds = append(cmds, m.fetchListing(tok))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.ctrl.Screen() {
		case app.ScreenLogin:
			return m.updateLogin(msg)
		case app.ScreenHome:
			return m.updateHome(msg)
		case app.ScreenDetail:
			return m.updateDetail(msg)
		case app.ScreenProfile:
			return m.updateProfile(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 8
		m.viewport.Height = msg.Height - 8

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case listingMsg:
		if m.ctrl.CompleteListing(msg.tok, msg.movies, msg.err) == app.CommitApplied {
			m.cursor = 0
		}

	case detailMsg:
		if m.ctrl.CompleteDetail(context.Background(), msg.tok, msg.detail, msg.err) == app.CommitApplied {
			m.viewport.SetContent(m.formatDetail())
			m.viewport.GotoTop()
		}

	case trailerMsg:
		if m.ctrl.CompleteTrailer(msg.tok, msg.key, msg.found) == app.CommitApplied && !m.ctrl.DetailLoading() {
			m.viewport.SetContent(m.formatDetail())
		}

	case statusClearMsg:
		m.status = ""
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		tok, err := m.ctrl.Login(context.Background(), m.emailInput.Value())
		if err != nil {
			var verr *profile.ValidationError
			if errors.As(err, &verr) {
				m.loginErr = verr.Reason
			} else {
				m.loginErr = err.Error()
			}
			return m, nil
		}
		m.loginErr = ""
		m.emailInput.Blur()
		return m, tea.Batch(m.spinner.Tick, m.fetchListing(tok))
	case "esc":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.emailInput, cmd = m.emailInput.Update(msg)
	return m, cmd
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchMode {
		switch msg.String() {
		case "enter":
			m.searchMode = false
			m.searchInput.Blur()
			m.ctrl.SetSearchText(m.searchInput.Value())
			tok := m.ctrl.SubmitSearch()
			m.searchInput.SetValue(m.ctrl.SearchText())
			return m, tea.Batch(m.spinner.Tick, m.fetchListing(tok))
		case "esc":
			m.searchMode = false
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searchMode = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case "1", "2", "3", "4":
		filters := catalog.Filters()
		idx := int(msg.String()[0] - '1')
		if idx < len(filters) {
			m.searchInput.SetValue("")
			tok := m.ctrl.SelectFilter(filters[idx])
			return m, tea.Batch(m.spinner.Tick, m.fetchListing(tok))
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ctrl.Movies())-1 {
			m.cursor++
		}
	case "enter":
		movies := m.ctrl.Movies()
		if m.cursor < len(movies) {
			tok, ok := m.ctrl.SelectMovie(context.Background(), movies[m.cursor])
			if ok {
				return m, tea.Batch(m.spinner.Tick, m.fetchDetail(tok))
			}
		}
	case "p":
		return m.openProfile()
	case "n":
		m.ctrl.RequestNotificationPrompt(context.Background())
		m.status = "Notification prompt requested"
		return m, clearStatusAfter(statusTTL)
	case "o":
		if err := m.ctrl.Logout(context.Background()); err == nil {
			m.emailInput.SetValue("")
			m.emailInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		// Returning home re-enters the screen: page view plus a refresh of
		// the active query.
		tok := m.ctrl.EnterHome(context.Background())
		return m, tea.Batch(m.spinner.Tick, m.fetchListing(tok))
	case "w":
		if err := m.ctrl.AddSelectedToWatchlist(context.Background()); err != nil {
			m.status = err.Error()
		} else {
			m.status = "Added to watchlist"
		}
		return m, clearStatusAfter(statusTTL)
	case "p":
		return m.openProfile()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.formErr = ""
		tok := m.ctrl.EnterHome(context.Background())
		return m, tea.Batch(m.spinner.Tick, m.fetchListing(tok))
	case "ctrl+l":
		if err := m.ctrl.Logout(context.Background()); err == nil {
			m.formErr = ""
			m.emailInput.SetValue("")
			m.emailInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	case "tab", "down":
		m.setFormFocus((m.formFocus + 1) % focusCount)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.setFormFocus((m.formFocus + focusCount - 1) % focusCount)
		return m, textinput.Blink
	case "enter":
		err := m.ctrl.SaveProfile(context.Background(),
			m.nameInput.Value(), m.phoneInput.Value(), m.genreInput.Value())
		if err != nil {
			var verr *profile.ValidationError
			if errors.As(err, &verr) {
				m.formErr = verr.Reason
			} else {
				m.formErr = err.Error()
			}
			return m, nil
		}
		m.formErr = ""
		m.status = "Profile saved"
		return m, clearStatusAfter(statusTTL)
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case focusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case focusPhone:
		m.phoneInput, cmd = m.phoneInput.Update(msg)
	case focusGenre:
		m.genreInput, cmd = m.genreInput.Update(msg)
	}
	return m, cmd
}

func (m Model) openProfile() (tea.Model, tea.Cmd) {
	if !m.ctrl.OpenProfile() {
		return m, nil
	}
	p := m.ctrl.Profile()
	m.nameInput.SetValue(p.Name)
	m.phoneInput.SetValue(p.Phone)
	m.genreInput.SetValue(p.FavGenre)
	m.formErr = ""
	m.setFormFocus(focusName)
	return m, textinput.Blink
}

func (m *Model) setFormFocus(focus int) {
	m.formFocus = focus
	inputs := []*textinput.Model{&m.nameInput, &m.phoneInput, &m.genreInput}
	for i, in := range inputs {
		if i == focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}
