package app

import (
	"context"
	"errors"
	"strings"

	"moviedeck/internal/catalog"
	"moviedeck/internal/engage"
	"moviedeck/internal/profile"
	"moviedeck/internal/telemetry"

	"github.com/google/uuid"
)

// Controller owns the view state: the current screen, the signed-in
// identity, the active catalog query and its in-flight fetch, and the
// currently displayed collection. Fetch execution lives with the caller
// (the UI issues commands); the controller hands out tokens and decides,
// on completion, whether a result is still authoritative.
type Controller struct {
	cfg     Config
	logger  *telemetry.JSONLogger
	store   ProfileStore
	bridge  *engage.Bridge
	catalog CatalogClient

	sessionID string

	screen   Screen
	identity string
	profile  profile.Profile

	activeFilter catalog.Filter
	searchText   string
	query        Query

	listingSeq    uint64
	listingBusy   bool
	listingFailed bool
	movies        []catalog.MovieSummary

	selected     catalog.MovieSummary
	detailSeq    uint64
	detailBusy   bool
	detail       catalog.MovieDetail
	detailErr    error
	trailerKey   string
	trailerFound bool
}

func New(cfg Config, store ProfileStore, cat CatalogClient, bridge *engage.Bridge, logger *telemetry.JSONLogger) *Controller {
	return &Controller{
		cfg:          cfg,
		logger:       logger,
		store:        store,
		bridge:       bridge,
		catalog:      cat,
		sessionID:    uuid.NewString(),
		screen:       ScreenLogin,
		activeFilter: catalog.FilterPopular,
		query:        filterQuery(catalog.FilterPopular),
	}
}

// Resume restores the persisted identity and profile. With an identity
// present the session lands on Home (the caller then issues the initial
// listing fetch via EnterHome); without one it stays on Login.
func (c *Controller) Resume(ctx context.Context) error {
	identity, p, err := c.store.Current(ctx)
	if err != nil {
		return err
	}
	c.identity = identity
	c.profile = p
	c.screen = routeFor(ScreenHome, identity)
	c.logger.Info("session.resume", map[string]any{
		"session": c.sessionID, "screen": c.screen.String(), "authenticated": identity != "",
	})
	return nil
}

// Login normalizes and persists the identity, associates it with the
// engagement service and lands on Home. The returned token belongs to the
// initial Home listing fetch.
func (c *Controller) Login(ctx context.Context, email string) (FetchToken, error) {
	identity, err := c.store.Login(ctx, email)
	if err != nil {
		return FetchToken{}, err
	}
	_, p, err := c.store.Current(ctx)
	if err != nil {
		return FetchToken{}, err
	}
	c.identity = identity
	c.profile = p
	c.bridge.UserLoggedIn(ctx, identity, p.Name)
	c.logger.Info("session.login", map[string]any{"session": c.sessionID})
	return c.EnterHome(ctx), nil
}

// Logout clears the persisted identity and returns to Login.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.store.Logout(ctx); err != nil {
		return err
	}
	c.identity = ""
	c.profile = profile.Profile{}
	c.bridge.Reset()
	c.movies = nil
	c.screen = ScreenLogin
	c.logger.Info("session.logout", map[string]any{"session": c.sessionID})
	return nil
}

// EnterHome switches to Home (guarded), emits the page view and starts a
// refresh with the currently active query.
func (c *Controller) EnterHome(ctx context.Context) FetchToken {
	c.screen = routeFor(ScreenHome, c.identity)
	if c.screen != ScreenHome {
		return FetchToken{}
	}
	c.bridge.PageViewed(ctx, "Home")
	return c.beginListing()
}

// NavigateTo applies the navigation guard and returns the screen actually
// reached.
func (c *Controller) NavigateTo(target Screen) Screen {
	c.screen = routeFor(target, c.identity)
	return c.screen
}

// SelectFilter activates a filter chip. Choosing a chip clears the search
// text; the chip's listing becomes the active query.
func (c *Controller) SelectFilter(f catalog.Filter) FetchToken {
	c.activeFilter = catalog.NormalizeFilter(f)
	c.searchText = ""
	c.query = filterQuery(c.activeFilter)
	return c.beginListing()
}

// SetSearchText records the search field contents. Typing or clearing the
// field does not by itself trigger a refetch.
func (c *Controller) SetSearchText(text string) {
	c.searchText = text
}

// SubmitSearch makes the entered text the active query. An empty submission
// falls back to the currently selected filter chip's listing.
func (c *Controller) SubmitSearch() FetchToken {
	text := strings.TrimSpace(c.searchText)
	if text == "" {
		c.searchText = ""
		c.query = filterQuery(c.activeFilter)
	} else {
		c.query = searchQuery(text)
	}
	return c.beginListing()
}

func (c *Controller) beginListing() FetchToken {
	c.listingSeq++
	c.listingBusy = true
	c.listingFailed = false
	tok := FetchToken{Seq: c.listingSeq, Query: c.query}
	c.logger.Debug("listing.begin", map[string]any{"seq": tok.Seq, "kind": int(tok.Query.Kind), "filter": string(tok.Query.Filter), "text": tok.Query.Text})
	return tok
}

// CompleteListing reconciles a finished listing fetch. A token that is no
// longer current means the active query changed while the request was in
// flight: the result is discarded untouched, including the loading flag.
func (c *Controller) CompleteListing(tok FetchToken, movies []catalog.MovieSummary, err error) Commit {
	if tok.Seq != c.listingSeq {
		c.logger.Debug("listing.stale_dropped", map[string]any{"seq": tok.Seq, "current": c.listingSeq})
		return CommitStale
	}
	c.listingBusy = false
	if err != nil {
		c.movies = nil
		c.listingFailed = true
		c.logger.Error("listing.failed", map[string]any{"seq": tok.Seq, "error": err.Error()})
		return CommitFailed
	}
	c.movies = movies
	return CommitApplied
}

// SelectMovie opens the detail screen for a listed movie, emits the click
// event and hands out the token for the detail and trailer fetches.
func (c *Controller) SelectMovie(ctx context.Context, m catalog.MovieSummary) (DetailToken, bool) {
	if routeFor(ScreenDetail, c.identity) != ScreenDetail {
		c.screen = ScreenLogin
		return DetailToken{}, false
	}
	c.selected = m
	c.screen = ScreenDetail
	c.detailSeq++
	c.detailBusy = true
	c.detail = catalog.MovieDetail{}
	c.detailErr = nil
	c.trailerKey = ""
	c.trailerFound = false
	c.bridge.MovieClicked(ctx, m, c.catalog.PosterURL(m.PosterPath), c.catalog.BackdropURL(m.BackdropPath))
	return DetailToken{Seq: c.detailSeq, MovieID: m.ID}, true
}

// CompleteDetail reconciles a finished detail fetch; a successful commit
// emits the viewed event.
func (c *Controller) CompleteDetail(ctx context.Context, tok DetailToken, detail catalog.MovieDetail, err error) Commit {
	if tok.Seq != c.detailSeq {
		return CommitStale
	}
	c.detailBusy = false
	if err != nil {
		c.detailErr = err
		c.logger.Error("detail.failed", map[string]any{"movie": tok.MovieID, "error": err.Error()})
		return CommitFailed
	}
	c.detail = detail
	c.bridge.MovieViewed(ctx, detail, c.catalog.PosterURL(detail.PosterPath), c.catalog.BackdropURL(detail.BackdropPath))
	return CommitApplied
}

// CompleteTrailer records the trailer lookup outcome. Absence is a normal
// result, not a failure.
func (c *Controller) CompleteTrailer(tok DetailToken, key string, found bool) Commit {
	if tok.Seq != c.detailSeq {
		return CommitStale
	}
	c.trailerKey = key
	c.trailerFound = found
	return CommitApplied
}

// AddSelectedToWatchlist appends the currently open movie to the watchlist
// and emits the engagement event.
func (c *Controller) AddSelectedToWatchlist(ctx context.Context) error {
	if c.selected.ID == 0 {
		return errors.New("no movie selected")
	}
	merged, err := c.store.AddToWatchlist(ctx, c.selected.ID)
	if err != nil {
		return err
	}
	c.profile = merged
	title := c.detail.Title
	if title == "" {
		title = c.selected.Title
	}
	c.bridge.AddedToWatchlist(ctx, title)
	c.bridge.WatchlistChanged(ctx, merged.Watchlist)
	return nil
}

// OpenProfile switches to the profile screen, guarded by identity.
func (c *Controller) OpenProfile() bool {
	c.screen = routeFor(ScreenProfile, c.identity)
	return c.screen == ScreenProfile
}

// SaveProfile merges the form fields into the stored profile. A validation
// error blocks the save and is surfaced inline by the caller; nothing is
// persisted until it is corrected.
func (c *Controller) SaveProfile(ctx context.Context, name, phone, favGenre string) error {
	merged, err := c.store.UpdateProfile(ctx, profile.Update{
		Name:     &name,
		Phone:    &phone,
		FavGenre: &favGenre,
	})
	if err != nil {
		return err
	}
	c.profile = merged
	c.bridge.ProfileUpdated(ctx, merged.Name, merged.Phone, merged.FavGenre, merged.Watchlist)
	return nil
}

// RequestNotificationPrompt asks the engagement service to show its soft
// prompt with the standard configuration.
func (c *Controller) RequestNotificationPrompt(ctx context.Context) {
	c.bridge.NotificationPromptRequested(ctx, engage.DefaultPromptConfig())
}

func (c *Controller) Screen() Screen                 { return c.screen }
func (c *Controller) Identity() string               { return c.identity }
func (c *Controller) Profile() profile.Profile       { return c.profile }
func (c *Controller) Movies() []catalog.MovieSummary { return c.movies }
func (c *Controller) Loading() bool                  { return c.listingBusy }
func (c *Controller) ListingFailed() bool            { return c.listingFailed }
func (c *Controller) ActiveFilter() catalog.Filter   { return c.activeFilter }
func (c *Controller) ActiveQuery() Query             { return c.query }
func (c *Controller) SearchText() string             { return c.searchText }
func (c *Controller) Selected() catalog.MovieSummary { return c.selected }
func (c *Controller) Detail() catalog.MovieDetail    { return c.detail }
func (c *Controller) DetailLoading() bool            { return c.detailBusy }
func (c *Controller) DetailErr() error               { return c.detailErr }
func (c *Controller) Trailer() (string, bool)        { return c.trailerKey, c.trailerFound }
func (c *Controller) SessionID() string              { return c.sessionID }
