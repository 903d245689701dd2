package engage

import (
	"context"
	"strconv"
	"strings"

	"moviedeck/internal/catalog"
	"moviedeck/internal/telemetry"
)

// Wire-level event names, fixed by the engagement account's campaign setup.
const (
	eventPageViewed       = "Page Viewed"
	eventMovieClicked     = "Movie Clicked"
	eventMovieViewed      = "Movie Viewed"
	eventAddedToWatchlist = "Added to Watchlist"
	eventPromptRequested  = "Notification Prompt Requested"
)

// PromptConfig configures the notification soft prompt rendered by the
// engagement service.
type PromptConfig struct {
	TitleText         string `json:"titleText"`
	BodyText          string `json:"bodyText"`
	OkButtonText      string `json:"okButtonText"`
	RejectButtonText  string `json:"rejectButtonText"`
	OkButtonColor     string `json:"okButtonColor"`
	AskAgainSeconds   int    `json:"askAgainTimeInSeconds"`
	ServiceWorkerPath string `json:"serviceWorkerPath"`
}

// DefaultPromptConfig mirrors the account's standard soft prompt.
func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		TitleText:         "Turn On Notifications?",
		BodyText:          "We will only send you relevant and useful updates.",
		OkButtonText:      "Allow",
		RejectButtonText:  "Later",
		OkButtonColor:     "#0b82ff",
		AskAgainSeconds:   30,
		ServiceWorkerPath: "/moviedeck_sw.js",
	}
}

// Bridge translates application lifecycle events into engagement transport
// calls. Every emitter is best-effort: a failing or absent transport is
// logged and swallowed, the event is lost, nothing is retried or queued.
type Bridge struct {
	transport  Transport
	logger     *telemetry.JSONLogger
	identity   string
	optInPush  bool
	optInEmail bool
}

func NewBridge(transport Transport, logger *telemetry.JSONLogger, optInPush, optInEmail bool) *Bridge {
	if transport == nil {
		transport = NopTransport{}
	}
	return &Bridge{
		transport:  transport,
		logger:     logger,
		optInPush:  optInPush,
		optInEmail: optInEmail,
	}
}

// UserLoggedIn associates the identity with the engagement service and
// pushes the initial profile attributes.
func (b *Bridge) UserLoggedIn(ctx context.Context, identity, name string) {
	b.identity = identity
	attrs := map[string]any{
		"Name":      name,
		"Identity":  identity,
		"Email":     identity,
		"MSG-push":  b.optInPush,
		"MSG-email": b.optInEmail,
	}
	b.pushProfile(ctx, "user_logged_in", attrs)
}

// Reset drops the identity association after logout.
func (b *Bridge) Reset() {
	b.identity = ""
}

func (b *Bridge) PageViewed(ctx context.Context, page string) {
	b.pushEvent(ctx, eventPageViewed, map[string]any{"Page Name": page})
}

func (b *Bridge) MovieClicked(ctx context.Context, m catalog.MovieSummary, posterURL, backdropURL string) {
	b.pushEvent(ctx, eventMovieClicked, map[string]any{
		"id":           strconv.Itoa(m.ID),
		"title":        m.Title,
		"release_date": m.ReleaseDate,
		"rating":       m.VoteAverage,
		"language":     m.OriginalLanguage,
		"poster_url":   posterURL,
		"backdrop_url": backdropURL,
	})
}

func (b *Bridge) MovieViewed(ctx context.Context, d catalog.MovieDetail, posterURL, backdropURL string) {
	b.pushEvent(ctx, eventMovieViewed, map[string]any{
		"Movie ID":     d.ID,
		"Movie Title":  d.Title,
		"Genre":        strings.Join(d.GenreNames(), ", "),
		"Release_date": d.ReleaseDate,
		"Rating":       d.VoteAverage,
		"poster_url":   posterURL,
		"backdrop_url": backdropURL,
	})
}

func (b *Bridge) AddedToWatchlist(ctx context.Context, title string) {
	b.pushEvent(ctx, eventAddedToWatchlist, map[string]any{"Movie Title": title})
}

// WatchlistChanged syncs the watchlist attribute whenever it changes, so the
// server-side profile tracks it between profile saves.
func (b *Bridge) WatchlistChanged(ctx context.Context, watchlist string) {
	b.pushProfile(ctx, "watchlist_changed", map[string]any{"Watchlist": watchlist})
}

// ProfileUpdated syncs the saved profile attributes. Empty attributes are
// omitted so a blank form field never clears a server-side value.
func (b *Bridge) ProfileUpdated(ctx context.Context, name, phone, favGenre, watchlist string) {
	attrs := map[string]any{"Name": name}
	if phone != "" {
		attrs["Phone"] = phone
	}
	if favGenre != "" {
		attrs["FavGenre"] = favGenre
	}
	if watchlist != "" {
		attrs["Watchlist"] = watchlist
	}
	b.pushProfile(ctx, "profile_updated", attrs)
}

func (b *Bridge) NotificationPromptRequested(ctx context.Context, cfg PromptConfig) {
	b.pushEvent(ctx, eventPromptRequested, map[string]any{
		"titleText":             cfg.TitleText,
		"bodyText":              cfg.BodyText,
		"okButtonText":          cfg.OkButtonText,
		"rejectButtonText":      cfg.RejectButtonText,
		"okButtonColor":         cfg.OkButtonColor,
		"askAgainTimeInSeconds": cfg.AskAgainSeconds,
		"serviceWorkerPath":     cfg.ServiceWorkerPath,
	})
}

func (b *Bridge) pushEvent(ctx context.Context, name string, attrs map[string]any) {
	if err := b.transport.PushEvent(ctx, b.identity, name, attrs); err != nil {
		b.logger.Error("engage.event_dropped", map[string]any{"event": name, "error": err.Error()})
	}
}

func (b *Bridge) pushProfile(ctx context.Context, kind string, attrs map[string]any) {
	if err := b.transport.PushProfile(ctx, b.identity, attrs); err != nil {
		b.logger.Error("engage.profile_dropped", map[string]any{"kind": kind, "error": err.Error()})
	}
}
