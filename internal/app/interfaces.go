package app

import (
	"context"

	"moviedeck/internal/catalog"
	"moviedeck/internal/profile"
)

type ProfileStore interface {
	Login(ctx context.Context, email string) (string, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (string, profile.Profile, error)
	UpdateProfile(ctx context.Context, u profile.Update) (profile.Profile, error)
	AddToWatchlist(ctx context.Context, movieID int) (profile.Profile, error)
	Close() error
}

type CatalogClient interface {
	ListByFilter(ctx context.Context, filter catalog.Filter) ([]catalog.MovieSummary, error)
	Search(ctx context.Context, text string) ([]catalog.MovieSummary, error)
	GetDetail(ctx context.Context, movieID int) (catalog.MovieDetail, error)
	GetTrailerKey(ctx context.Context, movieID int) (string, bool, error)
	PosterURL(path string) string
	BackdropURL(path string) string
	ProfileURL(path string) string
}
