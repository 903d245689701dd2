package profile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func strPtr(s string) *string { return &s }

func TestLoginNormalizesAndIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id1, err := store.Login(ctx, "Jane.Doe@Example.COM")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if id1 != "jane.doe@example.com" {
		t.Fatalf("expected normalized identity, got %q", id1)
	}

	// Mixed case plus surrounding whitespace resolves to the same identity
	// and keeps the existing profile.
	if _, err := store.UpdateProfile(ctx, Update{FavGenre: strPtr("Sci-Fi")}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	id2, err := store.Login(ctx, "  JANE.DOE@example.com ")
	if err != nil {
		t.Fatalf("re-login: %v", err)
	}
	if id2 != id1 {
		t.Fatalf("expected same identity, got %q vs %q", id2, id1)
	}
	_, p, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if p.FavGenre != "Sci-Fi" {
		t.Fatalf("re-login should keep the profile, got %#v", p)
	}
}

func TestLoginDerivesDefaultNameFromLocalPart(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Login(ctx, "sam@example.com"); err != nil {
		t.Fatalf("login: %v", err)
	}
	_, p, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if p.Name != "sam" {
		t.Fatalf("expected default name from local part, got %q", p.Name)
	}
}

func TestLoginRejectsEmptyAndMalformedEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := store.Login(ctx, email)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("login(%q): expected ValidationError, got %v", email, err)
		}
	}
}

func TestUpdateProfileMergesFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Login(ctx, "x@example.com"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := store.UpdateProfile(ctx, Update{Name: strPtr("X")}); err != nil {
		t.Fatalf("update name: %v", err)
	}
	merged, err := store.UpdateProfile(ctx, Update{Phone: strPtr("+911234567890")})
	if err != nil {
		t.Fatalf("update phone: %v", err)
	}
	if merged.Name != "X" || merged.Phone != "+911234567890" {
		t.Fatalf("expected merge to keep both fields, got %#v", merged)
	}

	// The merge must also survive a store reopen.
	_, p, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if p.Name != "X" || p.Phone != "+911234567890" {
		t.Fatalf("persisted profile lost a field: %#v", p)
	}
}

func TestUpdateProfileRejectsMalformedPhone(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Login(ctx, "x@example.com"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := store.UpdateProfile(ctx, Update{Name: strPtr("Before")}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	_, err := store.UpdateProfile(ctx, Update{Name: strPtr("After"), Phone: strPtr("abc")})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for phone, got %v", err)
	}
	if verr.Field != "phone" {
		t.Fatalf("expected phone field error, got %#v", verr)
	}

	// Persisted profile is untouched until the phone is corrected.
	_, p, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if p.Name != "Before" || p.Phone != "" {
		t.Fatalf("rejected update must not persist, got %#v", p)
	}
}

func TestAddToWatchlistIsSetUnion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Login(ctx, "x@example.com"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := store.AddToWatchlist(ctx, 42); err != nil {
		t.Fatalf("add 42: %v", err)
	}
	if _, err := store.AddToWatchlist(ctx, 7); err != nil {
		t.Fatalf("add 7: %v", err)
	}
	p, err := store.AddToWatchlist(ctx, 42)
	if err != nil {
		t.Fatalf("re-add 42: %v", err)
	}
	if p.Watchlist != "42,7" {
		t.Fatalf("expected insertion-ordered unique watchlist, got %q", p.Watchlist)
	}
	ids := p.WatchlistIDs()
	if len(ids) != 2 || ids[0] != 42 || ids[1] != 7 {
		t.Fatalf("unexpected watchlist ids: %#v", ids)
	}
}

func TestLogoutClearsPersistedState(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Login(ctx, "x@example.com"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	identity, p, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if identity != "" || p != (Profile{}) {
		t.Fatalf("expected cleared state, got identity=%q profile=%#v", identity, p)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db")
	ctx := context.Background()

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if _, err := store.Login(ctx, "x@example.com"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := store.AddToWatchlist(ctx, 11); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if err := reopened.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	identity, p, err := reopened.Current(ctx)
	if err != nil {
		t.Fatalf("current after reopen: %v", err)
	}
	if identity != "x@example.com" || p.Watchlist != "11" {
		t.Fatalf("state lost across reopen: identity=%q profile=%#v", identity, p)
	}
}

func TestPhonePattern(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"+911234567890", true},
		{"+11234567890", true},
		{"+9111234567890", true},
		{"+91112345678901", false},
		{"+0123456789012", false},
		{"abc", false},
		{"911234567890", false},
		{"+91123456789", false},
	}
	for _, tc := range cases {
		if got := phonePattern.MatchString(tc.in); got != tc.ok {
			t.Fatalf("phonePattern(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}
