package app

import "moviedeck/internal/catalog"

// Screen is the current route. Login is the default absent an identity.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenHome
	ScreenDetail
	ScreenProfile
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenDetail:
		return "detail"
	case ScreenProfile:
		return "profile"
	default:
		return "login"
	}
}

// QueryKind distinguishes a filter-chip listing from a free-text search.
type QueryKind int

const (
	QueryFilter QueryKind = iota
	QuerySearch
)

// Query is the active catalog query. Exactly one is active at a time.
type Query struct {
	Kind   QueryKind
	Filter catalog.Filter
	Text   string
}

func filterQuery(f catalog.Filter) Query {
	return Query{Kind: QueryFilter, Filter: f}
}

func searchQuery(text string) Query {
	return Query{Kind: QuerySearch, Text: text}
}

// FetchToken tags an outstanding listing request with the query it was
// issued for. A completion commits only while its token is still current.
type FetchToken struct {
	Seq   uint64
	Query Query
}

// DetailToken tags an outstanding detail or trailer request.
type DetailToken struct {
	Seq     uint64
	MovieID int
}

// Commit is the outcome of reconciling a completed fetch.
type Commit int

const (
	CommitApplied Commit = iota
	CommitStale
	CommitFailed
)

func (c Commit) String() string {
	switch c {
	case CommitStale:
		return "stale"
	case CommitFailed:
		return "failed"
	default:
		return "applied"
	}
}
