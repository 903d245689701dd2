package profile

import (
	"strconv"
	"strings"
)

// Profile holds the user's attributes. Watchlist is a comma-delimited list
// of catalog movie ids in insertion order, without duplicates.
type Profile struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	FavGenre  string `json:"fav_genre"`
	Watchlist string `json:"watchlist"`
}

// Update is a partial profile write. Nil fields leave the stored value
// untouched; the merge is field-by-field, never a replace.
type Update struct {
	Name     *string `validate:"omitempty,max=100"`
	Phone    *string `validate:"omitempty,intlphone"`
	FavGenre *string `validate:"omitempty,max=100"`
}

// WatchlistIDs splits the delimited watchlist into ids, skipping blanks.
func (p Profile) WatchlistIDs() []int {
	if p.Watchlist == "" {
		return nil
	}
	parts := strings.Split(p.Watchlist, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

func (p Profile) onWatchlist(movieID int) bool {
	for _, id := range p.WatchlistIDs() {
		if id == movieID {
			return true
		}
	}
	return false
}

func (p Profile) merge(u Update) Profile {
	out := p
	if u.Name != nil {
		out.Name = *u.Name
	}
	if u.Phone != nil {
		out.Phone = *u.Phone
	}
	if u.FavGenre != nil {
		out.FavGenre = *u.FavGenre
	}
	return out
}

func defaultProfile(identity string) Profile {
	name := identity
	if at := strings.Index(identity, "@"); at > 0 {
		name = identity[:at]
	}
	if name == "" {
		name = "User"
	}
	return Profile{Name: name}
}
