package query

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/five82/setlist/internal/catalog"
)

// SortKey selects the order of a show list.
type SortKey string

const (
	SortDate  SortKey = "date"
	SortTitle SortKey = "title"
	SortPrice SortKey = "price"
)

var sortKeys = []SortKey{SortDate, SortTitle, SortPrice}

// ParseSortKey accepts "date", "title" or "price" in any case. An empty
// string is the default, SortDate.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortDate, nil
	}
	for _, k := range sortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return SortDate, fmt.Errorf("unknown sort key %q (want date, title or price)", s)
}

// Next returns the key after k, wrapping around.
func (k SortKey) Next() SortKey {
	i := slices.Index(sortKeys, k)
	return sortKeys[(i+1)%len(sortKeys)]
}

// Label is the heading shown for the key in the UI.
func (k SortKey) Label() string {
	switch k {
	case SortTitle:
		return "Title"
	case SortPrice:
		return "Price"
	default:
		return "Date"
	}
}

// ShowQuery is the state of the show list controls.
type ShowQuery struct {
	Term  string
	Genre string
	Venue string
	Sort  SortKey
}

// Active reports whether q differs from the unfiltered, date-sorted default.
func (q ShowQuery) Active() bool {
	return q.Term != "" || q.Genre != "" || q.Venue != "" || (q.Sort != "" && q.Sort != SortDate)
}

// Matches is the combined search and filter predicate of q.
func (q ShowQuery) Matches() Predicate[catalog.Show] {
	return All(
		TextMatch(q.Term,
			func(s catalog.Show) string { return s.Title },
			func(s catalog.Show) string { return s.Description },
		),
		hasGenre(q.Genre),
		Equals(q.Venue, catalog.Show.VenueName),
	)
}

func hasGenre(genre string) Predicate[catalog.Show] {
	return func(s catalog.Show) bool {
		if genre == "" {
			return true
		}
		return slices.ContainsFunc(s.Bands, func(b catalog.Band) bool { return b.Genre == genre })
	}
}

// FilterShows applies q's predicates and then sorts the survivors by q.Sort.
// Shows with equal sort keys keep their input order.
func FilterShows(shows []catalog.Show, q ShowQuery) []catalog.Show {
	out := Filter(shows, q.Matches())
	SortShows(out, q.Sort)
	return out
}

// SortShows stably sorts shows in place. Unparseable dates sort as the zero
// time and absent prices as zero.
func SortShows(shows []catalog.Show, key SortKey) {
	switch key {
	case SortTitle:
		// A Collator keeps scratch buffers, so each sort gets its own.
		col := collate.New(language.English)
		slices.SortStableFunc(shows, func(a, b catalog.Show) int {
			return col.CompareString(a.Title, b.Title)
		})
	case SortPrice:
		slices.SortStableFunc(shows, func(a, b catalog.Show) int {
			return compareFloat(a.Price(), b.Price())
		})
	default:
		slices.SortStableFunc(shows, func(a, b catalog.Show) int {
			return a.ParsedDate().Compare(b.ParsedDate())
		})
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
