package query

import "github.com/five82/setlist/internal/catalog"

// BandQuery is the state of the band list controls.
type BandQuery struct {
	Term  string
	Genre string
}

// Matches is the combined predicate of q.
func (q BandQuery) Matches() Predicate[catalog.Band] {
	return All(
		TextMatch(q.Term,
			func(b catalog.Band) string { return b.Name },
			func(b catalog.Band) string { return b.Description },
		),
		Equals(q.Genre, func(b catalog.Band) string { return b.Genre }),
	)
}

// FilterBands returns the bands matching q in input order.
func FilterBands(bands []catalog.Band, q BandQuery) []catalog.Band {
	return Filter(bands, q.Matches())
}
