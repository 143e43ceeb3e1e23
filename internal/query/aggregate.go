package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/five82/setlist/internal/catalog"
)

// Genres returns the distinct band genres across shows in first-seen order.
func Genres(shows []catalog.Show) []string {
	var d distinct
	for _, s := range shows {
		for _, b := range s.Bands {
			d.add(b.Genre)
		}
	}
	return d.values()
}

// BandGenres returns the distinct genres of bands in first-seen order.
func BandGenres(bands []catalog.Band) []string {
	var d distinct
	for _, b := range bands {
		d.add(b.Genre)
	}
	return d.values()
}

// VenueNames returns the distinct venue names across shows in first-seen
// order. Shows without a venue are skipped.
func VenueNames(shows []catalog.Show) []string {
	var d distinct
	for _, s := range shows {
		d.add(s.VenueName())
	}
	return d.values()
}

// ReviewCount returns the number of reviews attached to s.
func ReviewCount(s catalog.Show) int {
	return len(s.Reviews)
}

// AverageRating returns the mean rating rounded to one decimal, or 0 when
// there are no reviews.
func AverageRating(reviews []catalog.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}

// FormatRating renders an average the way the UI prints it: "4.5", "4", "0".
func FormatRating(avg float64) string {
	return strconv.FormatFloat(avg, 'f', -1, 64)
}

// Stars renders a rating out of five, e.g. "★★★★☆". The rating is rounded
// and clamped to 0..5.
func Stars(rating float64) string {
	n := int(math.Round(rating))
	n = max(0, min(5, n))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

type distinct struct {
	seen map[string]struct{}
	out  []string
}

func (d *distinct) add(v string) {
	if v == "" {
		return
	}
	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}
	if _, ok := d.seen[v]; ok {
		return
	}
	d.seen[v] = struct{}{}
	d.out = append(d.out, v)
}

func (d *distinct) values() []string {
	if d.out == nil {
		return []string{}
	}
	return d.out
}
