package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/setlist/internal/catalog"
	"github.com/five82/setlist/internal/seed"
)

func titles(shows []catalog.Show) []string {
	out := make([]string, 0, len(shows))
	for _, s := range shows {
		out = append(out, s.Title)
	}
	return out
}

func show(id int64, title, date string, price *float64, genres ...string) catalog.Show {
	s := catalog.Show{ID: id, Title: title, Date: date, TicketPrice: price}
	for _, g := range genres {
		s.Bands = append(s.Bands, catalog.Band{Genre: g})
	}
	return s
}

func TestFilterShows_SearchIsCaseInsensitive(t *testing.T) {
	shows := seed.Default().Shows()
	for _, term := range []string{"jazz", "JAZZ", "JaZz"} {
		got := FilterShows(shows, ShowQuery{Term: term})
		assert.Equal(t, []string{"Jazz Under the Stars"}, titles(got), term)
	}

	// Description matches count too.
	got := FilterShows(shows, ShowQuery{Term: "visuals"})
	assert.Equal(t, []string{"Electronic Pulse"}, titles(got))

	assert.Empty(t, FilterShows(shows, ShowQuery{Term: "polka"}))
}

func TestFilterShows_GenreAndVenue(t *testing.T) {
	shows := seed.Default().Shows()

	got := FilterShows(shows, ShowQuery{Genre: "Electronic"})
	assert.Equal(t, []string{"Electronic Pulse"}, titles(got))

	got = FilterShows(shows, ShowQuery{Venue: "Blue Note"})
	assert.Equal(t, []string{"Jazz Under the Stars"}, titles(got))

	// Exact match only.
	assert.Empty(t, FilterShows(shows, ShowQuery{Genre: "rock"}))
	assert.Empty(t, FilterShows(shows, ShowQuery{Genre: "Rock", Venue: "Blue Note"}))
}

func TestFilterShows_GenreThenPrice(t *testing.T) {
	shows := []catalog.Show{
		show(1, "Arena", "2024-03-01", catalog.Price(90), "Rock"),
		show(2, "Cellar", "2024-03-02", nil, "Jazz", "Rock"),
		show(3, "Club", "2024-03-03", catalog.Price(20), "Jazz"),
		show(4, "Dive", "2024-03-04", catalog.Price(15), "Rock"),
		show(5, "Park", "2024-03-05", catalog.Price(15), "Pop", "Rock"),
	}

	got := FilterShows(shows, ShowQuery{Genre: "Rock", Sort: SortPrice})
	require.Len(t, got, 4)
	assert.Equal(t, []string{"Cellar", "Dive", "Park", "Arena"}, titles(got))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Price(), got[i].Price())
	}
	for _, s := range got {
		assert.True(t, hasGenre("Rock")(s), s.Title)
	}
}

func TestFilterShows_EmptyQueryKeepsOrder(t *testing.T) {
	shows := []catalog.Show{
		show(1, "B", "2024-05-01", nil),
		show(2, "A", "2024-05-01", nil),
		show(3, "C", "2024-04-01", nil),
	}

	all := Filter(shows, ShowQuery{}.Matches())
	assert.Equal(t, []string{"B", "A", "C"}, titles(all))

	// Equal dates keep input order.
	sorted := FilterShows(shows, ShowQuery{})
	assert.Equal(t, []string{"C", "B", "A"}, titles(sorted))

	// The input is untouched.
	assert.Equal(t, []string{"B", "A", "C"}, titles(shows))
}

func TestSortShows(t *testing.T) {
	shows := []catalog.Show{
		show(1, "zebra night", "2024-02-03", catalog.Price(10)),
		show(2, "Écho", "not a date", catalog.Price(30)),
		show(3, "apple jam", "2024-01-01", nil),
		show(4, "Echo", "2024-02-01", catalog.Price(10)),
	}

	byDate := append([]catalog.Show{}, shows...)
	SortShows(byDate, SortDate)
	assert.Equal(t, []string{"Écho", "apple jam", "Echo", "zebra night"}, titles(byDate))

	byTitle := append([]catalog.Show{}, shows...)
	SortShows(byTitle, SortTitle)
	assert.Equal(t, "apple jam", byTitle[0].Title)
	assert.Equal(t, "zebra night", byTitle[3].Title)
	assert.ElementsMatch(t, []string{"Echo", "Écho"}, titles(byTitle[1:3]))

	byPrice := append([]catalog.Show{}, shows...)
	SortShows(byPrice, SortPrice)
	assert.Equal(t, []string{"apple jam", "zebra night", "Echo", "Écho"}, titles(byPrice))
}

func TestSortKeys(t *testing.T) {
	k, err := ParseSortKey(" Title ")
	require.NoError(t, err)
	assert.Equal(t, SortTitle, k)

	k, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortDate, k)

	_, err = ParseSortKey("rating")
	assert.ErrorContains(t, err, `unknown sort key "rating"`)

	assert.Equal(t, SortTitle, SortDate.Next())
	assert.Equal(t, SortPrice, SortTitle.Next())
	assert.Equal(t, SortDate, SortPrice.Next())
	assert.Equal(t, "Price", SortPrice.Label())
}

func TestShowQueryActive(t *testing.T) {
	assert.False(t, ShowQuery{}.Active())
	assert.False(t, ShowQuery{Sort: SortDate}.Active())
	assert.True(t, ShowQuery{Sort: SortTitle}.Active())
	assert.True(t, ShowQuery{Term: "x"}.Active())
	assert.True(t, ShowQuery{Venue: "Blue Note"}.Active())
}

func TestFilterBands(t *testing.T) {
	bands := seed.Default().Bands()

	got := FilterBands(bands, BandQuery{Term: "collective"})
	require.Len(t, got, 1)
	assert.Equal(t, "Midnight Ensemble", got[0].Name)

	got = FilterBands(bands, BandQuery{Term: "n", Genre: "Electronic"})
	require.Len(t, got, 1)
	assert.Equal(t, "Neon Circuits", got[0].Name)

	assert.Len(t, FilterBands(bands, BandQuery{}), 3)
}

func TestAggregates(t *testing.T) {
	shows := seed.Default().Shows()
	shows = append(shows, show(9, "Second Rock Night", "2024-03-01", nil, "Rock"))

	assert.Equal(t, []string{"Rock", "Jazz", "Electronic"}, Genres(shows))
	assert.Equal(t, []string{"Madison Square Garden", "Blue Note", "Warehouse District"}, VenueNames(shows))
	assert.Equal(t, []string{"Rock", "Jazz", "Electronic"}, BandGenres(seed.Default().Bands()))
	assert.Equal(t, []string{}, Genres(nil))

	assert.Equal(t, 1, ReviewCount(shows[0]))
	assert.Equal(t, 0, ReviewCount(shows[2]))
}

func TestAverageRating(t *testing.T) {
	reviews := []catalog.Review{{Rating: 5}, {Rating: 4}}
	assert.Equal(t, 4.5, AverageRating(reviews))
	assert.Equal(t, "4.5", FormatRating(AverageRating(reviews)))

	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, "0", FormatRating(AverageRating(nil)))

	assert.Equal(t, 4.3, AverageRating([]catalog.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}}))
	assert.Equal(t, "4", FormatRating(4))
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★★☆", Stars(4))
	assert.Equal(t, "★★★★★", Stars(4.6))
	assert.Equal(t, "☆☆☆☆☆", Stars(0))
	assert.Equal(t, "★★★★★", Stars(9))
}
