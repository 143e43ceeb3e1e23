// Package seed holds the offline baseline catalog served when the show
// service cannot be reached. The data is fixed at build time; accessors hand
// out deep copies so the baseline is never mutated.
package seed

import "github.com/five82/setlist/internal/catalog"

var venues = []catalog.Venue{
	{ID: 1, Name: "Madison Square Garden", City: "New York", Address: "4 Pennsylvania Plaza", Capacity: 20000},
	{ID: 2, Name: "Blue Note", City: "New York", Address: "131 W 3rd St", Capacity: 300},
	{ID: 3, Name: "Warehouse District", City: "Los Angeles", Address: "Downtown LA", Capacity: 1500},
}

var bands = []catalog.Band{
	{ID: 1, Name: "Thunder Strike", Genre: "Rock", Description: "High-energy rock band", FormedYear: 2018, Musicians: []catalog.Musician{}, CreatedAt: "2024-01-01T00:00:00"},
	{ID: 2, Name: "Midnight Ensemble", Genre: "Jazz", Description: "Smooth jazz collective", FormedYear: 2015, Musicians: []catalog.Musician{}, CreatedAt: "2024-01-02T00:00:00"},
	{ID: 3, Name: "Neon Circuits", Genre: "Electronic", Description: "Electronic music pioneers", FormedYear: 2020, Musicians: []catalog.Musician{}, CreatedAt: "2024-01-03T00:00:00"},
}

var reviews = []catalog.Review{
	{ID: 1, Rating: 5, Comment: "Amazing show!", User: &catalog.User{Username: "musicfan"}, ShowID: 1, CreatedAt: "2024-01-05T00:00:00"},
	{ID: 2, Rating: 5, Comment: "Pure magic!", User: &catalog.User{Username: "jazzlover"}, ShowID: 2, CreatedAt: "2024-01-06T00:00:00"},
}

var shows = []catalog.Show{
	{
		ID:          1,
		Title:       "Rock Legends Live",
		Date:        "2024-02-15",
		Time:        "20:00",
		TicketPrice: catalog.Price(75),
		Description: "An electrifying night of classic rock with legendary performances.",
		Venue:       &venues[0],
		Bands:       []catalog.Band{bands[0]},
		Reviews:     []catalog.Review{reviews[0]},
		CreatedAt:   "2024-01-01T00:00:00",
	},
	{
		ID:          2,
		Title:       "Jazz Under the Stars",
		Date:        "2024-02-20",
		Time:        "19:30",
		TicketPrice: catalog.Price(45),
		Description: "Smooth jazz melodies under the moonlight with world-class musicians.",
		Venue:       &venues[1],
		Bands:       []catalog.Band{bands[1]},
		Reviews:     []catalog.Review{reviews[1]},
		CreatedAt:   "2024-01-02T00:00:00",
	},
	{
		ID:          3,
		Title:       "Electronic Pulse",
		Date:        "2024-02-25",
		Time:        "21:00",
		TicketPrice: catalog.Price(60),
		Description: "Cutting-edge electronic music with mind-bending visuals.",
		Venue:       &venues[2],
		Bands:       []catalog.Band{bands[2]},
		Reviews:     []catalog.Review{},
		CreatedAt:   "2024-01-03T00:00:00",
	},
}

// Set is the read-only baseline. The zero value is empty; Default returns the
// bundled catalog.
type Set struct {
	shows   []catalog.Show
	bands   []catalog.Band
	venues  []catalog.Venue
	reviews []catalog.Review
}

// Default returns the bundled offline catalog.
func Default() Set {
	return Set{shows: shows, bands: bands, venues: venues, reviews: reviews}
}

// New builds a baseline from caller-provided records, mainly for tests.
func New(shows []catalog.Show, bands []catalog.Band, venues []catalog.Venue, reviews []catalog.Review) Set {
	return Set{shows: cloneShows(shows), bands: cloneBands(bands), venues: append([]catalog.Venue(nil), venues...), reviews: cloneReviews(reviews)}
}

// Shows returns a copy of the baseline shows.
func (s Set) Shows() []catalog.Show { return cloneShows(s.shows) }

// Bands returns a copy of the baseline bands.
func (s Set) Bands() []catalog.Band { return cloneBands(s.bands) }

// Venues returns a copy of the baseline venues.
func (s Set) Venues() []catalog.Venue { return append([]catalog.Venue{}, s.venues...) }

// Reviews returns a copy of the baseline reviews.
func (s Set) Reviews() []catalog.Review { return cloneReviews(s.reviews) }

func cloneShows(in []catalog.Show) []catalog.Show {
	out := make([]catalog.Show, len(in))
	for i, show := range in {
		out[i] = show.Clone()
	}
	return out
}

func cloneBands(in []catalog.Band) []catalog.Band {
	out := make([]catalog.Band, len(in))
	for i, band := range in {
		out[i] = band.Clone()
	}
	return out
}

func cloneReviews(in []catalog.Review) []catalog.Review {
	out := make([]catalog.Review, len(in))
	for i, review := range in {
		out[i] = review.Clone()
	}
	return out
}
