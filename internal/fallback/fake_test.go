package fallback

import (
	"context"
	"errors"
	"sync"

	"github.com/five82/setlist/internal/catalog"
	"github.com/five82/setlist/internal/remote"
)

var errDown = errors.New("connection refused")

// fakeAPI is an in-memory show service. When down is set every call fails;
// when hang is set every call blocks until its context ends.
type fakeAPI struct {
	mu      sync.Mutex
	down    bool
	hang    bool
	calls   map[string]int
	shows   []catalog.Show
	bands   []catalog.Band
	venues  []catalog.Venue
	reviews []catalog.Review
	nextID  int64
}

var _ remote.API = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int), nextID: 100}
}

func (f *fakeAPI) setDown(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) enter(ctx context.Context, op string) error {
	f.mu.Lock()
	f.calls[op]++
	down, hang := f.down, f.hang
	f.mu.Unlock()
	if hang {
		<-ctx.Done()
		return ctx.Err()
	}
	if down {
		return errDown
	}
	return nil
}

func (f *fakeAPI) ListShows(ctx context.Context) ([]catalog.Show, error) {
	if err := f.enter(ctx, "ListShows"); err != nil {
		return nil, err
	}
	return append([]catalog.Show{}, f.shows...), nil
}

func (f *fakeAPI) GetShow(ctx context.Context, id int64) (catalog.Show, error) {
	if err := f.enter(ctx, "GetShow"); err != nil {
		return catalog.Show{}, err
	}
	for _, s := range f.shows {
		if s.ID == id {
			return s, nil
		}
	}
	return catalog.Show{}, &remote.StatusError{Method: "GET", Path: "/api/shows/", Code: 404}
}

func (f *fakeAPI) ListBands(ctx context.Context) ([]catalog.Band, error) {
	if err := f.enter(ctx, "ListBands"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.Band{}, f.bands...), nil
}

func (f *fakeAPI) GetBand(ctx context.Context, id int64) (catalog.Band, error) {
	if err := f.enter(ctx, "GetBand"); err != nil {
		return catalog.Band{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bands {
		if b.ID == id {
			return b, nil
		}
	}
	return catalog.Band{}, &remote.StatusError{Method: "GET", Path: "/api/bands/", Code: 404}
}

func (f *fakeAPI) CreateBand(ctx context.Context, in catalog.BandInput) (catalog.Band, error) {
	if err := f.enter(ctx, "CreateBand"); err != nil {
		return catalog.Band{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	band := in.Band(f.nextID, catalog.ParseTimestamp("2024-03-01T00:00:00Z"))
	f.bands = append(f.bands, band)
	return band, nil
}

func (f *fakeAPI) ListVenues(ctx context.Context) ([]catalog.Venue, error) {
	if err := f.enter(ctx, "ListVenues"); err != nil {
		return nil, err
	}
	return append([]catalog.Venue{}, f.venues...), nil
}

func (f *fakeAPI) GetVenue(ctx context.Context, id int64) (catalog.Venue, error) {
	if err := f.enter(ctx, "GetVenue"); err != nil {
		return catalog.Venue{}, err
	}
	for _, v := range f.venues {
		if v.ID == id {
			return v, nil
		}
	}
	return catalog.Venue{}, &remote.StatusError{Method: "GET", Path: "/api/venues/", Code: 404}
}

func (f *fakeAPI) ListReviews(ctx context.Context, showID int64) ([]catalog.Review, error) {
	if err := f.enter(ctx, "ListReviews"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []catalog.Review
	for _, r := range f.reviews {
		if r.ShowID == showID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateReview(ctx context.Context, in catalog.ReviewInput) (catalog.Review, error) {
	if err := f.enter(ctx, "CreateReview"); err != nil {
		return catalog.Review{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	review := in.Review(f.nextID, catalog.ParseTimestamp("2024-03-01T00:00:00Z"))
	f.reviews = append(f.reviews, review)
	return review, nil
}

func (f *fakeAPI) UpdateReview(ctx context.Context, id int64, in catalog.ReviewInput) (catalog.Review, error) {
	if err := f.enter(ctx, "UpdateReview"); err != nil {
		return catalog.Review{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews[i] = in.Apply(r)
			return f.reviews[i], nil
		}
	}
	return catalog.Review{}, &remote.StatusError{Method: "PATCH", Path: "/api/reviews/", Code: 404}
}

func (f *fakeAPI) DeleteReview(ctx context.Context, id int64) error {
	if err := f.enter(ctx, "DeleteReview"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return &remote.StatusError{Method: "DELETE", Path: "/api/reviews/", Code: 404}
}

func (f *fakeAPI) Ping(ctx context.Context) error {
	return f.enter(ctx, "Ping")
}

// brokenBackend loads nothing and refuses every save.
type brokenBackend struct{}

func (brokenBackend) Load(string) ([]byte, error) { return nil, nil }
func (brokenBackend) Save(string, []byte) error   { return errors.New("disk full") }
func (brokenBackend) Close() error                { return nil }
