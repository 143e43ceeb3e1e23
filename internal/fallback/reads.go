package fallback

import (
	"context"

	"github.com/five82/setlist/internal/catalog"
	"github.com/five82/setlist/internal/remote"
)

// ListShows returns the seed shows merged with the service's shows. Each
// show carries the same reviews ListReviews returns for it.
func (c *Client) ListShows(ctx context.Context) []catalog.Show {
	return listWithFallback(ctx, c, "list shows",
		func(ctx context.Context, api remote.API) ([]catalog.Show, error) {
			shows, err := api.ListShows(ctx)
			return c.withReviews(shows, true), err
		},
		c.offlineShows,
		showKey,
	)
}

// GetShow returns one show. ok is false when the show is unknown both to the
// service and to the offline set.
func (c *Client) GetShow(ctx context.Context, id int64) (catalog.Show, bool) {
	return getWithFallback(ctx, c, "get show", id,
		func(ctx context.Context, api remote.API, id int64) (catalog.Show, error) {
			show, err := api.GetShow(ctx, id)
			if err != nil {
				return show, err
			}
			return c.withReviews([]catalog.Show{show}, true)[0], nil
		},
		c.offlineShows,
		showKey,
	)
}

// ListBands returns seed ∪ local ∪ service bands, deduplicated by id with
// the service winning. Local bands stay visible while the service lags.
func (c *Client) ListBands(ctx context.Context) []catalog.Band {
	return listWithFallback(ctx, c, "list bands",
		func(ctx context.Context, api remote.API) ([]catalog.Band, error) { return api.ListBands(ctx) },
		c.offlineBands,
		bandKey,
	)
}

// GetBand returns one band.
func (c *Client) GetBand(ctx context.Context, id int64) (catalog.Band, bool) {
	return getWithFallback(ctx, c, "get band", id,
		func(ctx context.Context, api remote.API, id int64) (catalog.Band, error) { return api.GetBand(ctx, id) },
		c.offlineBands,
		bandKey,
	)
}

// ListVenues returns the seed venues merged with the service's venues.
func (c *Client) ListVenues(ctx context.Context) []catalog.Venue {
	return listWithFallback(ctx, c, "list venues",
		func(ctx context.Context, api remote.API) ([]catalog.Venue, error) { return api.ListVenues(ctx) },
		c.seed.Venues,
		venueKey,
	)
}

// GetVenue returns one venue.
func (c *Client) GetVenue(ctx context.Context, id int64) (catalog.Venue, bool) {
	return getWithFallback(ctx, c, "get venue", id,
		func(ctx context.Context, api remote.API, id int64) (catalog.Venue, error) { return api.GetVenue(ctx, id) },
		c.seed.Venues,
		venueKey,
	)
}

// ListReviews returns the reviews of one show, offline reviews first.
// Reviews deleted while offline stay hidden.
func (c *Client) ListReviews(ctx context.Context, showID int64) []catalog.Review {
	reviews := listWithFallback(ctx, c, "list reviews",
		func(ctx context.Context, api remote.API) ([]catalog.Review, error) { return api.ListReviews(ctx, showID) },
		func() []catalog.Review { return c.offlineReviews(showID) },
		reviewKey,
	)
	return c.withoutDeleted(reviews)
}

func (c *Client) offlineBands() []catalog.Band {
	return append(c.seed.Bands(), c.local.Bands.All()...)
}

func (c *Client) offlineReviews(showID int64) []catalog.Review {
	var out []catalog.Review
	for _, r := range c.seed.Reviews() {
		if r.ShowID == showID {
			out = append(out, r)
		}
	}
	for _, r := range c.local.Reviews.All() {
		if r.ShowID == showID {
			out = append(out, r)
		}
	}
	return out
}

func (c *Client) offlineShows() []catalog.Show {
	return c.withReviews(c.seed.Shows(), false)
}

// withReviews gives each show the merged review list ListReviews would
// return: seed, then local, then the show's own reviews. fromService shows
// win collisions with local copies; seed shows lose them, so offline edits
// show through.
func (c *Client) withReviews(shows []catalog.Show, fromService bool) []catalog.Show {
	for i, show := range shows {
		var reviews []catalog.Review
		if fromService {
			reviews = merge(reviewKey, c.offlineReviews(show.ID), show.Reviews)
		} else {
			reviews = merge(reviewKey, show.Reviews, c.offlineReviews(show.ID))
		}
		shows[i].Reviews = c.withoutDeleted(reviews)
	}
	return shows
}

func (c *Client) withoutDeleted(reviews []catalog.Review) []catalog.Review {
	if c.local.DeletedReviews.Len() == 0 {
		return reviews
	}
	out := reviews[:0]
	for _, r := range reviews {
		if !c.local.DeletedReviews.Has(r.ID) {
			out = append(out, r)
		}
	}
	return out
}
