package fallback

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/setlist/internal/catalog"
	"github.com/five82/setlist/internal/localstore"
	"github.com/five82/setlist/internal/remote"
)

// CreateBand posts a band. When the service fails the band is given a local
// id, stored, and returned as PendingLocal, or Unsaved when the local store
// cannot persist it. The only error is a validation error on in.
func (c *Client) CreateBand(ctx context.Context, in catalog.BandInput) (Result[catalog.Band], error) {
	now := c.now()
	if err := in.Validate(now); err != nil {
		return Result[catalog.Band]{}, fmt.Errorf("invalid band: %w", err)
	}
	in = in.Normalize()

	var created catalog.Band
	err := c.call(ctx, "create band", func(ctx context.Context, api remote.API) error {
		band, err := api.CreateBand(ctx, in)
		created = band
		return err
	})
	if err == nil {
		c.retirePendingBands(in)
		return Result[catalog.Band]{Record: created, State: Confirmed}, nil
	}

	band := in.Band(c.ids.Next(), now)
	state := c.offlineState("create band", band.ID, c.local.Bands.Append(band))
	return Result[catalog.Band]{Record: band, State: state}, nil
}

// CreateReview posts a review, keeping it locally when the service fails.
func (c *Client) CreateReview(ctx context.Context, in catalog.ReviewInput) (Result[catalog.Review], error) {
	if err := in.Validate(); err != nil {
		return Result[catalog.Review]{}, fmt.Errorf("invalid review: %w", err)
	}
	in = in.Normalize()

	var created catalog.Review
	err := c.call(ctx, "create review", func(ctx context.Context, api remote.API) error {
		review, err := api.CreateReview(ctx, in)
		created = review
		return err
	})
	if err == nil {
		c.retirePendingReviews(in)
		return Result[catalog.Review]{Record: created, State: Confirmed}, nil
	}

	review := in.Review(c.ids.Next(), c.now())
	state := c.offlineState("create review", review.ID, c.local.Reviews.Append(review))
	return Result[catalog.Review]{Record: review, State: state}, nil
}

// UpdateReview edits a review. Reviews that only exist locally are edited in
// the local store without contacting the service.
func (c *Client) UpdateReview(ctx context.Context, id int64, in catalog.ReviewInput) (Result[catalog.Review], error) {
	if id <= 0 {
		return Result[catalog.Review]{}, fmt.Errorf("invalid review id %d", id)
	}
	if err := in.ValidateUpdate(); err != nil {
		return Result[catalog.Review]{}, fmt.Errorf("invalid review: %w", err)
	}
	in = in.Normalize()

	if existing, ok := c.local.Reviews.Get(id); ok && localstore.IsLocalID(id) {
		updated := in.Apply(existing)
		_, err := c.local.Reviews.Replace(updated)
		return Result[catalog.Review]{Record: updated, State: c.offlineState("update review", id, err)}, nil
	}

	var patched catalog.Review
	err := c.call(ctx, "update review", func(ctx context.Context, api remote.API) error {
		review, err := api.UpdateReview(ctx, id, in)
		patched = review
		return err
	})
	if err == nil {
		// The service copy is authoritative now; drop any offline edit.
		_, rmErr := c.local.Reviews.Remove(id)
		c.warnPersist("update review", id, rmErr)
		return Result[catalog.Review]{Record: patched, State: Confirmed}, nil
	}

	base, ok := c.knownReview(id)
	if !ok {
		base = catalog.Review{ID: id, ShowID: in.ShowID, CreatedAt: catalog.FormatTimestamp(c.now())}
	}
	updated := in.Apply(base)
	state := c.offlineState("update review", id, c.local.Reviews.Upsert(updated))
	return Result[catalog.Review]{Record: updated, State: state}, nil
}

// DeleteReview removes a review. A review that never reached the service is
// removed locally and reported Confirmed, since nothing remains to sync.
// When the service fails the review is hidden locally and the delete is
// reported PendingLocal.
func (c *Client) DeleteReview(ctx context.Context, id int64) (Result[int64], error) {
	if id <= 0 {
		return Result[int64]{}, fmt.Errorf("invalid review id %d", id)
	}

	if localstore.IsLocalID(id) && c.local.Reviews.Has(id) {
		_, err := c.local.Reviews.Remove(id)
		c.warnPersist("delete review", id, err)
		return Result[int64]{Record: id, State: Confirmed}, nil
	}

	err := c.call(ctx, "delete review", func(ctx context.Context, api remote.API) error {
		return api.DeleteReview(ctx, id)
	})
	if err == nil {
		_, rmErr := c.local.Reviews.Remove(id)
		c.warnPersist("delete review", id, rmErr)
		_, rmErr = c.local.DeletedReviews.Remove(id)
		c.warnPersist("delete review", id, rmErr)
		return Result[int64]{Record: id, State: Confirmed}, nil
	}

	_, rmErr := c.local.Reviews.Remove(id)
	c.warnPersist("delete review", id, rmErr)
	state := c.offlineState("delete review", id, c.local.DeletedReviews.Upsert(id))
	return Result[int64]{Record: id, State: state}, nil
}

// PendingBands returns the bands that only exist locally.
func (c *Client) PendingBands() []catalog.Band {
	return c.local.Bands.All()
}

// PendingReviews returns the reviews created or edited while offline.
func (c *Client) PendingReviews() []catalog.Review {
	return c.local.Reviews.All()
}

func (c *Client) knownReview(id int64) (catalog.Review, bool) {
	if r, ok := c.local.Reviews.Get(id); ok {
		return r, true
	}
	for _, r := range c.seed.Reviews() {
		if r.ID == id {
			return r, true
		}
	}
	return catalog.Review{}, false
}

// retirePendingBands drops local bands the service has now accepted under a
// new id, matched on name and formation year.
func (c *Client) retirePendingBands(in catalog.BandInput) {
	name := strings.ToLower(in.Name)
	removed, err := c.local.Bands.RemoveFunc(func(b catalog.Band) bool {
		return localstore.IsLocalID(b.ID) && strings.ToLower(strings.TrimSpace(b.Name)) == name && b.FormedYear == in.FormedYear
	})
	c.warnPersist("create band", 0, err)
	if removed {
		c.log.Info("retired local band accepted by remote", zap.String("name", in.Name), zap.Int("formed_year", in.FormedYear))
	}
}

// retirePendingReviews drops local reviews matching a review the service
// has now accepted: same show, author and comment.
func (c *Client) retirePendingReviews(in catalog.ReviewInput) {
	removed, err := c.local.Reviews.RemoveFunc(func(r catalog.Review) bool {
		return localstore.IsLocalID(r.ID) && r.ShowID == in.ShowID &&
			strings.EqualFold(strings.TrimSpace(r.UserName), in.UserName) &&
			strings.TrimSpace(r.Comment) == in.Comment
	})
	c.warnPersist("create review", 0, err)
	if removed {
		c.log.Info("retired local review accepted by remote", zap.Int64("show_id", in.ShowID))
	}
}
