package fallback

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/setlist/internal/catalog"
	"github.com/five82/setlist/internal/localstore"
	"github.com/five82/setlist/internal/remote"
	"github.com/five82/setlist/internal/seed"
)

// DefaultCallTimeout bounds each remote call before the offline path runs.
const DefaultCallTimeout = 8 * time.Second

// State tells a write's caller whether the service accepted the record.
type State int

const (
	// Confirmed means the service accepted the write; its id is authoritative.
	Confirmed State = iota
	// PendingLocal means the write was kept in the local store because the
	// service could not be reached or refused it.
	PendingLocal
	// Unsaved means the service failed and the local store could not
	// persist the record either. The record exists nowhere.
	Unsaved
)

func (s State) String() string {
	switch s {
	case PendingLocal:
		return "pending"
	case Unsaved:
		return "unsaved"
	default:
		return "confirmed"
	}
}

// MarshalText encodes the state as its String form.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the String form.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "confirmed":
		*s = Confirmed
	case "pending":
		*s = PendingLocal
	case "unsaved":
		*s = Unsaved
	default:
		return fmt.Errorf("unknown write state %q", text)
	}
	return nil
}

// Result is the outcome of a write. Both states are successes from the
// caller's point of view.
type Result[T any] struct {
	Record T     `json:"record"`
	State  State `json:"state"`
}

// IsPending reports whether the record only exists locally.
func (r Result[T]) IsPending() bool {
	return r.State == PendingLocal
}

// Local is the set of collections holding the user's offline edits.
type Local struct {
	Bands          *localstore.Collection[catalog.Band]
	Reviews        *localstore.Collection[catalog.Review]
	DeletedReviews *localstore.Collection[int64]
}

// OpenLocal opens the three collections on backend.
func OpenLocal(backend localstore.Backend, log *zap.Logger) Local {
	return Local{
		Bands:          localstore.Open(backend, localstore.KeyCreatedBands, bandKey, log),
		Reviews:        localstore.Open(backend, localstore.KeyCreatedReviews, reviewKey, log),
		DeletedReviews: localstore.Open(backend, localstore.KeyDeletedReviews, func(id int64) int64 { return id }, log),
	}
}

// Options configure a Client.
type Options struct {
	API         remote.API
	Seed        seed.Set
	Local       Local
	IDs         *localstore.IDSource
	Logger      *zap.Logger
	CallTimeout time.Duration
	Now         func() time.Time
}

// Client runs every operation remote-first and substitutes the seed set
// plus the user's local records when the service fails. Reads never return
// an error. Writes only return validation errors.
type Client struct {
	api     remote.API
	seed    seed.Set
	local   Local
	ids     *localstore.IDSource
	log     *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

// New builds a Client. Nil local collections are replaced with in-memory
// ones so the client is always usable.
func New(opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	timeout := opts.CallTimeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	local := opts.Local
	if local.Bands == nil || local.Reviews == nil || local.DeletedReviews == nil {
		mem := OpenLocal(localstore.NewMemoryBackend(), log)
		if local.Bands == nil {
			local.Bands = mem.Bands
		}
		if local.Reviews == nil {
			local.Reviews = mem.Reviews
		}
		if local.DeletedReviews == nil {
			local.DeletedReviews = mem.DeletedReviews
		}
	}
	ids := opts.IDs
	if ids == nil {
		ids = localstore.NewIDSource(now)
	}
	for _, b := range local.Bands.All() {
		ids.Observe(b.ID)
	}
	for _, r := range local.Reviews.All() {
		ids.Observe(r.ID)
	}
	return &Client{
		api:     opts.API,
		seed:    opts.Seed,
		local:   local,
		ids:     ids,
		log:     log,
		timeout: timeout,
		now:     now,
	}
}

// call runs fn against the service under the per-call timeout and logs the
// failure that sends the operation down its offline path.
func (c *Client) call(ctx context.Context, op string, fn func(ctx context.Context, api remote.API) error) error {
	if c.api == nil {
		return errNoRemote
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := fn(ctx, c.api); err != nil {
		c.log.Info("remote call failed, using offline data", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

func (c *Client) warnPersist(op string, id int64, err error) {
	if err != nil {
		c.log.Warn("local store write failed", zap.String("op", op), zap.Int64("id", id), zap.Error(err))
	}
}

// offlineState is the state of a write that took the offline path: pending
// when the local store kept it, unsaved when it did not.
func (c *Client) offlineState(op string, id int64, err error) State {
	if err != nil {
		c.warnPersist(op, id, err)
		return Unsaved
	}
	return PendingLocal
}

func bandKey(b catalog.Band) int64     { return b.ID }
func reviewKey(r catalog.Review) int64 { return r.ID }
func showKey(s catalog.Show) int64     { return s.ID }
func venueKey(v catalog.Venue) int64   { return v.ID }
