package localstore

import (
	"sync"
	"time"
)

// IDSource hands out identifiers for records created while the service is
// unreachable. Values are Unix milliseconds, bumped past the previous value
// when the clock stalls or steps back, so they are strictly increasing within
// a process and sit far above the small integers the service assigns.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDSource returns a source driven by now; nil uses time.Now.
func NewIDSource(now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{now: now}
}

// Next returns the next identifier.
func (s *IDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.now == nil {
		s.now = time.Now
	}
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe raises the floor so later ids exceed every id already persisted.
func (s *IDSource) Observe(ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if id > s.last {
			s.last = id
		}
	}
}

// localIDFloor separates locally generated ids (epoch milliseconds) from the
// service's sequential ids.
const localIDFloor = int64(1_000_000_000_000)

// IsLocalID reports whether id looks like one produced by an IDSource.
func IsLocalID(id int64) bool {
	return id >= localIDFloor
}
