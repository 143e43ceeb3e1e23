package catalog

import (
	"strings"
	"time"
)

const (
	dateLayout         = "2006-01-02"
	isoTimestampLayout = "2006-01-02T15:04:05"
)

// Show mirrors the payload returned by /api/shows.
type Show struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Time        string   `json:"time,omitempty"`
	TicketPrice *float64 `json:"ticket_price,omitempty"`
	Venue       *Venue   `json:"venue,omitempty"`
	Bands       []Band   `json:"bands"`
	Reviews     []Review `json:"reviews"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// Band mirrors /api/bands entries.
type Band struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Genre       string     `json:"genre"`
	Description string     `json:"description"`
	FormedYear  int        `json:"formed_year"`
	Musicians   []Musician `json:"musicians"`
	CreatedAt   string     `json:"created_at,omitempty"`
}

// Musician is a band member nested under Band.
type Musician struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Instrument string `json:"instrument,omitempty"`
	Bio        string `json:"bio,omitempty"`
	BandID     int64  `json:"band_id,omitempty"`
}

// Venue mirrors /api/venues entries.
type Venue struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Address  string `json:"address,omitempty"`
	Capacity int    `json:"capacity"`
	Phone    string `json:"phone,omitempty"`
}

// Review mirrors /api/reviews entries. Older payloads carry a flat
// user_name instead of the nested user object.
type Review struct {
	ID        int64  `json:"id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	UserName  string `json:"user_name,omitempty"`
	User      *User  `json:"user,omitempty"`
	ShowID    int64  `json:"show_id"`
	CreatedAt string `json:"created_at,omitempty"`
}

// User is the review author.
type User struct {
	ID        int64  `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// AuthorName returns the display name of the review author.
func (r Review) AuthorName() string {
	if r.User != nil {
		if name := strings.TrimSpace(r.User.Username); name != "" {
			return name
		}
	}
	if name := strings.TrimSpace(r.UserName); name != "" {
		return name
	}
	return "Anonymous"
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (r Review) ParsedCreatedAt() time.Time {
	return ParseTimestamp(r.CreatedAt)
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (b Band) ParsedCreatedAt() time.Time {
	return ParseTimestamp(b.CreatedAt)
}

// ParsedDate returns the show date, or the zero time when it does not parse.
func (s Show) ParsedDate() time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s.Date))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Price returns the ticket price, treating an absent price as zero.
func (s Show) Price() float64 {
	if s.TicketPrice == nil {
		return 0
	}
	return *s.TicketPrice
}

// VenueName returns the venue name or "" when the show has no venue.
func (s Show) VenueName() string {
	if s.Venue == nil {
		return ""
	}
	return s.Venue.Name
}

// Valid reports whether the show satisfies the model invariants: a calendar
// date and a non-negative price.
func (s Show) Valid() bool {
	if s.ParsedDate().IsZero() {
		return false
	}
	return s.TicketPrice == nil || *s.TicketPrice >= 0
}

// Clone returns a deep copy of the show.
func (s Show) Clone() Show {
	out := s
	if s.TicketPrice != nil {
		price := *s.TicketPrice
		out.TicketPrice = &price
	}
	if s.Venue != nil {
		venue := *s.Venue
		out.Venue = &venue
	}
	if s.Bands != nil {
		out.Bands = make([]Band, len(s.Bands))
		for i, band := range s.Bands {
			out.Bands[i] = band.Clone()
		}
	}
	if s.Reviews != nil {
		out.Reviews = make([]Review, len(s.Reviews))
		for i, review := range s.Reviews {
			out.Reviews[i] = review.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the band.
func (b Band) Clone() Band {
	out := b
	if b.Musicians != nil {
		out.Musicians = append([]Musician(nil), b.Musicians...)
	}
	return out
}

// Clone returns a deep copy of the review.
func (r Review) Clone() Review {
	out := r
	if r.User != nil {
		user := *r.User
		out.User = &user
	}
	return out
}

// Price is a convenience for building optional ticket prices.
func Price(v float64) *float64 {
	return &v
}

// FormatTimestamp renders t the way the show service does.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimestamp accepts RFC3339 variants and the service's naive isoformat.
// Invalid or missing values return the zero time.
func ParseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999", value); err == nil {
		return t
	}
	if t, err := time.Parse(isoTimestampLayout, value); err == nil {
		return t
	}
	return time.Time{}
}
