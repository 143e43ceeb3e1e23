package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minBandNameLen       = 2
	minBandDescLen       = 10
	minFormedYear        = 1900
	minReviewCommentLen  = 10
	maxReviewCommentLen  = 500
	minReviewerNameLen   = 2
	minRating, maxRating = 1, 5
)

// KnownGenres lists the genres offered when creating a band. Genre is free
// text on the wire; this is only the suggested set.
var KnownGenres = []string{"Rock", "Jazz", "Electronic", "Pop", "Hip Hop", "Classical", "Country", "Indie"}

var genreEmoji = map[string]string{
	"Rock":       "🎸",
	"Jazz":       "🎷",
	"Electronic": "🎧",
	"Indie":      "🎤",
	"Pop":        "🎵",
	"Classical":  "🎼",
	"Country":    "🤠",
	"Hip Hop":    "🎤",
}

// GenreEmoji returns the display glyph for a genre.
func GenreEmoji(genre string) string {
	if e, ok := genreEmoji[genre]; ok {
		return e
	}
	return "🎵"
}

// BandInput is the POST /api/bands payload.
type BandInput struct {
	Name        string `json:"name"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	FormedYear  int    `json:"formed_year"`
}

// Normalize trims surrounding whitespace from the text fields.
func (in BandInput) Normalize() BandInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Genre = strings.TrimSpace(in.Genre)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

// Validate checks the input against the band form rules. now bounds the
// formation year.
func (in BandInput) Validate(now time.Time) error {
	in = in.Normalize()
	var errs []error
	if utf8.RuneCountInString(in.Name) < minBandNameLen {
		errs = append(errs, fmt.Errorf("band name must be at least %d characters", minBandNameLen))
	}
	if in.Genre == "" {
		errs = append(errs, errors.New("genre is required"))
	}
	if utf8.RuneCountInString(in.Description) < minBandDescLen {
		errs = append(errs, fmt.Errorf("description must be at least %d characters", minBandDescLen))
	}
	if in.FormedYear < minFormedYear {
		errs = append(errs, fmt.Errorf("formed year must be %d or later", minFormedYear))
	} else if in.FormedYear > now.Year() {
		errs = append(errs, errors.New("formed year cannot be in the future"))
	}
	return errors.Join(errs...)
}

// Band builds a band record from the input.
func (in BandInput) Band(id int64, createdAt time.Time) Band {
	in = in.Normalize()
	return Band{
		ID:          id,
		Name:        in.Name,
		Genre:       in.Genre,
		Description: in.Description,
		FormedYear:  in.FormedYear,
		Musicians:   []Musician{},
		CreatedAt:   FormatTimestamp(createdAt),
	}
}

// ReviewInput is the POST/PATCH /api/reviews payload.
type ReviewInput struct {
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	UserName string `json:"user_name"`
	ShowID   int64  `json:"show_id"`
}

// Normalize trims surrounding whitespace from the text fields.
func (in ReviewInput) Normalize() ReviewInput {
	in.Comment = strings.TrimSpace(in.Comment)
	in.UserName = strings.TrimSpace(in.UserName)
	return in
}

// Validate checks the input against the review form rules.
func (in ReviewInput) Validate() error {
	errs := in.validateText()
	if in.ShowID <= 0 {
		errs = append(errs, errors.New("show id is required"))
	}
	return errors.Join(errs...)
}

// ValidateUpdate checks an edit of an existing review, where the show is
// already fixed and ShowID may be zero.
func (in ReviewInput) ValidateUpdate() error {
	return errors.Join(in.validateText()...)
}

func (in ReviewInput) validateText() []error {
	in = in.Normalize()
	var errs []error
	if in.Rating < minRating || in.Rating > maxRating {
		errs = append(errs, fmt.Errorf("rating must be between %d and %d", minRating, maxRating))
	}
	n := utf8.RuneCountInString(in.Comment)
	if n < minReviewCommentLen {
		errs = append(errs, fmt.Errorf("comment must be at least %d characters", minReviewCommentLen))
	} else if n > maxReviewCommentLen {
		errs = append(errs, fmt.Errorf("comment must be less than %d characters", maxReviewCommentLen))
	}
	if in.UserName != "" && utf8.RuneCountInString(in.UserName) < minReviewerNameLen {
		errs = append(errs, fmt.Errorf("name must be at least %d characters", minReviewerNameLen))
	}
	return errs
}

// Review builds a review record from the input.
func (in ReviewInput) Review(id int64, createdAt time.Time) Review {
	in = in.Normalize()
	return Review{
		ID:        id,
		Rating:    in.Rating,
		Comment:   in.Comment,
		UserName:  in.UserName,
		ShowID:    in.ShowID,
		CreatedAt: FormatTimestamp(createdAt),
	}
}

// Apply returns r with the editable fields replaced by the input.
func (in ReviewInput) Apply(r Review) Review {
	in = in.Normalize()
	r.Rating = in.Rating
	r.Comment = in.Comment
	if in.UserName != "" {
		r.UserName = in.UserName
	}
	if in.ShowID > 0 {
		r.ShowID = in.ShowID
	}
	return r
}
