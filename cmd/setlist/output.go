package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/five82/setlist/internal/catalog"
	"github.com/five82/setlist/internal/fallback"
	"github.com/five82/setlist/internal/localstore"
	"github.com/five82/setlist/internal/query"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// writeTable prints rows through a tabwriter, trimming trailing padding.
func writeTable(w io.Writer, header string, rows []string) {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, row := range rows {
		fmt.Fprintln(tw, row)
	}
	_ = tw.Flush()
	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func priceText(s catalog.Show) string {
	if s.TicketPrice == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *s.TicketPrice)
}

func originText(id int64) string {
	if localstore.IsLocalID(id) {
		return "local"
	}
	return ""
}

func printShows(w io.Writer, shows []catalog.Show) {
	if len(shows) == 0 {
		fmt.Fprintln(w, "No shows found.")
		return
	}
	rows := make([]string, 0, len(shows))
	for _, s := range shows {
		avg := query.AverageRating(s.Reviews)
		rows = append(rows, fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s (%d)",
			s.ID, s.Date, s.Title, s.VenueName(), priceText(s), query.FormatRating(avg), query.ReviewCount(s)))
	}
	writeTable(w, "ID\tDATE\tTITLE\tVENUE\tPRICE\tRATING", rows)
	fmt.Fprintf(w, "Total: %d show(s)\n", len(shows))
}

func printShow(w io.Writer, s catalog.Show) {
	fmt.Fprintf(w, "%s\n", s.Title)
	when := s.Date
	if s.Time != "" {
		when += " " + s.Time
	}
	fmt.Fprintf(w, "When:   %s\n", when)
	if s.Venue != nil {
		fmt.Fprintf(w, "Venue:  %s, %s\n", s.Venue.Name, s.Venue.City)
	}
	fmt.Fprintf(w, "Price:  %s\n", priceText(s))
	for _, b := range s.Bands {
		fmt.Fprintf(w, "Band:   %s %s (%s)\n", catalog.GenreEmoji(b.Genre), b.Name, b.Genre)
	}
	if s.Description != "" {
		fmt.Fprintf(w, "\n%s\n", s.Description)
	}
	avg := query.AverageRating(s.Reviews)
	fmt.Fprintf(w, "\nRating: %s %s (%d reviews)\n", query.Stars(avg), query.FormatRating(avg), query.ReviewCount(s))
	printReviews(w, s.Reviews)
}

func printReviews(w io.Writer, reviews []catalog.Review) {
	if len(reviews) == 0 {
		fmt.Fprintln(w, "No reviews yet.")
		return
	}
	rows := make([]string, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, fmt.Sprintf("%d\t%s\t%s\t%s\t%s",
			r.ID, query.Stars(float64(r.Rating)), r.AuthorName(), r.Comment, originText(r.ID)))
	}
	writeTable(w, "ID\tRATING\tAUTHOR\tCOMMENT\tORIGIN", rows)
}

func printBands(w io.Writer, bands []catalog.Band) {
	if len(bands) == 0 {
		fmt.Fprintln(w, "No bands found.")
		return
	}
	rows := make([]string, 0, len(bands))
	for _, b := range bands {
		rows = append(rows, fmt.Sprintf("%d\t%s\t%s\t%d\t%s", b.ID, b.Name, b.Genre, b.FormedYear, originText(b.ID)))
	}
	writeTable(w, "ID\tNAME\tGENRE\tFORMED\tORIGIN", rows)
	fmt.Fprintf(w, "Total: %d band(s)\n", len(bands))
}

func printBand(w io.Writer, b catalog.Band) {
	fmt.Fprintf(w, "%s %s\n", catalog.GenreEmoji(b.Genre), b.Name)
	fmt.Fprintf(w, "Genre:  %s\n", b.Genre)
	fmt.Fprintf(w, "Formed: %d\n", b.FormedYear)
	if b.Description != "" {
		fmt.Fprintf(w, "\n%s\n", b.Description)
	}
	for _, m := range b.Musicians {
		fmt.Fprintf(w, "Member: %s %s\n", m.Name, m.Instrument)
	}
}

func printVenues(w io.Writer, venues []catalog.Venue) {
	if len(venues) == 0 {
		fmt.Fprintln(w, "No venues found.")
		return
	}
	rows := make([]string, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, fmt.Sprintf("%d\t%s\t%s\t%d", v.ID, v.Name, v.City, v.Capacity))
	}
	writeTable(w, "ID\tNAME\tCITY\tCAPACITY", rows)
}

// printWrite reports a write and whether it still has to reach the service.
func printWrite[T any](w io.Writer, what string, id int64, res fallback.Result[T]) {
	switch res.State {
	case fallback.PendingLocal:
		fmt.Fprintf(w, "%s %d saved locally; the show service was unavailable\n", what, id)
	case fallback.Unsaved:
		fmt.Fprintf(w, "%s %d was not saved; the show service and the local store both failed\n", what, id)
	default:
		fmt.Fprintf(w, "%s %d saved\n", what, id)
	}
}
