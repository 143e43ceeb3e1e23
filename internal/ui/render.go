package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/setlist/internal/catalog"
	"github.com/five82/setlist/internal/localstore"
	"github.com/five82/setlist/internal/monitor"
	"github.com/five82/setlist/internal/query"
)

// renderMain renders the header, command bar, body and footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	tabs := []string{"Shows", "Bands"}
	for i, name := range tabs {
		if View(i) == m.view {
			tabs[i] = styles.AccentText.Render(name)
		} else {
			tabs[i] = styles.MutedText.Render(name)
		}
	}
	left := styles.WarningText.Bold(true).Render("♫ setlist") + "  " + strings.Join(tabs, " · ")
	right := m.renderPill(styles)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderPill draws the availability indicator.
func (m Model) renderPill(styles Styles) string {
	return styles.Pill(m.snapshot.State.String()).Render("● " + m.snapshot.Label())
}

func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	if m.searching {
		return styles.Footer.Width(m.width).Render(m.search.View())
	}

	var segments []string
	add := func(label, value string) {
		if value == "" {
			value = "all"
		}
		segments = append(segments, styles.FaintText.Render(label+":")+" "+styles.Text.Render(value))
	}
	if m.view == ViewShows {
		add("search", m.showQuery.Term)
		add("genre", m.showQuery.Genre)
		add("venue", m.showQuery.Venue)
		segments = append(segments, styles.FaintText.Render("sort:")+" "+styles.Text.Render(m.showQuery.Sort.Label()))
		if m.showQuery.Active() {
			segments = append(segments, styles.WarningText.Render("c clears"))
		}
		segments = append(segments, styles.MutedText.Render(fmt.Sprintf("Showing %d of %d shows", len(m.visibleShows()), len(m.shows))))
	} else {
		add("search", m.bandQuery.Term)
		add("genre", m.bandQuery.Genre)
		segments = append(segments, styles.MutedText.Render(fmt.Sprintf("Showing %d of %d bands", len(m.visibleBands()), len(m.bands))))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(segments, "  "))
}

func (m Model) renderBody() string {
	styles := m.theme.Styles()
	if m.loading && len(m.shows) == 0 && len(m.bands) == 0 {
		return styles.MutedText.Render("Loading catalog...")
	}

	listWidth := m.width / 2
	detailWidth := m.width - listWidth - 2
	height := max(3, m.height-4)

	var list, detail string
	if m.view == ViewBands {
		bands := m.visibleBands()
		list = m.renderBandList(bands, listWidth, height)
		if len(bands) > 0 {
			detail = m.renderBandDetail(bands[m.selected])
		}
	} else {
		shows := m.visibleShows()
		list = m.renderShowList(shows, listWidth, height)
		if len(shows) > 0 {
			detail = m.renderShowDetail(shows[m.selected])
		}
	}
	if detail == "" {
		return list
	}
	pane := styles.Detail.Width(max(10, detailWidth-2)).Render(detail)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, pane)
}

func (m Model) renderShowList(shows []catalog.Show, width, height int) string {
	styles := m.theme.Styles()
	if len(shows) == 0 {
		return styles.MutedText.Width(width).Render("No shows match the current filters.")
	}
	start := scrollStart(m.selected, len(shows), height)
	var rows []string
	for i := start; i < len(shows) && i < start+height; i++ {
		s := shows[i]
		row := fmt.Sprintf("%-10s %s  %s", s.Date, truncate(s.Title, max(8, width-28)), formatPrice(s))
		if n := query.ReviewCount(s); n > 0 {
			row += fmt.Sprintf("  ★%s", query.FormatRating(query.AverageRating(s.Reviews)))
		}
		rows = append(rows, m.renderRow(row, i == m.selected, width))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderBandList(bands []catalog.Band, width, height int) string {
	styles := m.theme.Styles()
	if len(bands) == 0 {
		return styles.MutedText.Width(width).Render("No bands match the current filters.")
	}
	start := scrollStart(m.selected, len(bands), height)
	var rows []string
	for i := start; i < len(bands) && i < start+height; i++ {
		b := bands[i]
		row := fmt.Sprintf("%s %s  %s", catalog.GenreEmoji(b.Genre), truncate(b.Name, max(8, width-22)), b.Genre)
		if localstore.IsLocalID(b.ID) {
			row += "  (local)"
		}
		rows = append(rows, m.renderRow(row, i == m.selected, width))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderRow(text string, selected bool, width int) string {
	styles := m.theme.Styles()
	if selected {
		return styles.Selected.Width(width).Render(text)
	}
	return styles.Text.Width(width).Render(text)
}

func (m Model) renderShowDetail(s catalog.Show) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Render(s.Title))
	b.WriteString("\n")
	when := s.Date
	if s.Time != "" {
		when += " " + s.Time
	}
	b.WriteString(styles.MutedText.Render(when + "  " + formatPrice(s)))
	b.WriteString("\n")
	if s.Venue != nil {
		b.WriteString(fmt.Sprintf("%s, %s\n", s.Venue.Name, s.Venue.City))
	}
	if len(s.Bands) > 0 {
		names := make([]string, 0, len(s.Bands))
		for _, band := range s.Bands {
			names = append(names, catalog.GenreEmoji(band.Genre)+" "+band.Name)
		}
		b.WriteString(strings.Join(names, "  "))
		b.WriteString("\n")
	}
	if s.Description != "" {
		b.WriteString("\n" + s.Description + "\n")
	}

	b.WriteString("\n")
	avg := query.AverageRating(s.Reviews)
	b.WriteString(fmt.Sprintf("%s %s (%d reviews)\n", query.Stars(avg), query.FormatRating(avg), query.ReviewCount(s)))
	for _, r := range s.Reviews {
		line := fmt.Sprintf("%s %s: %s", query.Stars(float64(r.Rating)), r.AuthorName(), r.Comment)
		if localstore.IsLocalID(r.ID) {
			line += " " + styles.Pill("pending").Render("pending")
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderBandDetail(band catalog.Band) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Render(catalog.GenreEmoji(band.Genre) + " " + band.Name))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%s · formed %d", band.Genre, band.FormedYear)))
	if localstore.IsLocalID(band.ID) {
		b.WriteString(" " + styles.Pill("pending").Render("not yet synced"))
	}
	b.WriteString("\n")
	if band.Description != "" {
		b.WriteString("\n" + band.Description + "\n")
	}
	if len(band.Musicians) > 0 {
		b.WriteString("\n")
		for _, mu := range band.Musicians {
			b.WriteString(fmt.Sprintf("%s: %s\n", mu.Name, mu.Instrument))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	text := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.snapshot.State == monitor.Offline {
		text = styles.WarningText.Render("showing offline data where needed") + "  " + text
	}
	return styles.Footer.Width(m.width).Render(text)
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Render("setlist keys")
	body := m.help.FullHelpView(m.keys.FullHelp())
	hint := styles.FaintText.Render("press any key to close")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint)
}

func formatPrice(s catalog.Show) string {
	if s.TicketPrice == nil {
		return "free"
	}
	return fmt.Sprintf("$%.2f", *s.TicketPrice)
}

func scrollStart(selected, total, height int) int {
	if total <= height || selected < height/2 {
		return 0
	}
	return min(selected-height/2, total-height)
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 {
		return ""
	}
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
