package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/setlist/internal/catalog"
	"github.com/five82/setlist/internal/monitor"
	"github.com/five82/setlist/internal/prefs"
	"github.com/five82/setlist/internal/query"
	"github.com/five82/setlist/internal/seed"
)

type staticData struct{}

func (staticData) ListShows(context.Context) []catalog.Show { return seed.Default().Shows() }
func (staticData) ListBands(context.Context) []catalog.Band { return seed.Default().Bands() }

type staticStatus monitor.Snapshot

func (s staticStatus) Snapshot() monitor.Snapshot { return monitor.Snapshot(s) }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLoadedModel(t *testing.T) (Model, string) {
	t.Helper()
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{Data: staticData{}, Monitor: staticStatus{State: monitor.Offline}, PrefsPath: prefsPath})

	msg := fetchDataCmd(context.Background(), staticData{})()
	next, _ := m.Update(msg)
	next, _ = next.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return next.(Model), prefsPath
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func visibleTitles(m Model) []string {
	var out []string
	for _, s := range m.visibleShows() {
		out = append(out, s.Title)
	}
	return out
}

func TestModel_SearchFiltersAsYouType(t *testing.T) {
	m, _ := newLoadedModel(t)

	m = send(t, m, runes("/"))
	if !m.searching {
		t.Fatalf("searching = false after /")
	}
	m = send(t, m, runes("j"), runes("a"), runes("z"), runes("z"))
	if got := visibleTitles(m); len(got) != 1 || got[0] != "Jazz Under the Stars" {
		t.Fatalf("visible = %v, want [Jazz Under the Stars]", got)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.searching || m.showQuery.Term != "jazz" {
		t.Fatalf("after enter: searching=%v term=%q", m.searching, m.showQuery.Term)
	}

	m = send(t, m, runes("/"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.showQuery.Term != "" || len(visibleTitles(m)) != 3 {
		t.Fatalf("esc should clear the search, got term %q", m.showQuery.Term)
	}
}

func TestModel_CycleGenreAndVenue(t *testing.T) {
	m, _ := newLoadedModel(t)

	m = send(t, m, runes("g"))
	if m.showQuery.Genre != "Rock" {
		t.Fatalf("genre = %q, want Rock", m.showQuery.Genre)
	}
	m = send(t, m, runes("g"), runes("g"), runes("g"))
	if m.showQuery.Genre != "" {
		t.Fatalf("genre = %q, want cycle back to all", m.showQuery.Genre)
	}

	m = send(t, m, runes("v"), runes("v"))
	if m.showQuery.Venue != "Blue Note" {
		t.Fatalf("venue = %q, want Blue Note", m.showQuery.Venue)
	}
	if got := visibleTitles(m); len(got) != 1 || got[0] != "Jazz Under the Stars" {
		t.Fatalf("visible = %v", got)
	}

	m = send(t, m, runes("c"))
	if m.showQuery.Active() {
		t.Fatalf("query still active after clear: %#v", m.showQuery)
	}
}

func TestModel_SortIsSavedToPrefs(t *testing.T) {
	m, prefsPath := newLoadedModel(t)

	m = send(t, m, runes("s"))
	if m.showQuery.Sort != query.SortTitle {
		t.Fatalf("sort = %q, want title", m.showQuery.Sort)
	}
	got := visibleTitles(m)
	if got[0] != "Electronic Pulse" || got[2] != "Rock Legends Live" {
		t.Fatalf("title order = %v", got)
	}

	p, err := prefs.Load(prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Sort != "title" || p.Theme != "Nightfox" {
		t.Fatalf("prefs = %#v, want sort=title theme=Nightfox", p)
	}
}

func TestModel_NavigationClamps(t *testing.T) {
	m, _ := newLoadedModel(t)

	m = send(t, m, runes("k"))
	if m.selected != 0 {
		t.Fatalf("selected = %d, want 0", m.selected)
	}
	m = send(t, m, runes("j"), runes("j"), runes("j"), runes("j"))
	if m.selected != 2 {
		t.Fatalf("selected = %d, want 2", m.selected)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != ViewBands || m.selected != 0 {
		t.Fatalf("tab: view=%v selected=%d", m.view, m.selected)
	}
	m = send(t, m, runes("G"))
	if m.selected != 2 {
		t.Fatalf("selected = %d, want last band", m.selected)
	}
}

func TestModel_ViewShowsStatusAndEmptyState(t *testing.T) {
	m, _ := newLoadedModel(t)
	m = send(t, m, snapshotMsg(monitor.Snapshot{State: monitor.Offline}))

	out := m.View()
	if !strings.Contains(out, "Backend Offline") {
		t.Fatalf("view missing offline pill:\n%s", out)
	}
	if !strings.Contains(out, "Rock Legends Live") {
		t.Fatalf("view missing show list:\n%s", out)
	}

	if !strings.Contains(out, "Showing 3 of 3 shows") {
		t.Fatalf("view missing count:\n%s", out)
	}

	m.showQuery.Term = "polka"
	out = m.View()
	if !strings.Contains(out, "No shows match the current filters.") {
		t.Fatalf("view missing empty state:\n%s", out)
	}
	if !strings.Contains(out, "Showing 0 of 3 shows") {
		t.Fatalf("view missing filtered count:\n%s", out)
	}
}

func TestModel_QuitKey(t *testing.T) {
	m, _ := newLoadedModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("q returned nil cmd, want tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q cmd did not produce QuitMsg")
	}
}

func TestCycle(t *testing.T) {
	opts := []string{"a", "b"}
	if got := cycle(opts, ""); got != "a" {
		t.Fatalf("cycle(\"\") = %q", got)
	}
	if got := cycle(opts, "a"); got != "b" {
		t.Fatalf("cycle(a) = %q", got)
	}
	if got := cycle(opts, "b"); got != "" {
		t.Fatalf("cycle(b) = %q", got)
	}
	if got := cycle(nil, ""); got != "" {
		t.Fatalf("cycle(nil) = %q", got)
	}
	if got := cycle(opts, "gone"); got != "" {
		t.Fatalf("cycle(gone) = %q", got)
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 || names[0] != "Nightfox" || names[1] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Slate]", names)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Jazz Under the Stars", 10); got != "Jazz Un..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("Écho", 10); got != "Écho" {
		t.Fatalf("truncate short = %q", got)
	}
}
