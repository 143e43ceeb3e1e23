package ui

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/setlist/internal/catalog"
	"github.com/five82/setlist/internal/monitor"
	"github.com/five82/setlist/internal/prefs"
	"github.com/five82/setlist/internal/query"
)

// DataSource supplies the collections shown in the browser.
// *fallback.Client implements it.
type DataSource interface {
	ListShows(ctx context.Context) []catalog.Show
	ListBands(ctx context.Context) []catalog.Band
}

// StatusSource supplies the availability indicator. *monitor.Monitor
// implements it.
type StatusSource interface {
	Snapshot() monitor.Snapshot
}

// View represents the current active list.
type View int

const (
	ViewShows View = iota
	ViewBands
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Data      DataSource
	Monitor   StatusSource
	Logger    *zap.Logger
	ThemeName string
	Sort      query.SortKey
	PrefsPath string
	// Tick is how often the status indicator is re-read.
	Tick time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	data      DataSource
	status    StatusSource
	log       *zap.Logger
	prefsPath string
	tick      time.Duration

	keys      keyMap
	help      help.Model
	search    textinput.Model
	searching bool
	showHelp  bool

	theme  Theme
	view   View
	width  int
	height int
	ready  bool

	shows    []catalog.Show
	bands    []catalog.Band
	loading  bool
	loadedAt time.Time
	snapshot monitor.Snapshot

	showQuery query.ShowQuery
	bandQuery query.BandQuery
	selected  int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = time.Second
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	sortKey := opts.Sort
	if sortKey == "" {
		sortKey = query.SortDate
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "title or description"
	search.CharLimit = 80

	return Model{
		ctx:       ctx,
		data:      opts.Data,
		status:    opts.Monitor,
		log:       log,
		prefsPath: prefsPath,
		tick:      tick,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		search:    search,
		theme:     GetTheme(themeName),
		loading:   true,
		showQuery: query.ShowQuery{Sort: sortKey},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.tick),
		fetchDataCmd(m.ctx, m.data),
	}
	if m.status != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.status))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.status != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.status))
		}
		cmds = append(cmds, tickCmd(m.tick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = monitor.Snapshot(msg)
		return m, nil

	case dataMsg:
		m.shows = msg.shows
		m.bands = msg.bands
		m.loading = false
		m.loadedAt = msg.at
		m.clampSelection()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input outside the search box.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()

	case key.Matches(msg, m.keys.Tab):
		if m.view == ViewShows {
			m.view = ViewBands
		} else {
			m.view = ViewShows
		}
		m.selected = 0

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.term())
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.CycleGenre):
		if m.view == ViewShows {
			m.showQuery.Genre = cycle(query.Genres(m.shows), m.showQuery.Genre)
		} else {
			m.bandQuery.Genre = cycle(query.BandGenres(m.bands), m.bandQuery.Genre)
		}
		m.selected = 0

	case key.Matches(msg, m.keys.CycleVenue):
		if m.view == ViewShows {
			m.showQuery.Venue = cycle(query.VenueNames(m.shows), m.showQuery.Venue)
			m.selected = 0
		}

	case key.Matches(msg, m.keys.CycleSort):
		if m.view == ViewShows {
			m.showQuery.Sort = m.showQuery.Sort.Next()
			m.savePrefs()
		}

	case key.Matches(msg, m.keys.ClearFilter):
		m.showQuery = query.ShowQuery{Sort: query.SortDate}
		m.bandQuery = query.BandQuery{}
		m.selected = 0
		m.savePrefs()

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, fetchDataCmd(m.ctx, m.data)

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < m.visibleCount()-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(0, m.visibleCount()-1)
	}

	return m, nil
}

// handleSearchKey feeds the search box; the filter follows every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		m.setTerm("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setTerm(m.search.Value())
	return m, cmd
}

func (m Model) term() string {
	if m.view == ViewBands {
		return m.bandQuery.Term
	}
	return m.showQuery.Term
}

func (m *Model) setTerm(term string) {
	if m.view == ViewBands {
		m.bandQuery.Term = term
	} else {
		m.showQuery.Term = term
	}
	m.clampSelection()
}

func (m Model) visibleShows() []catalog.Show {
	return query.FilterShows(m.shows, m.showQuery)
}

func (m Model) visibleBands() []catalog.Band {
	return query.FilterBands(m.bands, m.bandQuery)
}

func (m Model) visibleCount() int {
	if m.view == ViewBands {
		return len(m.visibleBands())
	}
	return len(m.visibleShows())
}

func (m *Model) clampSelection() {
	n := m.visibleCount()
	if m.selected >= n {
		m.selected = max(0, n-1)
	}
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, Sort: string(m.showQuery.Sort)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn("save preferences failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

// cycle steps through "" (no filter) followed by each option in order.
func cycle(options []string, current string) string {
	if current == "" {
		if len(options) == 0 {
			return ""
		}
		return options[0]
	}
	i := slices.Index(options, current)
	if i < 0 || i == len(options)-1 {
		return ""
	}
	return options[i+1]
}

// Messages

type tickMsg time.Time

type snapshotMsg monitor.Snapshot

type dataMsg struct {
	shows []catalog.Show
	bands []catalog.Band
	at    time.Time
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(status StatusSource) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(status.Snapshot())
	}
}

func fetchDataCmd(ctx context.Context, data DataSource) tea.Cmd {
	return func() tea.Msg {
		if data == nil {
			return dataMsg{at: time.Now()}
		}
		return dataMsg{
			shows: data.ListShows(ctx),
			bands: data.ListBands(ctx),
			at:    time.Now(),
		}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	opts.Context = ctx
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
