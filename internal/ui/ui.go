package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/quaver/internal/library"
	"github.com/desertthunder/quaver/internal/player"
	"github.com/desertthunder/quaver/internal/search"
	"github.com/desertthunder/quaver/internal/shared"
	"github.com/desertthunder/quaver/internal/tasks"
)

const (
	tickInterval = 100 * time.Millisecond
	sidebarWidth = 34
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	logger *log.Logger

	queue     *player.Queue
	transport player.Transport
	engine    *search.Engine

	scanEngine *tasks.ScanEngine
	root       string
	watcher    *library.Watcher

	trackList   list.Model
	searchInput textinput.Model
	searching   bool
	lastResults []library.Track

	width  int
	height int
	status string
	err    error

	help   help.Model
	keys   keyMap
	styles *Palette
}

// ModelOpts contains the dependencies for creating a [Model].
type ModelOpts struct {
	Ctx        context.Context
	Queue      *player.Queue
	Transport  player.Transport
	Engine     *search.Engine
	ScanEngine *tasks.ScanEngine
	Root       string
	Watcher    *library.Watcher // may be nil
	Tracks     []library.Track
	Theme      shared.ThemeConfig
	Logger     *log.Logger
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(opts ModelOpts) *Model {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	opts.Engine.SetItems(opts.Tracks)

	input := textinput.New()
	input.Placeholder = "type to search title, artist or album"
	input.Prompt = "/ "

	l := list.New(trackItems(opts.Tracks), list.NewDefaultDelegate(), 0, 0)
	l.Title = "Library"
	l.SetFilteringEnabled(false) // matching is the search engine's job
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)

	return &Model{
		ctx:         opts.Ctx,
		logger:      opts.Logger,
		queue:       opts.Queue,
		transport:   opts.Transport,
		engine:      opts.Engine,
		scanEngine:  opts.ScanEngine,
		root:        opts.Root,
		watcher:     opts.Watcher,
		trackList:   l,
		searchInput: input,
		lastResults: opts.Tracks,
		help:        help.New(),
		keys:        newKeyMap(),
		styles:      NewPalette(opts.Theme),
	}
}

// Init starts the tick loop and the transport completion pump.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick(), m.waitForTrackEnd()}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForLibraryChange())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		return m.handleBrowseKeys(msg)

	case tickMsg:
		m.engine.Poll()
		m.refreshResults()
		return m, m.tick()

	case trackFinishedMsg:
		m.queue.OnTrackComplete()
		return m, m.waitForTrackEnd()

	case libraryChangedMsg:
		m.status = "Library changed, rescanning..."
		return m, tea.Batch(m.rescan(), m.waitForLibraryChange())

	case rescanDoneMsg:
		if msg.err != nil {
			m.logger.Error("library rescan failed", "error", msg.err)
			m.status = fmt.Sprintf("Rescan failed: %v", msg.err)
			return m, nil
		}
		m.engine.SetItems(msg.result.Tracks)
		m.refreshResults()
		m.status = fmt.Sprintf("Library rescanned: %d tracks", msg.result.TrackCount)
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

// View renders the search box, the ranked library list, the queue sidebar
// and the status bar.
func (m *Model) View() string {
	if m.err != nil {
		return m.styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	left := lipgloss.JoinVertical(lipgloss.Left, m.searchInput.View(), m.trackList.View())
	right := m.styles.panel.Render(m.renderQueue())
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return fmt.Sprintf("%s\n%s\n%s", main, m.renderStatus(), m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enqueue):
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.engine.SetQuery(m.searchInput.Value())
	return m, cmd
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.transport.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.enqueue):
		if track, ok := m.selectedTrack(); ok {
			m.queue.Enqueue(track)
			m.status = fmt.Sprintf("Queued: %s", track.DisplayTitle())
		}
		return m, nil

	case key.Matches(msg, m.keys.queueNext):
		if track, ok := m.selectedTrack(); ok {
			m.queue.EnqueueNext(track)
			m.status = fmt.Sprintf("Playing next: %s", track.DisplayTitle())
		}
		return m, nil

	case key.Matches(msg, m.keys.next):
		m.queue.Skip()
		return m, nil

	case key.Matches(msg, m.keys.previous):
		m.queue.Previous()
		return m, nil

	case key.Matches(msg, m.keys.remove):
		snap := m.queue.Snapshot()
		if snap.Cursor < len(snap.Tracks) {
			if err := m.queue.Remove(snap.Cursor); err != nil {
				m.logger.Warn("failed to remove playing track", "error", err)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.repeat):
		mode := m.queue.RepeatMode().Cycle()
		m.queue.SetRepeatMode(mode)
		m.status = fmt.Sprintf("Repeat: %s", mode)
		return m, nil

	case key.Matches(msg, m.keys.pause):
		if m.queue.TogglePause() {
			m.status = "Paused"
		} else {
			m.status = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) selectedTrack() (library.Track, bool) {
	selected := m.trackList.SelectedItem()
	if selected == nil {
		return library.Track{}, false
	}
	item, ok := selected.(trackItem)
	if !ok {
		return library.Track{}, false
	}
	return item.track, true
}

// refreshResults swaps the visible list items when the engine has published
// a new snapshot.
func (m *Model) refreshResults() {
	results := m.engine.Results()
	if tracksEqual(results, m.lastResults) {
		return
	}
	m.lastResults = results
	m.trackList.SetItems(trackItems(results))
}

func tracksEqual(a, b []library.Track) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Path != b[i].Path {
			return false
		}
	}
	return true
}

func (m *Model) resize() {
	listWidth := m.width - sidebarWidth - 6
	if listWidth < 20 {
		listWidth = 20
	}
	listHeight := m.height - 6
	if listHeight < 5 {
		listHeight = 5
	}
	m.trackList.SetSize(listWidth, listHeight)
	m.searchInput.Width = listWidth - 4
}

func (m *Model) renderQueue() string {
	snap := m.queue.Snapshot()

	var b strings.Builder
	b.WriteString(m.styles.title.Render("Queue"))
	b.WriteString("\n")

	if len(snap.Tracks) == 0 {
		b.WriteString(m.styles.help.Render("empty: press enter to queue a track"))
		return b.String()
	}

	for i, track := range snap.Tracks {
		line := fmt.Sprintf("%2d %s %s", i+1, track.DisplayTitle(), track.DisplayDuration())
		switch {
		case i == snap.Cursor:
			line = m.styles.nowPlaying.Render("▶ " + line)
		case i > snap.Cursor && i <= snap.Cursor+snap.InsertionOffset:
			line = m.styles.queuedNext.Render("  " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	var parts []string

	if now, ok := m.queue.NowPlaying(); ok {
		pos := m.transport.Position().Round(time.Second)
		dur := m.transport.Duration().Round(time.Second)
		parts = append(parts, fmt.Sprintf("%s — %s [%s/%s]",
			now.DisplayArtist(), now.DisplayTitle(), formatClock(pos), formatClock(dur)))
	} else {
		parts = append(parts, "Nothing playing")
	}

	parts = append(parts, fmt.Sprintf("repeat: %s", m.queue.RepeatMode()))
	if !m.engine.Exhausted() {
		parts = append(parts, "searching...")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}

	return m.styles.status.Render(strings.Join(parts, "  •  "))
}

func formatClock(d time.Duration) string {
	return shared.FormatDuration(int(d / time.Second))
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForTrackEnd blocks on the transport's completion channel and re-arms
// after every message, so each finished source advances the queue exactly
// once and always from the update loop.
func (m *Model) waitForTrackEnd() tea.Cmd {
	return func() tea.Msg {
		<-m.transport.Done()
		return trackFinishedMsg{}
	}
}

func (m *Model) waitForLibraryChange() tea.Cmd {
	return func() tea.Msg {
		<-m.watcher.Changes()
		return libraryChangedMsg{}
	}
}

func (m *Model) rescan() tea.Cmd {
	return func() tea.Msg {
		result, err := m.scanEngine.Run(m.ctx, m.root, nil)
		return rescanDoneMsg{result: result, err: err}
	}
}
