// Package ui implements the movie-explorer terminal interface.
package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/movie-explorer/internal/omdb"
	"github.com/runger/movie-explorer/internal/present"
	"github.com/runger/movie-explorer/internal/search"
)

// screen is a route of the app.
type screen int

const (
	screenSearch  screen = iota // Search form and result list
	screenDetails               // One title by id
)

// focusArea is the part of the search screen receiving keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// DetailsProvider loads one title for the details screen.
type DetailsProvider interface {
	Title(ctx context.Context, id string) (*omdb.TitleResponse, error)
}

// stateChangedMsg carries a controller snapshot taken after a change signal.
type stateChangedMsg struct {
	state search.State
}

// controllerClosedMsg is sent once the controller's change channel closes.
type controllerClosedMsg struct{}

// detailsDoneMsg is sent when an async DetailsProvider.Title completes.
type detailsDoneMsg struct {
	requestID uint64
	title     *omdb.TitleResponse
	err       error
}

// initMsg is sent by Init so the initial query is committed through Update.
type initMsg struct{}

// Details error messages.
const (
	detailsUnavailable = "Details are unavailable."
	detailsFailed      = "Failed to load movie details. Please try again."
)

// Options configures a Model.
type Options struct {
	Theme        *Theme       // Defaults to NewTheme(DefaultAccent)
	InitialQuery string       // Committed on start when non-empty
	Logger       *slog.Logger // Defaults to a discarding logger
}

// Model is the Bubble Tea model for the movie search app.
type Model struct {
	ctrl    *search.Controller
	details DetailsProvider
	theme   Theme
	log     *slog.Logger

	screen screen
	focus  focusArea

	input    textinput.Model
	spinner  spinner.Model
	spinning bool // A spinner tick chain is running

	state     search.State
	rows      []present.Row
	selection int // Index into rows; -1 when empty

	initialQuery string

	// Details screen.
	requestID     uint64             // Monotonic counter for stale detection
	cancelDetails context.CancelFunc // Cancels the in-flight Title call
	detailRow     present.Row
	detail        *omdb.TitleResponse
	detailErr     string
	detailLoading bool

	width  int
	height int
}

// NewModel creates the app model. The model closes ctrl when the user quits.
func NewModel(ctrl *search.Controller, details DetailsProvider, opts Options) Model {
	theme := NewTheme(DefaultAccent)
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ti := textinput.New()
	ti.Placeholder = "Movie Title"
	ti.Prompt = "> "
	ti.PromptStyle = theme.Selected
	ti.CharLimit = 256
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Spinner

	return Model{
		ctrl:         ctrl,
		details:      details,
		theme:        theme,
		log:          logger.With("component", "ui"),
		input:        ti,
		spinner:      s,
		selection:    -1,
		initialQuery: opts.InitialQuery,
		state:        ctrl.State(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return initMsg{} },
		listen(m.ctrl),
		textinput.Blink,
	)
}

// listen waits for the next controller change signal and emits a snapshot.
// The receiving Update re-arms it.
func listen(ctrl *search.Controller) tea.Cmd {
	ch := ctrl.Changes()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return controllerClosedMsg{}
		}
		return stateChangedMsg{state: ctrl.State()}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width - 4; w > 0 {
			m.input.Width = w
		}
		return m, nil

	case initMsg:
		if m.initialQuery == "" {
			return m, nil
		}
		m.input.SetValue(m.initialQuery)
		cmd := m.commit()
		return m, cmd

	case stateChangedMsg:
		cmd := m.applyState(msg.state)
		return m, tea.Batch(cmd, listen(m.ctrl))

	case controllerClosedMsg:
		return m, nil

	case detailsDoneMsg:
		return m.handleDetailsDone(msg), nil

	case spinner.TickMsg:
		if !m.state.IsLoading && !m.detailLoading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.screen == screenSearch && m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input for the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit("interrupt")
	}
	if m.screen == screenDetails {
		return m.handleDetailsKey(msg)
	}

	switch msg.Type {
	case tea.KeyEsc:
		cmd := m.quitCmd("user quit")
		return m, cmd

	case tea.KeyCtrlR:
		m.ctrl.Refetch()
		cmd := m.applyState(m.ctrl.State())
		return m, cmd

	case tea.KeyTab, tea.KeyShiftTab:
		cmd := m.toggleFocus()
		return m, cmd

	case tea.KeyUp:
		m.moveSelection(-1)
		return m, nil

	case tea.KeyDown:
		m.moveSelection(1)
		return m, nil

	case tea.KeyEnter:
		if m.focus == focusList {
			return m.openDetails()
		}
		cmd := m.commit()
		return m, cmd
	}

	if m.focus == focusList {
		switch msg.String() {
		case "k":
			m.moveSelection(-1)
		case "j":
			m.moveSelection(1)
		case "/":
			cmd := m.focusInput()
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleDetailsKey processes keys on the details screen.
func (m Model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyBackspace:
		m.back()
		return m, nil
	case tea.KeyCtrlR:
		cmd := m.fetchDetails()
		return m, cmd
	}
	if msg.String() == "q" {
		m.back()
	}
	return m, nil
}

// commit sends the trimmed input text to the controller.
func (m *Model) commit() tea.Cmd {
	phrase := search.Normalize(m.input.Value())
	m.log.Debug("phrase committed", "phrase", phrase)
	m.ctrl.Observe(phrase)
	return m.applyState(m.ctrl.State())
}

// applyState adopts a controller snapshot unless it is older than the one
// already shown. It returns a spinner tick when loading starts.
func (m *Model) applyState(s search.State) tea.Cmd {
	if s.Version <= m.state.Version {
		return nil
	}
	m.state = s
	m.rows = present.NewRows(s.Results)
	m.clampSelection()
	if len(m.rows) == 0 && m.focus == focusList {
		m.focusInput()
	}
	return m.startSpinner()
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || (!m.state.IsLoading && !m.detailLoading) {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusList {
		return m.focusInput()
	}
	if len(m.rows) == 0 {
		return nil
	}
	m.focus = focusList
	m.input.Blur()
	if m.selection < 0 {
		m.selection = 0
	}
	return nil
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) moveSelection(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.selection += delta
	m.clampSelection()
}

// clampSelection ensures the selection index is within bounds.
func (m *Model) clampSelection() {
	if len(m.rows) == 0 {
		m.selection = -1
		return
	}
	if m.selection < 0 {
		m.selection = 0
	}
	if m.selection >= len(m.rows) {
		m.selection = len(m.rows) - 1
	}
}

// openDetails routes to the details screen for the selected row.
func (m Model) openDetails() (tea.Model, tea.Cmd) {
	if m.selection < 0 || m.selection >= len(m.rows) {
		return m, nil
	}
	m.screen = screenDetails
	m.detailRow = m.rows[m.selection]
	m.log.Debug("details opened", "id", m.detailRow.Key)
	cmd := m.fetchDetails()
	return m, cmd
}

// fetchDetails cancels any in-flight details call, increments requestID and
// returns a tea.Cmd that calls the provider.
func (m *Model) fetchDetails() tea.Cmd {
	m.cancelInflight()
	m.requestID++
	m.detail = nil
	m.detailErr = ""

	if m.details == nil || m.detailRow.Key == "" {
		m.detailErr = detailsUnavailable
		m.detailLoading = false
		return nil
	}

	reqID := m.requestID
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelDetails = cancel
	m.detailLoading = true

	p := m.details
	id := m.detailRow.Key
	fetch := func() tea.Msg {
		title, err := p.Title(ctx, id)
		return detailsDoneMsg{requestID: reqID, title: title, err: err}
	}
	return tea.Batch(fetch, m.startSpinner())
}

// handleDetailsDone processes the result of an async details call.
func (m Model) handleDetailsDone(msg detailsDoneMsg) Model {
	if msg.requestID != m.requestID || m.screen != screenDetails {
		return m
	}
	m.cancelInflight()
	m.detailLoading = false

	switch {
	case msg.err != nil:
		m.log.Warn("details failed", "id", m.detailRow.Key, "error", msg.err)
		m.detailErr = detailsFailed
	case msg.title == nil:
		m.detailErr = detailsUnavailable
	case !msg.title.Found():
		m.detailErr = msg.title.Error
		if m.detailErr == "" {
			m.detailErr = search.DefaultNotFoundMessage
		}
	default:
		m.detail = msg.title
	}
	return m
}

// back returns from details to the search screen.
func (m *Model) back() {
	m.cancelInflight()
	m.requestID++
	m.screen = screenSearch
	m.detail = nil
	m.detailErr = ""
	m.detailLoading = false
}

// cancelInflight cancels any in-progress details call.
func (m *Model) cancelInflight() {
	if m.cancelDetails != nil {
		m.cancelDetails()
		m.cancelDetails = nil
	}
}

func (m Model) quit(reason string) (tea.Model, tea.Cmd) {
	cmd := m.quitCmd(reason)
	return m, cmd
}

// quitCmd stops all work and returns tea.Quit.
func (m *Model) quitCmd(reason string) tea.Cmd {
	m.log.Debug("quitting", "reason", reason)
	m.cancelInflight()
	m.ctrl.Close()
	return tea.Quit
}
