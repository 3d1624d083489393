// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Drives the scan, validate, actions, and history workflow screens
package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/cardscan/models"
	"github.com/harperreed/cardscan/pipeline"
	"github.com/harperreed/cardscan/state"
)

// ViewMode is a TUI-local overlay on top of the workflow step. Most of the
// time the view follows the dispatcher's Step; settings and the file
// prompt are purely presentational.
type ViewMode int

const (
	ViewWorkflow ViewMode = iota
	ViewFilePrompt
	ViewSettings
)

// tickMsg re-reads dispatcher state so changes made by pipeline goroutines
// become visible between key presses.
type tickMsg time.Time

// pipelineDoneMsg signals that a blocking pipeline call returned.
type pipelineDoneMsg struct{}

// messageMsg carries a generated outreach message into the actions view.
type messageMsg struct {
	message pipeline.Message
}

// noticeMsg surfaces a user-visible notice at the bottom of the screen.
type noticeMsg struct {
	text string
}

// NoticeBuffer collects notices raised from pipeline goroutines.
type NoticeBuffer struct {
	mu      sync.Mutex
	pending []string
}

func (b *NoticeBuffer) push(text string) {
	b.mu.Lock()
	b.pending = append(b.pending, text)
	b.mu.Unlock()
}

func (b *NoticeBuffer) pop() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) == 0 {
		return "", false
	}
	text := b.pending[0]
	b.pending = b.pending[1:]
	return text, true
}

// Model is the main bubbletea model.
type Model struct {
	dispatcher *state.Dispatcher
	orch       *pipeline.Orchestrator
	images     pipeline.ImageProcessor
	extractor  pipeline.Extractor
	notices    *NoticeBuffer

	viewMode ViewMode
	lastStep models.AppStep

	// Scan menu state
	menuIndex int

	// File prompt state
	pathInput textinput.Model

	// Validate form state
	formInputs []textinput.Model
	focusIndex int

	// Actions view state
	actionIndex      int
	selectedCategory string
	selectedTemplate string
	selectedSig      string
	contextInput     textinput.Model
	editingContext   bool
	generated        *pipeline.Message
	generating       bool

	// History view state
	historyRow int

	// Settings view state
	settingsTab     int
	settingsRow     int
	settingsInput   textinput.Model
	settingsAdd     bool
	settingsConfirm string
	sigEditID       string
	sigEditInputs   []textinput.Model
	sigEditFocus    int

	spin   spinner.Model
	notice string
	width  int
	height int
}

// NewModel creates the TUI model. The notices buffer must be the same one
// wired into the orchestrator's Notifier.
func NewModel(d *state.Dispatcher, orch *pipeline.Orchestrator, images pipeline.ImageProcessor, extractor pipeline.Extractor, notices *NoticeBuffer) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	path := textinput.New()
	path.Placeholder = "Path to card image (jpg/png)"
	path.CharLimit = 500

	add := textinput.New()
	add.CharLimit = 100

	genContext := textinput.New()
	genContext.Placeholder = "Where you met, what you discussed..."
	genContext.CharLimit = 500

	return Model{
		dispatcher:    d,
		orch:          orch,
		images:        images,
		extractor:     extractor,
		notices:       notices,
		viewMode:      ViewWorkflow,
		lastStep:      models.StepScan,
		pathInput:     path,
		settingsInput: add,
		contextInput:  genContext,
		spin:          sp,
		width:         80,
		height:        24,
	}
}

// NewNoticeBuffer returns the buffer to share between the TUI and the
// orchestrator's Notifier.
func NewNoticeBuffer() *NoticeBuffer {
	return &NoticeBuffer{}
}

// Notifier adapts the buffer to the orchestrator's callback type.
func (b *NoticeBuffer) Notifier() pipeline.Notifier {
	return func(message string) { b.push(message) }
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if text, ok := m.notices.pop(); ok {
			m.notice = text
		}
		m = m.syncWithStep()
		return m, tick()

	case pipelineDoneMsg:
		m = m.syncWithStep()
		return m, nil

	case messageMsg:
		m.generating = false
		m.generated = &msg.message
		return m, nil

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// syncWithStep reinitializes view-local selections when the workflow step
// changes underneath the TUI.
func (m Model) syncWithStep() Model {
	step := m.dispatcher.State().Step
	if step == m.lastStep {
		return m
	}
	m.lastStep = step

	switch step {
	case models.StepValidate:
		m.initForm()
	case models.StepActions:
		m.initActions()
	case models.StepHistory:
		m.historyRow = 0
	case models.StepScan:
		m.menuIndex = 0
	}
	return m
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewFilePrompt:
		return m.renderFilePrompt()
	case ViewSettings:
		return m.renderSettingsView()
	}

	switch m.dispatcher.State().Step {
	case models.StepScan:
		return m.renderScanView()
	case models.StepQRScan:
		return m.renderQRView()
	case models.StepProcessing:
		return m.renderProcessingView()
	case models.StepValidate:
		return m.renderValidateView()
	case models.StepActions:
		return m.renderActionsView()
	case models.StepHistory:
		return m.renderHistoryView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.orch.Shutdown()
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewFilePrompt:
		return m.handleFilePromptKeys(msg)
	case ViewSettings:
		return m.handleSettingsKeys(msg)
	}

	switch m.dispatcher.State().Step {
	case models.StepScan:
		return m.handleScanKeys(msg)
	case models.StepQRScan:
		return m.handleQRKeys(msg)
	case models.StepProcessing:
		return m.handleProcessingKeys(msg)
	case models.StepValidate:
		return m.handleValidateKeys(msg)
	case models.StepActions:
		return m.handleActionsKeys(msg)
	case models.StepHistory:
		return m.handleHistoryKeys(msg)
	}
	return m, nil
}

// Styles. Two palettes keyed off the persisted theme preference.
type palette struct {
	title    lipgloss.Style
	selected lipgloss.Style
	dim      lipgloss.Style
	help     lipgloss.Style
	notice   lipgloss.Style
	status   lipgloss.Style
}

var darkPalette = palette{
	title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170")).MarginBottom(1),
	selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170")),
	dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	help:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).MarginTop(1),
	status:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
}

var lightPalette = palette{
	title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("91")).MarginBottom(1),
	selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("91")),
	dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	help:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1),
	notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")).MarginTop(1),
	status:   lipgloss.NewStyle().Foreground(lipgloss.Color("26")),
}

func (m Model) styles() palette {
	if m.dispatcher.State().IsDarkMode {
		return darkPalette
	}
	return lightPalette
}

func (m Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	return "\n" + m.styles().notice.Render("! "+m.notice)
}

// Run starts the TUI event loop.
func Run(d *state.Dispatcher, orch *pipeline.Orchestrator, images pipeline.ImageProcessor, extractor pipeline.Extractor, notices *NoticeBuffer) error {
	p := tea.NewProgram(NewModel(d, orch, images, extractor, notices), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
