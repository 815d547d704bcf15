// Package app is the interactive TUI for the mood garden. The program is
// split across files:
//   - model.go: types, construction, Init (this file)
//   - update.go: the Update loop and message routing
//   - commands.go: tea.Cmd constructors for timers and service calls
//   - guide.go: the step-wise mood submission flow
//   - chat.go: the companion chat flow
//   - view.go: rendering
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"moodgarden/cmd/garden/ui"
	"moodgarden/internal/config"
	"moodgarden/internal/empathy"
	"moodgarden/internal/garden"
	"moodgarden/internal/history"
	"moodgarden/internal/logging"
	"moodgarden/internal/registry"
)

// ViewMode determines which surface is focused.
type ViewMode int

const (
	GardenView ViewMode = iota
	GuideView
	ChatView
	StatsView
)

// StatsScope selects the dataset behind the stats overlay.
type StatsScope int

const (
	ScopeCollective StatsScope = iota
	ScopePersonal
)

const (
	pulseFrame  = 100 * time.Millisecond
	headerRows  = 2
	footerRows  = 1
	cardColumns = 44
)

// Model is the root bubbletea model.
type Model struct {
	styles   ui.Styles
	renderer *glamour.TermRenderer

	cfg config.Config

	reg     *registry.Registry
	eng     *garden.Engine
	svc     *empathy.Service
	store   *history.Store
	moodLog *history.MoodLog
	chatLog *history.ChatLog

	viewMode ViewMode

	width, height int
	ready         bool

	// Pulse clock, advanced every frame.
	elapsed time.Duration

	// Collective caption, overwritten only by the freshest summarize call.
	summary    string
	summaryGen *empathy.Generation

	guide guideState
	chat  chatState

	statsScope  StatsScope
	showHistory bool

	// Detail card state for the selected blossom.
	commenting   bool
	commentInput textinput.Model

	confirmClear bool
}

// New wires the model from its already-constructed dependencies.
func New(cfg config.Config, reg *registry.Registry, svc *empathy.Service, store *history.Store) Model {
	theme := ui.ThemeFor(cfg.Theme)
	styles := ui.NewStyles(theme)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(cardColumns - 4),
	)
	if err != nil {
		renderer = nil
	}

	ci := textinput.New()
	ci.Placeholder = "留下一句温柔的话…"
	ci.CharLimit = 120

	m := Model{
		styles:       styles,
		renderer:     renderer,
		cfg:          cfg,
		reg:          reg,
		eng:          garden.NewEngine(80, 24),
		svc:          svc,
		store:        store,
		moodLog:      history.LoadMoodLog(store),
		chatLog:      history.LoadChatLog(store),
		summary:      empathy.PlaceholderEmpty,
		summaryGen:   &empathy.Generation{},
		guide:        newGuideState(defaultName(store, cfg)),
		chat:         newChatState(),
		commentInput: ci,
	}
	m.eng.SetMoods(reg.Entries())
	eng := m.eng
	reg.SetOnChange(func() { eng.SetMoods(reg.Entries()) })
	return m
}

// Init seeds the garden and starts the recurring timers.
func (m Model) Init() tea.Cmd {
	logging.Boot("garden TUI starting, %d seeded moods", m.reg.Len())
	cmds := []tea.Cmd{
		pulseTick(),
		summarizeCmd(m.svc, m.reg.Labels(), m.summaryGen.Next()),
	}
	if m.cfg.SyntheticMoods {
		cmds = append(cmds, syntheticTick(m.syntheticInterval()))
	}
	return tea.Batch(cmds...)
}

func (m Model) syntheticInterval() time.Duration {
	secs := m.cfg.SyntheticIntervalSeconds
	if secs < 5 {
		secs = 45
	}
	return time.Duration(secs) * time.Second
}

// ToggleHistory flips the personal history panel, the command surface the
// garden view exposes to outer shells.
func (m *Model) ToggleHistory() {
	m.showHistory = !m.showHistory
}

// StartChatWithContext opens the chat panel with a prefilled draft.
func (m *Model) StartChatWithContext(text string) {
	m.viewMode = ChatView
	m.chat.input.SetValue(text)
	m.chat.input.Focus()
	m.refreshChatViewport()
}

// defaultName is the wizard's prefilled display name: the last-used one from
// the store, else the configured default.
func defaultName(store *history.Store, cfg config.Config) string {
	if name := store.DisplayName(); name != "" {
		return name
	}
	return cfg.DisplayName
}

func (m *Model) canvasSize() (w, h int) {
	w = m.width
	if m.eng.SelectedID() != 0 || m.showHistory {
		w -= cardColumns
	}
	h = m.height - headerRows - footerRows
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	return w, h
}
