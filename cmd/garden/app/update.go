package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"moodgarden/internal/logging"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			logging.Boot("garden TUI quitting")
			return m, tea.Quit
		}
		switch m.viewMode {
		case GuideView:
			return m.updateGuide(msg)
		case ChatView:
			return m.updateChat(msg)
		case StatsView:
			return m.updateStats(msg)
		default:
			return m.updateGarden(msg)
		}

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tickMsg:
		m.elapsed += pulseFrame
		m.eng.Oscillator().Step()
		return m, pulseTick()

	case syntheticMsg:
		if !m.cfg.SyntheticMoods {
			return m, nil
		}
		entry := m.reg.InjectSynthetic()
		logging.Registry("synthetic mood drifted in: %s", entry.DisplayName)
		return m, tea.Batch(
			summarizeCmd(m.svc, m.reg.Labels(), m.summaryGen.Next()),
			syntheticTick(m.syntheticInterval()),
		)

	case whisperMsg:
		m.guide.whisper = msg.text
		m.guide.waiting = false
		return m, nil

	case chatReplyMsg:
		m.handleChatReply(msg)
		return m, nil

	case summaryMsg:
		if m.summaryGen.Accept(msg.gen) {
			m.summary = msg.text
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	if msg.Width < 1 || msg.Height < 1 {
		return m
	}
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	w, h := m.canvasSize()
	m.eng.Resize(w, h)

	m.chat.vp.Width = msg.Width - 8
	m.chat.vp.Height = msg.Height - headerRows - footerRows - 4
	if m.chat.vp.Height < 3 {
		m.chat.vp.Height = 3
	}
	m.chat.ready = true
	m.refreshChatViewport()
	return m
}

// updateGarden handles keys on the main garden surface.
func (m Model) updateGarden(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.commenting {
		return m.updateComment(msg)
	}

	switch msg.String() {
	case "q":
		logging.Boot("garden TUI quitting")
		return m, tea.Quit
	case "g", "enter":
		m.viewMode = GuideView
		m.guide = newGuideState(defaultName(m.store, m.cfg))
		return m, nil
	case "t":
		m.viewMode = ChatView
		m.chat.input.Focus()
		m.refreshChatViewport()
		return m, nil
	case "s":
		m.viewMode = StatsView
		return m, nil
	case "h":
		m.ToggleHistory()
		w, h := m.canvasSize()
		m.eng.Resize(w, h)
		return m, nil
	case "e":
		if id := m.eng.SelectedID(); id != 0 {
			if err := m.reg.RecordEcho(id); err != nil {
				logging.Registry("echo on missing entry %d: %v", id, err)
			}
		}
		return m, nil
	case "c":
		if m.eng.SelectedID() != 0 {
			m.commenting = true
			m.commentInput.SetValue("")
			m.commentInput.Focus()
		}
		return m, nil
	case "esc":
		m.eng.Deselect()
		w, h := m.canvasSize()
		m.eng.Resize(w, h)
		return m, nil
	}
	return m, nil
}

func (m Model) updateComment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commenting = false
		m.commentInput.Blur()
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.commentInput.Value())
		if text == "" {
			return m, nil
		}
		author := m.store.DisplayName()
		if author == "" {
			author = "匿名"
		}
		if id := m.eng.SelectedID(); id != 0 {
			if _, err := m.reg.RecordComment(id, author, text); err != nil {
				logging.Registry("comment on missing entry %d: %v", id, err)
			}
		}
		m.commenting = false
		m.commentInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.viewMode != GardenView || m.commenting {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	x := float64(msg.X)
	y := float64(msg.Y - headerRows)
	if y < 0 {
		return m, nil
	}

	before := m.eng.SelectedID()
	if n := m.eng.NodeAt(x, y); n != nil {
		m.eng.Select(n.ID)
	} else {
		m.eng.Deselect()
	}
	// The detail card steals columns, so selection changes resize the canvas.
	if m.eng.SelectedID() != before {
		w, h := m.canvasSize()
		m.eng.Resize(w, h)
	}
	return m, nil
}
