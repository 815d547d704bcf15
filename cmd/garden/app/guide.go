package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"moodgarden/internal/emotion"
	"moodgarden/internal/history"
	"moodgarden/internal/logging"
)

// GuideStep enumerates the mood submission wizard's states.
type GuideStep int

const (
	StepIdentity GuideStep = iota // display name + emotion category
	StepDetail                    // intensity + free-text message
	StepWhisper                   // committed; showing the AI whisper
)

// guideState is the submission wizard. The flow is linear: identity, detail,
// whisper. Reset clears everything including the category choice.
type guideState struct {
	step GuideStep

	nameInput textinput.Model
	category  int // index into emotion.All()
	onName    bool

	intensity int
	msgInput  textarea.Model
	onMessage bool

	whisper string
	waiting bool
}

func newGuideState(displayName string) guideState {
	ni := textinput.New()
	ni.Placeholder = "你的名字"
	ni.CharLimit = 24
	ni.SetValue(displayName)
	ni.Focus()

	ta := textarea.New()
	ta.Placeholder = "此刻想说的话…"
	ta.CharLimit = 280
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	return guideState{
		nameInput: ni,
		msgInput:  ta,
		intensity: 5,
		onName:    true,
	}
}

func (g guideState) name() string    { return strings.TrimSpace(g.nameInput.Value()) }
func (g guideState) message() string { return strings.TrimSpace(g.msgInput.Value()) }

func (g guideState) emotion() emotion.Category {
	return emotion.All()[g.category]
}

// identityComplete gates the first advance: an empty name disables the step
// rather than erroring.
func (g guideState) identityComplete() bool { return g.name() != "" }
func (g guideState) detailComplete() bool   { return g.message() != "" }

// updateGuide handles keys while the wizard is open. Committing a mood
// returns the command batch for the empathy call and summarizer refresh.
func (m Model) updateGuide(msg tea.KeyMsg) (Model, tea.Cmd) {
	g := &m.guide

	switch g.step {
	case StepIdentity:
		switch msg.Type {
		case tea.KeyEsc:
			m.viewMode = GardenView
			return m, nil
		case tea.KeyTab:
			g.onName = !g.onName
			if g.onName {
				g.nameInput.Focus()
			} else {
				g.nameInput.Blur()
			}
			return m, nil
		case tea.KeyLeft:
			if !g.onName && g.category > 0 {
				g.category--
			}
			return m, nil
		case tea.KeyRight:
			if !g.onName && g.category < len(emotion.All())-1 {
				g.category++
			}
			return m, nil
		case tea.KeyEnter:
			if g.identityComplete() {
				g.step = StepDetail
				g.nameInput.Blur()
				g.onMessage = false
			}
			return m, nil
		}
		if g.onName {
			var cmd tea.Cmd
			g.nameInput, cmd = g.nameInput.Update(msg)
			return m, cmd
		}
		return m, nil

	case StepDetail:
		switch msg.Type {
		case tea.KeyEsc:
			g.step = StepIdentity
			g.nameInput.Focus()
			g.onName = true
			return m, nil
		case tea.KeyTab:
			g.onMessage = !g.onMessage
			if g.onMessage {
				g.msgInput.Focus()
			} else {
				g.msgInput.Blur()
			}
			return m, nil
		case tea.KeyLeft:
			if !g.onMessage && g.intensity > 1 {
				g.intensity--
			}
			return m, nil
		case tea.KeyRight:
			if !g.onMessage && g.intensity < 10 {
				g.intensity++
			}
			return m, nil
		case tea.KeyEnter:
			if !g.onMessage {
				g.onMessage = true
				g.msgInput.Focus()
				return m, nil
			}
			if g.detailComplete() {
				return m.commitMood()
			}
			return m, nil
		}
		if g.onMessage {
			var cmd tea.Cmd
			g.msgInput, cmd = g.msgInput.Update(msg)
			return m, cmd
		}
		return m, nil

	default: // StepWhisper
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			if g.waiting {
				return m, nil
			}
			m.guide = newGuideState(defaultName(m.store, m.cfg))
			m.viewMode = GardenView
			return m, nil
		}
		return m, nil
	}
}

// commitMood runs the terminal step of the wizard: registry append, personal
// history append, display-name remember, empathy call, summarizer refresh.
func (m Model) commitMood() (Model, tea.Cmd) {
	g := &m.guide
	cat := g.emotion()

	entry := m.reg.Append(g.name(), cat, g.intensity, g.message())
	logging.Session("mood committed: id=%d category=%s intensity=%d", entry.ID, cat.Label(), entry.Intensity)

	if err := m.moodLog.Append(history.MoodRecord{
		Category:  cat,
		Message:   g.message(),
		CreatedAt: time.Now(),
	}); err != nil {
		logging.Store("mood history append failed: %v", err)
	}
	if err := m.store.SetDisplayName(g.name()); err != nil {
		logging.Store("display name save failed: %v", err)
	}

	g.step = StepWhisper
	g.waiting = true
	g.msgInput.Blur()

	return m, tea.Batch(
		respondCmd(m.svc, cat, g.message()),
		summarizeCmd(m.svc, m.reg.Labels(), m.summaryGen.Next()),
	)
}
