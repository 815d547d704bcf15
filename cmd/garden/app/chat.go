package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"moodgarden/internal/history"
	"moodgarden/internal/logging"
)

// chatState is the companion chat flow. At most one call is outstanding at a
// time; the input stays disabled until the reply lands.
type chatState struct {
	input   textinput.Model
	vp      viewport.Model
	pending bool
	ready   bool
}

func newChatState() chatState {
	ti := textinput.New()
	ti.Placeholder = "跟花园说说话…"
	ti.CharLimit = 280
	return chatState{input: ti}
}

func (m Model) updateChat(msg tea.KeyMsg) (Model, tea.Cmd) {
	c := &m.chat

	switch msg.Type {
	case tea.KeyEsc:
		c.input.Blur()
		m.viewMode = GardenView
		return m, nil
	case tea.KeyEnter:
		if c.pending {
			return m, nil
		}
		text := strings.TrimSpace(c.input.Value())
		if text == "" {
			return m, nil
		}
		if err := m.chatLog.Append(history.ChatMessage{
			Role:      history.RoleUser,
			Text:      text,
			CreatedAt: time.Now(),
		}); err != nil {
			logging.Store("chat history append failed: %v", err)
		}
		c.input.SetValue("")
		c.input.Blur()
		c.pending = true
		m.refreshChatViewport()
		return m, chatCmd(m.svc, m.chatLog.Messages())
	}

	if c.pending {
		// Input is disabled while a reply is outstanding.
		return m, nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return m, cmd
}

func (m *Model) handleChatReply(msg chatReplyMsg) {
	c := &m.chat
	c.pending = false
	c.input.Focus()
	if err := m.chatLog.Append(history.ChatMessage{
		Role:      history.RoleAssistant,
		Text:      msg.text,
		CreatedAt: time.Now(),
	}); err != nil {
		logging.Store("chat history append failed: %v", err)
	}
	m.refreshChatViewport()
}

// refreshChatViewport re-renders the transcript. Assistant turns go through
// glamour so the model's occasional markdown reads nicely.
func (m *Model) refreshChatViewport() {
	var sb strings.Builder
	for _, turn := range m.chatLog.Messages() {
		if turn.Role == history.RoleUser {
			sb.WriteString(m.styles.Prompt.Render("你") + "  " + turn.Text + "\n\n")
			continue
		}
		body := turn.Text
		if m.renderer != nil {
			if out, err := m.renderer.Render(turn.Text); err == nil {
				body = strings.TrimSpace(out)
			}
		}
		sb.WriteString(m.styles.Whisper.Render(body) + "\n\n")
	}
	if m.chat.pending {
		sb.WriteString(m.styles.Hint.Render("花园在想怎么回答…") + "\n")
	}
	m.chat.vp.SetContent(sb.String())
	m.chat.vp.GotoBottom()
}
