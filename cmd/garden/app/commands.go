package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"moodgarden/internal/emotion"
	"moodgarden/internal/empathy"
	"moodgarden/internal/history"
)

// tickMsg drives the pulse animation frame.
type tickMsg time.Time

// syntheticMsg fires when a synthetic mood should drift in.
type syntheticMsg struct{}

// whisperMsg carries the empathy response for a freshly committed mood.
type whisperMsg struct {
	text string
}

// chatReplyMsg carries the assistant's chat turn.
type chatReplyMsg struct {
	text string
}

// summaryMsg carries a collective caption stamped with its request
// generation; stale generations are dropped on receipt.
type summaryMsg struct {
	gen  uint64
	text string
}

func pulseTick() tea.Cmd {
	return tea.Tick(pulseFrame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func syntheticTick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return syntheticMsg{}
	})
}

func respondCmd(svc *empathy.Service, category emotion.Category, message string) tea.Cmd {
	return func() tea.Msg {
		return whisperMsg{text: svc.Respond(context.Background(), category, message)}
	}
}

func chatCmd(svc *empathy.Service, turns []history.ChatMessage) tea.Cmd {
	return func() tea.Msg {
		return chatReplyMsg{text: svc.Chat(context.Background(), turns)}
	}
}

func summarizeCmd(svc *empathy.Service, labels []string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return summaryMsg{gen: gen, text: svc.Summarize(context.Background(), labels)}
	}
}
