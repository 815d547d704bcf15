// Tests for the Update loop: message routing, selection, reactions, the
// stats overlay, and the summarizer's stale-response guard.
package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"moodgarden/internal/history"
)

func TestUpdate_WindowSize(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	resized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	result := resized.(Model)

	if result.width != 120 {
		t.Errorf("expected width 120, got %d", result.width)
	}
	if result.height != 50 {
		t.Errorf("expected height 50, got %d", result.height)
	}
}

func TestUpdate_WindowSize_Zero(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("panic on zero window size: %v", r)
		}
	}()
	_, _ = m.Update(tea.WindowSizeMsg{Width: 0, Height: 0})
}

func TestUpdate_ViewModeKeys(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	next, _ := m.Update(keyRunes("g"))
	if next.(Model).viewMode != GuideView {
		t.Errorf("g should open the guide, got mode %d", next.(Model).viewMode)
	}

	next, _ = m.Update(keyRunes("t"))
	if next.(Model).viewMode != ChatView {
		t.Errorf("t should open chat, got mode %d", next.(Model).viewMode)
	}

	next, _ = m.Update(keyRunes("s"))
	if next.(Model).viewMode != StatsView {
		t.Errorf("s should open stats, got mode %d", next.(Model).viewMode)
	}
}

func TestUpdate_PulseTickAdvancesClock(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	next, cmd := m.Update(tickMsg{})
	result := next.(Model)

	if result.elapsed != pulseFrame {
		t.Errorf("expected elapsed %v, got %v", pulseFrame, result.elapsed)
	}
	if cmd == nil {
		t.Error("tick must reschedule itself")
	}
}

func TestUpdate_EchoOnSelected(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	entry := m.reg.Entries()[0]
	m.eng.Select(entry.ID)

	before := entry.EchoCount
	_, _ = m.Update(keyRunes("e"))

	if got := m.reg.Get(entry.ID).EchoCount; got != before+1 {
		t.Errorf("expected echo count %d, got %d", before+1, got)
	}
}

func TestUpdate_EchoWithoutSelectionIsNoop(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	total := func() int {
		sum := 0
		for _, e := range m.reg.Entries() {
			sum += e.EchoCount
		}
		return sum
	}
	before := total()
	_, _ = m.Update(keyRunes("e"))
	if total() != before {
		t.Error("echo without a selection must not touch any entry")
	}
}

func TestUpdate_CommentFlow(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	entry := m.reg.Entries()[0]
	m.eng.Select(entry.ID)

	next, _ := m.Update(keyRunes("c"))
	result := next.(Model)
	if !result.commenting {
		t.Fatal("c should open the comment input")
	}

	next, _ = result.Update(keyRunes("抱抱你"))
	result = next.(Model)
	next, _ = result.Update(key(tea.KeyEnter))
	result = next.(Model)

	if result.commenting {
		t.Error("enter should close the comment input")
	}
	comments := m.reg.Get(entry.ID).Comments
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
	if comments[0].Text != "抱抱你" {
		t.Errorf("unexpected comment text %q", comments[0].Text)
	}
	if comments[0].Author != "匿名" {
		t.Errorf("no stored display name should comment as 匿名, got %q", comments[0].Author)
	}
}

func TestUpdate_CommentEmptyIsRejected(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	entry := m.reg.Entries()[0]
	m.eng.Select(entry.ID)

	next, _ := m.Update(keyRunes("c"))
	result := next.(Model)
	next, _ = result.Update(key(tea.KeyEnter))
	result = next.(Model)

	if !result.commenting {
		t.Error("empty comment should keep the input open")
	}
	if len(m.reg.Get(entry.ID).Comments) != 0 {
		t.Error("empty comment must not be recorded")
	}
}

func TestUpdate_MouseSelectAndBackgroundDeselect(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	n := m.eng.Nodes()[0]
	click := tea.MouseMsg{
		X:      int(n.X),
		Y:      int(n.Y) + headerRows,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
	_, _ = m.Update(click)
	if m.eng.SelectedID() != n.ID {
		t.Fatalf("click should select node %d, got %d", n.ID, m.eng.SelectedID())
	}

	// A far corner is guaranteed empty once the card shrank the canvas.
	_, _ = m.Update(tea.MouseMsg{X: 1, Y: m.height - 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.eng.SelectedID() != 0 {
		t.Errorf("background click should deselect, still %d", m.eng.SelectedID())
	}
}

func TestUpdate_SummaryGenerationGuard(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	stale := m.summaryGen.Next()
	fresh := m.summaryGen.Next()

	next, _ := m.Update(summaryMsg{gen: fresh, text: "一片温柔的海"})
	result := next.(Model)
	if result.summary != "一片温柔的海" {
		t.Fatalf("fresh summary should land, got %q", result.summary)
	}

	next, _ = result.Update(summaryMsg{gen: stale, text: "迟到的雾"})
	result = next.(Model)
	if result.summary != "一片温柔的海" {
		t.Errorf("stale summary must be discarded, got %q", result.summary)
	}
}

func TestUpdate_SyntheticDisabled(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	before := m.reg.Len()
	_, cmd := m.Update(syntheticMsg{})
	if m.reg.Len() != before {
		t.Error("synthetic injection must respect the config switch")
	}
	if cmd != nil {
		t.Error("disabled synthetic timer must not reschedule")
	}
}

func TestUpdate_SyntheticEnabled(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.cfg.SyntheticMoods = true

	before := m.reg.Len()
	_, cmd := m.Update(syntheticMsg{})
	if m.reg.Len() < before {
		t.Error("registry shrank unexpectedly")
	}
	if cmd == nil {
		t.Error("synthetic timer should reschedule and refresh the summary")
	}
}

func TestUpdate_StatsScopeAndClear(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	if err := m.moodLog.Append(history.MoodRecord{Message: "x"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	next, _ := m.Update(keyRunes("s"))
	result := next.(Model)
	if result.statsScope != ScopeCollective {
		t.Fatal("stats should open on the collective scope")
	}

	next, _ = result.Update(key(tea.KeyTab))
	result = next.(Model)
	if result.statsScope != ScopePersonal {
		t.Fatal("tab should switch to the personal scope")
	}

	next, _ = result.Update(keyRunes("x"))
	result = next.(Model)
	if !result.confirmClear {
		t.Fatal("x should ask for confirmation")
	}

	next, _ = result.Update(keyRunes("n"))
	result = next.(Model)
	if result.confirmClear {
		t.Error("any key but y should cancel the clear")
	}
	if m.moodLog.Len() != 1 {
		t.Error("cancelled clear must not erase history")
	}

	next, _ = result.Update(keyRunes("x"))
	result = next.(Model)
	next, _ = result.Update(keyRunes("y"))
	result = next.(Model)
	if m.moodLog.Len() != 0 || m.chatLog.Len() != 0 {
		t.Error("confirmed clear should empty both logs")
	}
	_ = result
}

func TestUpdate_CommandSurface(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	m.ToggleHistory()
	if !m.showHistory {
		t.Error("ToggleHistory should open the panel")
	}
	m.ToggleHistory()
	if m.showHistory {
		t.Error("ToggleHistory should close the panel again")
	}

	m.chatLog.Append(history.ChatMessage{Role: history.RoleUser, Text: "昨晚没睡好", CreatedAt: time.Now()})

	m.StartChatWithContext("今天有点累")
	if m.viewMode != ChatView {
		t.Error("StartChatWithContext should open chat")
	}
	if got := m.chat.input.Value(); got != "今天有点累" {
		t.Errorf("draft not prefilled, got %q", got)
	}
	if !strings.Contains(m.chat.vp.View(), "昨晚没睡好") {
		t.Error("transcript not rendered on entry")
	}
}
