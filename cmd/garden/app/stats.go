package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"moodgarden/internal/history"
	"moodgarden/internal/logging"
	"moodgarden/internal/stats"
)

func (m Model) updateStats(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmClear {
		switch msg.String() {
		case "y", "Y":
			if err := m.moodLog.Clear(); err != nil {
				logging.Store("mood history clear failed: %v", err)
			}
			if err := m.chatLog.Clear(); err != nil {
				logging.Store("chat history clear failed: %v", err)
			}
			m.refreshChatViewport()
			logging.Store("local history cleared")
		}
		m.confirmClear = false
		return m, nil
	}

	switch msg.String() {
	case "tab":
		if m.statsScope == ScopeCollective {
			m.statsScope = ScopePersonal
		} else {
			m.statsScope = ScopeCollective
		}
		return m, nil
	case "x":
		if m.statsScope == ScopePersonal {
			m.confirmClear = true
		}
		return m, nil
	case "esc", "s", "q":
		m.viewMode = GardenView
		return m, nil
	}
	return m, nil
}

// statsRecords returns the dataset behind the current scope. The collective
// scope reads the live registry; intensity and names are irrelevant to the
// charts so only category and time survive the mapping.
func (m Model) statsRecords() []history.MoodRecord {
	if m.statsScope == ScopePersonal {
		return m.moodLog.Records()
	}
	entries := m.reg.Entries()
	records := make([]history.MoodRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, history.MoodRecord{
			Category:  e.Category,
			Message:   e.Message,
			CreatedAt: e.CreatedAt,
		})
	}
	return records
}

func (m Model) viewStats() string {
	records := m.statsRecords()

	var sb strings.Builder
	title := "花园的心情分布"
	if m.statsScope == ScopePersonal {
		title = "我的心情记录"
	}
	sb.WriteString(m.styles.CardTitle.Render(title) + "\n")

	for _, s := range stats.Distribution(records) {
		bar := strings.Repeat("█", int(s.Percent/5))
		sb.WriteString(fmt.Sprintf("%s %5.1f%%  %s\n",
			m.styles.Body.Render(fmt.Sprintf("%-4s", s.Category.Label())),
			s.Percent,
			m.styles.Title.Render(bar)))
	}

	if m.statsScope == ScopePersonal {
		sb.WriteString("\n" + m.styles.CardTitle.Render("最近七天") + "\n")
		for _, b := range stats.WeeklyTrend(records, time.Now()) {
			sb.WriteString(fmt.Sprintf("%s  %s %d\n",
				m.styles.Muted.Render(b.Date.Format("01-02")),
				strings.Repeat("●", b.Count),
				b.Count))
		}
		if dom, ok := stats.Dominant(records); ok {
			sb.WriteString("\n" + m.styles.Subtitle.Render("最常来访的心情: "+dom.Label()) + "\n")
		}
	}

	if m.confirmClear {
		sb.WriteString("\n" + m.styles.Error.Render("确定要清空本地记录吗? (y/N)") + "\n")
	} else if m.statsScope == ScopePersonal {
		sb.WriteString("\n" + m.styles.Hint.Render("x 清空记录") + "\n")
	}
	sb.WriteString(m.styles.Hint.Render("tab 切换范围 · esc 返回花园"))

	return m.styles.Overlay.Render(sb.String())
}
