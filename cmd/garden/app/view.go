package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"moodgarden/cmd/garden/ui"
	"moodgarden/internal/emotion"
	"moodgarden/internal/garden"
)

func (m Model) View() string {
	if !m.ready {
		return "种下花园…"
	}

	header := m.viewHeader()
	footer := m.viewFooter()

	var body string
	switch m.viewMode {
	case GuideView:
		body = m.centerOverlay(m.viewGuide())
	case ChatView:
		body = m.viewChat()
	case StatsView:
		body = m.centerOverlay(m.viewStats())
	default:
		body = m.viewGarden()
	}

	return header + "\n" + body + "\n" + footer
}

func (m Model) viewHeader() string {
	title := m.styles.Header.Render("❀ 心情花园")
	caption := m.styles.Subtitle.Render(m.summary)
	line := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", caption)
	return line + "\n" + m.styles.Muted.Render(strings.Repeat("─", max(0, m.width)))
}

func (m Model) viewFooter() string {
	var hint string
	switch m.viewMode {
	case GardenView:
		if m.commenting {
			hint = "enter 留言 · esc 取消  " + m.commentInput.View()
		} else if m.eng.SelectedID() != 0 {
			hint = "e 回响 · c 留言 · esc 放开 · g 种一朵心情 · t 聊聊 · s 统计 · q 退出"
		} else {
			hint = "点击一朵心情 · g 种一朵心情 · t 聊聊 · s 统计 · h 我的记录 · q 退出"
		}
	case GuideView:
		hint = "tab 切换栏位 · enter 继续 · esc 返回"
	case ChatView:
		hint = "enter 发送 · esc 返回花园"
	case StatsView:
		hint = "tab 切换范围 · esc 返回花园"
	}
	return m.styles.Footer.Render(hint)
}

// viewGarden composites the blossoms onto the cell canvas, then lays the
// detail card or the personal history panel beside it when open.
func (m Model) viewGarden() string {
	w, h := m.canvasSize()
	canvas := ui.NewCanvas(w, h)

	nodes := m.eng.Nodes()
	if len(nodes) == 0 {
		empty := m.styles.Hint.Render("花园在等第一朵心情，按 g 种下它")
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, empty)
	}

	// Affinity links go down first so blossoms draw over them.
	for _, l := range garden.AffinityLinks(nodes, m.eng.SelectedID()) {
		canvas.DrawLink(l.FromX, l.FromY, l.ToX, l.ToY, l.Category.Dim(0.45))
	}

	osc := m.eng.Oscillator()
	for _, n := range nodes {
		pulse := osc.Sample(n, m.elapsed)
		col := n.Category.Color()
		if n.Selected {
			col = n.Category.Shade(0.18)
		}
		canvas.DrawCircle(n.X, n.Y, pulse.Radius, col, pulse.Opacity)
	}

	// Name tags under each blossom.
	for _, n := range nodes {
		if entry := m.reg.Get(n.ID); entry != nil {
			tag := entry.DisplayName
			x := int(n.X) - len([]rune(tag))/2
			y := int(n.Y + n.Visual/2 + 1)
			canvas.WriteString(x, y, tag, n.Category.Hex())
		}
	}

	view := canvas.String()

	var side string
	if sel := m.eng.Selected(); sel != nil {
		side = m.viewDetailCard(sel)
	} else if m.showHistory {
		side = m.viewHistoryPanel()
	}
	if side == "" {
		return view
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, view, side)
}

func (m Model) viewDetailCard(sel *garden.Node) string {
	entry := m.reg.Get(sel.ID)
	if entry == nil {
		return ""
	}
	var sb strings.Builder
	label := m.styles.CardTitle.Render(entry.DisplayName + " 的 " + entry.Category.Label())
	sb.WriteString(label + "\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("强度 %d · %s", entry.Intensity, entry.CreatedAt.Format("15:04"))) + "\n\n")
	sb.WriteString(m.styles.Body.Render(entry.Message) + "\n\n")
	sb.WriteString(m.styles.Badge.Render(fmt.Sprintf("✦ %d 次回响", entry.EchoCount)) + "\n")

	if len(entry.Comments) > 0 {
		sb.WriteString("\n" + m.styles.CardTitle.Render("留言") + "\n")
		for _, c := range entry.Comments {
			sb.WriteString(m.styles.Muted.Render(c.Author+": ") + m.styles.Body.Render(c.Text) + "\n")
		}
	}
	if m.commenting {
		sb.WriteString("\n" + m.commentInput.View() + "\n")
	}
	return m.styles.Card.Width(cardColumns - 2).Render(sb.String())
}

func (m Model) viewHistoryPanel() string {
	records := m.moodLog.Records()
	var sb strings.Builder
	sb.WriteString(m.styles.CardTitle.Render("我的心情记录") + "\n")
	if len(records) == 0 {
		sb.WriteString(m.styles.Hint.Render("还没有记录过心情"))
	}
	// Most recent first, capped to what fits in a panel.
	shown := 0
	for i := len(records) - 1; i >= 0 && shown < 12; i-- {
		r := records[i]
		sb.WriteString(fmt.Sprintf("%s %s  %s\n",
			m.styles.Muted.Render(r.CreatedAt.Format("01-02")),
			m.styles.Title.Render(r.Category.Label()),
			m.styles.Body.Render(truncate(r.Message, 22))))
		shown++
	}
	return m.styles.Card.Width(cardColumns - 2).Render(sb.String())
}

func (m Model) viewGuide() string {
	g := m.guide
	var sb strings.Builder

	switch g.step {
	case StepIdentity:
		sb.WriteString(m.styles.CardTitle.Render("第一步 · 你是谁, 带着什么心情") + "\n")
		sb.WriteString(m.styles.InputLabel.Render("名字 ") + g.nameInput.View() + "\n\n")
		sb.WriteString(m.styles.InputLabel.Render("心情 "))
		for i, cat := range emotion.All() {
			label := " " + cat.Label() + " "
			if i == g.category {
				sb.WriteString(m.styles.Selected.Render(label))
			} else {
				sb.WriteString(m.styles.Muted.Render(label))
			}
		}
		sb.WriteString("\n")
		if !g.identityComplete() {
			sb.WriteString("\n" + m.styles.Hint.Render("写下名字才能继续"))
		}

	case StepDetail:
		sb.WriteString(m.styles.CardTitle.Render("第二步 · 有多强烈, 想说什么") + "\n")
		sb.WriteString(m.styles.InputLabel.Render("强度 "))
		for i := 1; i <= 10; i++ {
			mark := "○"
			if i <= g.intensity {
				mark = "●"
			}
			sb.WriteString(m.styles.Title.Render(mark))
		}
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d/10", g.intensity)) + "\n\n")
		sb.WriteString(g.msgInput.View() + "\n")
		if !g.detailComplete() {
			sb.WriteString("\n" + m.styles.Hint.Render("写点什么吧, 花园在听"))
		}

	default: // StepWhisper
		sb.WriteString(m.styles.CardTitle.Render("心情已经种下") + "\n")
		if g.waiting {
			sb.WriteString(m.styles.Hint.Render("风正把回应吹过来…"))
		} else {
			sb.WriteString(m.styles.Whisper.Render(g.whisper))
			sb.WriteString("\n\n" + m.styles.Hint.Render("enter 回到花园"))
		}
	}

	return m.styles.Overlay.Render(sb.String())
}

func (m Model) viewChat() string {
	var sb strings.Builder
	sb.WriteString(m.chat.vp.View() + "\n")
	if m.chat.pending {
		sb.WriteString(m.styles.Muted.Render("…") + "\n")
	} else {
		sb.WriteString(m.styles.Prompt.Render("> ") + m.chat.input.View() + "\n")
	}
	return sb.String()
}

func (m Model) centerOverlay(overlay string) string {
	_, h := m.canvasSize()
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, overlay)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
