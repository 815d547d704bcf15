package ui

import (
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestCanvasCircleStaysInBounds(t *testing.T) {
	t.Parallel()
	c := NewCanvas(20, 10)
	col, _ := colorful.Hex("#FFC857")

	// Center near a corner; out-of-bounds cells must be dropped silently.
	c.DrawCircle(1, 1, 6, col, 1.0)
	out := c.String()

	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if c.runes[1*c.w+1] == ' ' {
		t.Error("circle center cell should be painted")
	}
}

func TestCanvasCircleBrighterAtCenter(t *testing.T) {
	t.Parallel()
	c := NewCanvas(40, 20)
	col, _ := colorful.Hex("#7FB5B5")
	c.DrawCircle(20, 10, 8, col, 1.0)

	rank := func(r rune) int {
		for i, rr := range pulseRamp {
			if rr == r {
				return i
			}
		}
		return -1
	}
	center := rank(c.runes[10*c.w+20])
	edge := rank(c.runes[10*c.w+27])
	if center < 0 || edge < 0 {
		t.Fatalf("expected ramp runes, got %q and %q", c.runes[10*c.w+20], c.runes[10*c.w+27])
	}
	if center <= edge {
		t.Errorf("center (%d) should be brighter than edge (%d)", center, edge)
	}
}

func TestCanvasLinkSkipsOccupiedCells(t *testing.T) {
	t.Parallel()
	c := NewCanvas(30, 10)
	col, _ := colorful.Hex("#6C8EBF")

	c.Set(15, 5, '●', "#FFC857")
	c.DrawLink(0, 5, 29, 5, col)

	if c.runes[5*c.w+15] != '●' {
		t.Error("link must not overwrite an occupied cell")
	}
}

func TestThemeFor(t *testing.T) {
	if got := ThemeFor("light"); got.IsDark {
		t.Error("light theme requested, dark returned")
	}
	if got := ThemeFor("dark"); !got.IsDark {
		t.Error("dark theme requested, light returned")
	}
}
