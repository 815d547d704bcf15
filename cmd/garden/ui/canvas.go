package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is a grid of colored runes the garden is composited onto. One cell
// is one terminal character; vertical distances are halved when drawing
// circles so they come out round despite the ~2:1 cell aspect.
type Canvas struct {
	w, h   int
	runes  []rune
	colors []string // hex per cell, "" means default foreground
}

// pulseRamp orders the fill runes from faintest to brightest.
var pulseRamp = []rune{'·', '∘', '•', '●'}

// NewCanvas returns a cleared canvas of the given cell size.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{w: w, h: h}
	c.Clear()
	return c
}

// Clear resets every cell to blank.
func (c *Canvas) Clear() {
	c.runes = make([]rune, c.w*c.h)
	c.colors = make([]string, c.w*c.h)
	for i := range c.runes {
		c.runes[i] = ' '
	}
}

// Set places a rune at a cell. Out-of-bounds writes are dropped.
func (c *Canvas) Set(x, y int, r rune, hex string) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	i := y*c.w + x
	c.runes[i] = r
	c.colors[i] = hex
}

// DrawCircle renders a breathing blossom centered at (cx, cy) with the given
// radius in columns. Opacity scales the rune ramp; cells nearer the center
// read brighter.
func (c *Canvas) DrawCircle(cx, cy, radius float64, col colorful.Color, opacity float64) {
	if radius < 0.5 {
		radius = 0.5
	}
	hex := col.Hex()
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius/2))
	maxY := int(math.Ceil(cy + radius/2))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) - cx
			dy := (float64(y) - cy) * 2
			d := math.Hypot(dx, dy)
			if d > radius {
				continue
			}
			t := (1 - d/radius) * opacity
			c.Set(x, y, rampRune(t), hex)
		}
	}
}

// DrawLink samples a faint dotted line between two points, skipping cells
// already occupied so links never punch through blossoms.
func (c *Canvas) DrawLink(x1, y1, x2, y2 float64, col colorful.Color) {
	hex := col.Hex()
	steps := int(math.Hypot(x2-x1, (y2-y1)*2))
	if steps < 1 {
		return
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		x := int(math.Round(x1 + (x2-x1)*f))
		y := int(math.Round(y1 + (y2-y1)*f))
		if x < 0 || x >= c.w || y < 0 || y >= c.h {
			continue
		}
		if c.runes[y*c.w+x] != ' ' {
			continue
		}
		if i%2 == 0 {
			c.Set(x, y, '·', hex)
		}
	}
}

// WriteString places a short label starting at (x, y), clipped to the row.
func (c *Canvas) WriteString(x, y int, s, hex string) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, hex)
	}
}

// String renders the canvas with lipgloss coloring, merging runs of
// same-colored cells to keep the escape-sequence volume down.
func (c *Canvas) String() string {
	var sb strings.Builder
	styleCache := make(map[string]lipgloss.Style)
	for y := 0; y < c.h; y++ {
		var run []rune
		runHex := ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runHex == "" {
				sb.WriteString(string(run))
			} else {
				st, ok := styleCache[runHex]
				if !ok {
					st = lipgloss.NewStyle().Foreground(lipgloss.Color(runHex))
					styleCache[runHex] = st
				}
				sb.WriteString(st.Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < c.w; x++ {
			i := y*c.w + x
			if c.colors[i] != runHex {
				flush()
				runHex = c.colors[i]
			}
			run = append(run, c.runes[i])
		}
		flush()
		if y < c.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Width and Height report the canvas size in cells.
func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

func rampRune(t float64) rune {
	if t < 0 {
		t = 0
	}
	if t > 0.999 {
		t = 0.999
	}
	return pulseRamp[int(t*float64(len(pulseRamp)))]
}
