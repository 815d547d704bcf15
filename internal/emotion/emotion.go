// Package emotion defines the fixed six-category emotion palette shared by
// the registry, the garden renderer and the empathy prompts. Every category
// has exactly one display label and one base color; everything rendered for a
// mood derives from this table so label and color can never drift apart.
package emotion

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Category is one of the six emotions a mood can carry.
type Category int

const (
	Joy Category = iota
	Calm
	Sadness
	Anxiety
	Anger
	Fatigue

	numCategories
)

// entry is one row of the static palette table.
type entry struct {
	label string // Chinese display label, as shown in the garden
	hex   string // base color, node fill is derived from this
}

var table = [numCategories]entry{
	Joy:     {label: "喜悦", hex: "#FFC857"},
	Calm:    {label: "平静", hex: "#7FB5B5"},
	Sadness: {label: "忧伤", hex: "#6C8EBF"},
	Anxiety: {label: "焦虑", hex: "#B69CFF"},
	Anger:   {label: "愤怒", hex: "#E57373"},
	Fatigue: {label: "疲惫", hex: "#9E9E9E"},
}

// All returns the categories in declaration order.
func All() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is one of the six defined categories.
func (c Category) Valid() bool {
	return c >= 0 && c < numCategories
}

// Label returns the display label for the category.
func (c Category) Label() string {
	if !c.Valid() {
		return "未知"
	}
	return table[c].label
}

// Hex returns the base color of the category as a hex string.
func (c Category) Hex() string {
	if !c.Valid() {
		return "#888888"
	}
	return table[c].hex
}

// Color returns the base color of the category.
func (c Category) Color() colorful.Color {
	col, err := colorful.Hex(c.Hex())
	if err != nil {
		// Table entries are fixed hex literals; this only trips on the
		// fallback gray and is itself a valid hex.
		col, _ = colorful.Hex("#888888")
	}
	return col
}

// Shade returns the category color blended toward white (t in 0..1).
// The garden uses this for the pulsing stroke around a node.
func (c Category) Shade(t float64) colorful.Color {
	white, _ := colorful.Hex("#FFFFFF")
	return c.Color().BlendLab(white, clamp01(t))
}

// Dim returns the category color blended toward black (t in 0..1).
func (c Category) Dim(t float64) colorful.Color {
	black, _ := colorful.Hex("#000000")
	return c.Color().BlendLab(black, clamp01(t))
}

// Parse maps a display label back to its category.
func Parse(label string) (Category, bool) {
	for i, e := range table {
		if e.label == label {
			return Category(i), true
		}
	}
	return 0, false
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
