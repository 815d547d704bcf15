package garden

import (
	"math"

	"moodgarden/internal/logging"
	"moodgarden/internal/registry"
)

// Engine owns the current node set and selection state and re-runs the
// solver whenever either changes. It is single-threaded: the UI event loop
// is the only caller.
type Engine struct {
	width, height float64
	params        Params

	nodes    []*Node
	selected int64 // 0 means no selection

	osc *Oscillator
}

// NewEngine returns an engine sized to the given canvas.
func NewEngine(width, height int) *Engine {
	e := &Engine{osc: NewOscillator()}
	e.setSize(width, height)
	return e
}

func (e *Engine) setSize(width, height int) {
	e.width = float64(width)
	e.height = float64(height)
	e.params = DefaultParams(e.width, e.height)
}

// SetMoods rebuilds the garden from the registry's current entries. Node
// positions are re-solved from scratch; a selection that no longer exists
// is dropped.
func (e *Engine) SetMoods(entries []*registry.MoodEntry) {
	nodes := make([]*Node, 0, len(entries))
	found := false
	for _, entry := range entries {
		n := &Node{
			ID:        entry.ID,
			Category:  entry.Category,
			Intensity: entry.Intensity,
		}
		if entry.ID == e.selected {
			n.Selected = true
			found = true
		}
		nodes = append(nodes, n)
	}
	if !found {
		e.selected = 0
	}
	e.nodes = nodes
	e.rebuild()
	logging.GardenDebug("layout rebuilt: %d nodes, selected=%d", len(nodes), e.selected)
}

// Select makes the node with the given id the sole selected node. Selecting
// the already-selected node deselects it, matching tap-to-toggle.
func (e *Engine) Select(id int64) {
	if id == e.selected {
		e.Deselect()
		return
	}
	e.selected = id
	for _, n := range e.nodes {
		n.Selected = n.ID == id
	}
	e.rebuild()
}

// Deselect clears the selection and relaxes the layout.
func (e *Engine) Deselect() {
	if e.selected == 0 {
		return
	}
	e.selected = 0
	for _, n := range e.nodes {
		n.Selected = false
	}
	e.rebuild()
}

// SelectedID returns the selected node's id, or 0.
func (e *Engine) SelectedID() int64 { return e.selected }

// Selected returns the selected node, or nil.
func (e *Engine) Selected() *Node {
	for _, n := range e.nodes {
		if n.Selected {
			return n
		}
	}
	return nil
}

// Resize re-solves the layout for a new canvas size, preserving selection.
func (e *Engine) Resize(width, height int) {
	e.setSize(width, height)
	// Re-seed from scratch so nodes redistribute for the new aspect.
	for _, n := range e.nodes {
		n.X, n.Y = 0, 0
	}
	e.rebuild()
}

// Nodes returns the live node slice. Callers must not mutate it.
func (e *Engine) Nodes() []*Node { return e.nodes }

// NodeAt hit-tests a point against collision radii, returning the nearest
// containing node or nil. Collision rather than visual radius keeps small
// nodes tappable.
func (e *Engine) NodeAt(x, y float64) *Node {
	var best *Node
	bestDist := math.Inf(1)
	for _, n := range e.nodes {
		d := math.Hypot(n.X-x, n.Y-y)
		if d <= n.Collision && d < bestDist {
			best = n
			bestDist = d
		}
	}
	return best
}

// Oscillator exposes the pulse driver for render sampling.
func (e *Engine) Oscillator() *Oscillator { return e.osc }

func (e *Engine) rebuild() {
	for _, n := range e.nodes {
		SizeNode(n, len(e.nodes))
	}
	Solve(e.nodes, e.params)
	e.osc.Retarget(e.nodes, e.selected)
}
