// Package garden is the layout and animation engine behind the mood garden.
// The solver is a pure function from mood nodes to 2D positions (centering,
// mutual repulsion, iterative collision resolution); the oscillator drives
// the breathing animation. Neither touches a render surface, so both are
// testable head-less.
package garden

import (
	"math"

	"moodgarden/internal/emotion"
)

// minDistance guards unit-vector math between near-coincident points.
const minDistance = 1e-3

// Node is one simulated particle, mapped 1:1 from a mood entry.
type Node struct {
	ID        int64
	Category  emotion.Category
	Intensity int
	Selected  bool

	X, Y float64

	// Collision is the solver's separation radius, Visual the rendered one.
	// Both shrink as the garden fills up; see radiiForCount.
	Collision float64
	Visual    float64
}

// Rect is an axis-aligned region, used for the reserved header area that
// unselected nodes must keep clear of.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Params configures one solver run.
type Params struct {
	Width, Height float64

	// Center attracts every unselected node; Focus pins the selected one.
	Center Vec
	Focus  Vec

	// Exclusion, if non-nil, is kept free of unselected nodes.
	Exclusion *Rect

	Ticks           int
	CollisionPasses int
}

// Vec is a 2D point.
type Vec struct {
	X, Y float64
}

// DefaultParams returns the solver parameters for a canvas of the given size:
// cluster center slightly below middle, selected focus in the upper third,
// and the title band excluded.
func DefaultParams(width, height float64) Params {
	return Params{
		Width:  width,
		Height: height,
		Center: Vec{X: width * 0.5, Y: height * 0.56},
		Focus:  Vec{X: width * 0.5, Y: height * 0.30},
		Exclusion: &Rect{
			MinX: width * 0.25,
			MinY: 0,
			MaxX: width * 0.75,
			MaxY: height * 0.12,
		},
		Ticks:           120,
		CollisionPasses: 3,
	}
}

// radiiForCount returns the intensity scale and base padding for a garden of
// count nodes. Both saturate as base + k/(1+count*decay): a handful of moods
// get generous room, dozens shrink gracefully instead of exploding.
func radiiForCount(count int) (intensityScale, basePadding float64) {
	n := float64(count)
	intensityScale = 0.35 + 1.6/(1+n*0.18)
	basePadding = 1.2 + 4.0/(1+n*0.15)
	return
}

// SizeNode fills in the node's collision and visual radii for a garden of
// count nodes. A selected node is inflated so neighbors make room.
func SizeNode(n *Node, count int) {
	scale, padding := radiiForCount(count)
	n.Collision = float64(n.Intensity)*scale + padding
	n.Visual = n.Collision * 0.65
	if n.Selected {
		n.Collision *= 1.5
		n.Visual *= 1.35
	}
}

// repulsionStrength decays with node count to avoid runaway spread.
func repulsionStrength(count int) float64 {
	return 220.0 / (1 + float64(count)*0.25)
}

// Solve runs the simulation to rest. Nodes are mutated in place. The solver
// is deterministic: nodes at the origin are seeded on a spiral around the
// center before the first tick.
func Solve(nodes []*Node, p Params) {
	if len(nodes) == 0 {
		return
	}
	if p.Ticks <= 0 {
		p.Ticks = 120
	}
	if p.CollisionPasses <= 0 {
		p.CollisionPasses = 3
	}

	seedPositions(nodes, p)

	rep := repulsionStrength(len(nodes))
	for tick := 0; tick < p.Ticks; tick++ {
		// Cool down over the run so the layout settles.
		alpha := 1.0 - float64(tick)/float64(p.Ticks)

		applyCentering(nodes, p, alpha)
		applyRepulsion(nodes, rep, alpha)
		for pass := 0; pass < p.CollisionPasses; pass++ {
			resolveCollisions(nodes)
		}
		// Exclusion runs last: clamping first means the push out of the
		// reserved region is never undone within the tick.
		clampToCanvas(nodes, p)
		applyExclusion(nodes, p)
	}
}

func seedPositions(nodes []*Node, p Params) {
	for i, n := range nodes {
		if n.X != 0 || n.Y != 0 {
			continue
		}
		angle := float64(i) * 2.399963 // golden angle keeps seeds spread out
		radius := 4.0 + 3.0*float64(i)
		n.X = p.Center.X + radius*math.Cos(angle)
		n.Y = p.Center.Y + radius*math.Sin(angle)
	}
}

func applyCentering(nodes []*Node, p Params, alpha float64) {
	for _, n := range nodes {
		if n.Selected {
			// Pinned: converge hard onto the focus point.
			n.X += (p.Focus.X - n.X) * 0.4
			n.Y += (p.Focus.Y - n.Y) * 0.4
			continue
		}
		n.X += (p.Center.X - n.X) * 0.06 * alpha
		n.Y += (p.Center.Y - n.Y) * 0.06 * alpha
	}
}

func applyRepulsion(nodes []*Node, strength, alpha float64) {
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			dx, dy, d := separation(a, b, i, j)
			push := strength * alpha / (d * d)
			// Cap so near-coincident pairs do not slingshot.
			if push > 6 {
				push = 6
			}
			ux, uy := dx/d, dy/d
			if !a.Selected {
				a.X -= ux * push
				a.Y -= uy * push
			}
			if !b.Selected {
				b.X += ux * push
				b.Y += uy * push
			}
		}
	}
}

// resolveCollisions enforces minimum separation equal to the sum of two
// nodes' collision radii. One pass only moves each pair halfway, so callers
// run several passes per tick for stability.
func resolveCollisions(nodes []*Node) {
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			dx, dy, d := separation(a, b, i, j)
			minSep := a.Collision + b.Collision
			if d >= minSep {
				continue
			}
			overlap := (minSep - d) * 0.5
			ux, uy := dx/d, dy/d
			switch {
			case a.Selected: // selected node is immovable; push b the full amount
				b.X += ux * overlap * 2
				b.Y += uy * overlap * 2
			case b.Selected:
				a.X -= ux * overlap * 2
				a.Y -= uy * overlap * 2
			default:
				a.X -= ux * overlap
				a.Y -= uy * overlap
				b.X += ux * overlap
				b.Y += uy * overlap
			}
		}
	}
}

// separation returns the vector from a to b and its length, guarded by
// minDistance. Coincident nodes get a deterministic direction from their
// indices so they split apart instead of dividing by zero.
func separation(a, b *Node, i, j int) (dx, dy, d float64) {
	dx = b.X - a.X
	dy = b.Y - a.Y
	d = math.Hypot(dx, dy)
	if d < minDistance {
		angle := float64(i*31+j*17) * 0.39
		dx = math.Cos(angle) * minDistance
		dy = math.Sin(angle) * minDistance
		d = minDistance
	}
	return
}

// applyExclusion pushes unselected nodes that settled inside the reserved
// rectangle out to its nearest edge.
func applyExclusion(nodes []*Node, p Params) {
	if p.Exclusion == nil {
		return
	}
	r := *p.Exclusion
	for _, n := range nodes {
		if n.Selected || !r.Contains(n.X, n.Y) {
			continue
		}
		// Distance to each edge; exit through the cheapest one. When the
		// region hugs the canvas top there is no room above it, so the top
		// exit is off the table.
		toLeft := n.X - r.MinX
		toRight := r.MaxX - n.X
		toTop := n.Y - r.MinY
		toBottom := r.MaxY - n.Y
		if r.MinY <= 0 {
			toTop = math.Inf(1)
		}

		switch min4 := math.Min(math.Min(toLeft, toRight), math.Min(toTop, toBottom)); min4 {
		case toLeft:
			n.X = r.MinX
		case toRight:
			n.X = r.MaxX
		case toTop:
			n.Y = r.MinY
		default:
			n.Y = r.MaxY
		}
	}
}

func clampToCanvas(nodes []*Node, p Params) {
	for _, n := range nodes {
		margin := n.Visual
		if n.X < margin {
			n.X = margin
		}
		if n.X > p.Width-margin {
			n.X = p.Width - margin
		}
		if n.Y < margin {
			n.Y = margin
		}
		if n.Y > p.Height-margin {
			n.Y = p.Height - margin
		}
	}
}
