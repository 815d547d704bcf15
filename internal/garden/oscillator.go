package garden

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Pulse is one sampled frame of a node's breathing animation.
type Pulse struct {
	Radius  float64
	Opacity float64
}

const (
	pulseBasePeriod = 3200 * time.Millisecond
	pulseStepPeriod = 220 * time.Millisecond

	pulseAmp         = 0.08
	pulseAmpSelected = 0.18

	oscillatorFPS = 10
)

// PulsePeriod maps mood intensity to the breathing period. Stronger moods
// breathe faster; the mapping is strictly non-increasing in intensity.
func PulsePeriod(intensity int) time.Duration {
	if intensity < 1 {
		intensity = 1
	}
	if intensity > 10 {
		intensity = 10
	}
	return pulseBasePeriod - time.Duration(intensity-1)*pulseStepPeriod
}

// Oscillator tracks per-node phase offsets and a spring-smoothed scale for
// the selected node, so a selection change eases in rather than snapping.
// The spring always settles at 1.0; a fresh selection starts under size and
// grows into place.
type Oscillator struct {
	phases map[int64]float64

	spring   harmonica.Spring
	selScale float64
	selVel   float64
	selected int64
}

// NewOscillator returns an oscillator stepped at the engine's frame rate.
func NewOscillator() *Oscillator {
	return &Oscillator{
		phases:   make(map[int64]float64),
		spring:   harmonica.NewSpring(harmonica.FPS(oscillatorFPS), 6.0, 0.6),
		selScale: 1.0,
	}
}

// Retarget reconciles the oscillator with a new node set. Surviving nodes
// keep their phase so the garden does not visibly stutter on change; new
// nodes get a deterministic phase derived from their id.
func (o *Oscillator) Retarget(nodes []*Node, selected int64) {
	next := make(map[int64]float64, len(nodes))
	for _, n := range nodes {
		if phase, ok := o.phases[n.ID]; ok {
			next[n.ID] = phase
		} else {
			next[n.ID] = math.Mod(float64(n.ID)*0.61803, 1.0) * 2 * math.Pi
		}
	}
	o.phases = next

	if selected != o.selected {
		o.selected = selected
		if selected != 0 {
			o.selScale = 0.8 // grow into place from slightly under size
			o.selVel = 0
		}
	}
}

// Step advances the selection spring by one frame.
func (o *Oscillator) Step() {
	o.selScale, o.selVel = o.spring.Update(o.selScale, o.selVel, 1.0)
}

// Sample returns the node's rendered radius and opacity at elapsed time t.
func (o *Oscillator) Sample(n *Node, t time.Duration) Pulse {
	period := PulsePeriod(n.Intensity)
	phase := o.phases[n.ID] + 2*math.Pi*float64(t)/float64(period)

	amp := pulseAmp
	if n.Selected {
		amp = pulseAmpSelected
	}
	wave := math.Sin(phase)

	radius := n.Visual * (1 + amp*wave)
	if n.Selected {
		radius *= o.selScale
	}

	opacity := 0.72 + 0.18*wave
	if n.Selected {
		opacity = 0.85 + 0.12*wave
	}
	return Pulse{Radius: radius, Opacity: opacity}
}
