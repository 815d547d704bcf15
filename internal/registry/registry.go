// Package registry holds the in-memory collection of moods currently blooming
// in the garden. The registry lives for the life of the session: it is seeded
// once at startup, appended to by the guide flow, and optionally topped up by
// the synthetic-mood timer. Entries are mutated in place by echo and comment
// actions and never removed except by the synthetic truncation policy.
//
// The registry is single-writer: every mutation happens on the TUI update
// loop, so no locking is needed.
package registry

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"moodgarden/internal/emotion"
	"moodgarden/internal/logging"
)

// maxEntries is the most-recent window kept when synthetic moods are injected.
const maxEntries = 20

// ErrNotFound is returned when an echo or comment targets an unknown entry.
var ErrNotFound = errors.New("mood entry not found")

// Comment is one appended note under a mood. Comments are append-only and
// owned exclusively by their parent entry.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// MoodEntry is one posted emotional snapshot.
type MoodEntry struct {
	ID          int64            `json:"id"`
	DisplayName string           `json:"display_name"`
	Category    emotion.Category `json:"category"`
	Intensity   int              `json:"intensity"` // 1..10, clamped on append
	Message     string           `json:"message"`
	CreatedAt   time.Time        `json:"created_at"`
	EchoCount   int              `json:"echo_count"`
	Comments    []Comment        `json:"comments"`
}

// Color returns the entry's display color, always derived from the category
// table so it can never drift from the label.
func (e *MoodEntry) Color() string {
	return e.Category.Hex()
}

// Registry is the ordered, session-lifetime mood collection.
type Registry struct {
	entries  []*MoodEntry
	nextID   int64
	onChange func()
	now      func() time.Time
	rng      *rand.Rand
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithRand overrides the random source used for synthetic moods (tests).
func WithRand(rng *rand.Rand) Option {
	return func(r *Registry) { r.rng = rng }
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		nextID: 1,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetOnChange registers a callback fired after every mutation. The garden
// re-layout and the collective summarizer hang off this.
func (r *Registry) SetOnChange(fn func()) {
	r.onChange = fn
}

func (r *Registry) changed() {
	if r.onChange != nil {
		r.onChange()
	}
}

// Append adds a new mood at the end of the registry and returns it.
// Intensity is clamped into [1,10].
func (r *Registry) Append(displayName string, category emotion.Category, intensity int, message string) *MoodEntry {
	entry := r.appendEntry(displayName, category, intensity, message)
	logging.Registry("append id=%d category=%s intensity=%d", entry.ID, category.Label(), entry.Intensity)
	r.changed()
	return entry
}

func (r *Registry) appendEntry(displayName string, category emotion.Category, intensity int, message string) *MoodEntry {
	if intensity < 1 {
		intensity = 1
	}
	if intensity > 10 {
		intensity = 10
	}
	entry := &MoodEntry{
		ID:          r.nextID,
		DisplayName: displayName,
		Category:    category,
		Intensity:   intensity,
		Message:     message,
		CreatedAt:   r.now(),
	}
	r.nextID++
	r.entries = append(r.entries, entry)
	return entry
}

// RecordEcho increments the echo counter of the entry matching id.
func (r *Registry) RecordEcho(id int64) error {
	entry := r.find(id)
	if entry == nil {
		return fmt.Errorf("echo %d: %w", id, ErrNotFound)
	}
	entry.EchoCount++
	r.changed()
	return nil
}

// RecordComment appends a new comment to the entry matching id.
func (r *Registry) RecordComment(id int64, author, text string) (*Comment, error) {
	entry := r.find(id)
	if entry == nil {
		return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	c := Comment{
		ID:        uuid.NewString(),
		Author:    author,
		Text:      text,
		CreatedAt: r.now(),
	}
	entry.Comments = append(entry.Comments, c)
	r.changed()
	return &entry.Comments[len(entry.Comments)-1], nil
}

// Get returns the entry matching id, or nil.
func (r *Registry) Get(id int64) *MoodEntry {
	return r.find(id)
}

func (r *Registry) find(id int64) *MoodEntry {
	for _, e := range r.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Entries returns a snapshot of the current entries in creation order.
// The slice is a copy; the entries themselves are shared.
func (r *Registry) Entries() []*MoodEntry {
	out := make([]*MoodEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Labels returns the emotion label of every current entry, in order.
// This is the summarizer's input and must reflect the full registry.
func (r *Registry) Labels() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Category.Label()
	}
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
