package registry

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"moodgarden/internal/emotion"
)

func fixedClock() func() time.Time {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestAppendAssignsOrderedUniqueIDs(t *testing.T) {
	r := New(WithClock(fixedClock()))

	a := r.Append("A", emotion.Joy, 8, "done!")
	b := r.Append("B", emotion.Calm, 5, "ok")

	if a.ID >= b.ID {
		t.Errorf("ids not creation-ordered: %d then %d", a.ID, b.ID)
	}
	if a.EchoCount != 0 || len(a.Comments) != 0 {
		t.Errorf("new entry not pristine: echoes=%d comments=%d", a.EchoCount, len(a.Comments))
	}
	if got := r.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
}

func TestAppendClampsIntensity(t *testing.T) {
	r := New()
	lo := r.Append("x", emotion.Joy, 0, "")
	hi := r.Append("y", emotion.Joy, 99, "")
	if lo.Intensity != 1 {
		t.Errorf("low intensity clamped to %d, want 1", lo.Intensity)
	}
	if hi.Intensity != 10 {
		t.Errorf("high intensity clamped to %d, want 10", hi.Intensity)
	}
}

func TestRecordEchoOnlyIncrements(t *testing.T) {
	r := New()
	e := r.Append("A", emotion.Anger, 6, "grr")

	for want := 1; want <= 5; want++ {
		if err := r.RecordEcho(e.ID); err != nil {
			t.Fatalf("RecordEcho: %v", err)
		}
		if e.EchoCount != want {
			t.Fatalf("EchoCount = %d, want %d", e.EchoCount, want)
		}
	}

	if err := r.RecordEcho(9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("echo on absent id: err = %v, want ErrNotFound", err)
	}
	if e.EchoCount != 5 {
		t.Errorf("failed echo changed count to %d", e.EchoCount)
	}
}

func TestRecordCommentGrowsList(t *testing.T) {
	r := New(WithClock(fixedClock()))
	e := r.Append("A", emotion.Sadness, 4, "")

	c1, err := r.RecordComment(e.ID, "B", "抱抱")
	if err != nil {
		t.Fatalf("RecordComment: %v", err)
	}
	c2, err := r.RecordComment(e.ID, "C", "会好起来的")
	if err != nil {
		t.Fatalf("RecordComment: %v", err)
	}

	if len(e.Comments) != 2 {
		t.Fatalf("comment list length = %d, want 2", len(e.Comments))
	}
	if c1.ID == c2.ID || c1.ID == "" {
		t.Errorf("comment ids not unique: %q vs %q", c1.ID, c2.ID)
	}
	if !e.Comments[1].CreatedAt.After(e.Comments[0].CreatedAt) {
		t.Error("comments not in creation order")
	}

	if _, err := r.RecordComment(12345, "B", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("comment on absent id: err = %v, want ErrNotFound", err)
	}
}

func TestColorDerivesFromCategory(t *testing.T) {
	r := New()
	e := r.Append("A", emotion.Anxiety, 5, "")
	if e.Color() != emotion.Anxiety.Hex() {
		t.Errorf("Color() = %q, want table value %q", e.Color(), emotion.Anxiety.Hex())
	}
}

func TestInjectSyntheticTruncatesToWindow(t *testing.T) {
	r := New(WithRand(rand.New(rand.NewSource(42))))
	r.Seed()

	for i := 0; i < 30; i++ {
		r.InjectSynthetic()
	}

	if r.Len() != maxEntries {
		t.Fatalf("Len = %d, want %d after synthetic churn", r.Len(), maxEntries)
	}

	entries := r.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i].ID <= entries[i-1].ID {
			t.Fatalf("order broken after truncation: %d then %d", entries[i-1].ID, entries[i].ID)
		}
	}
}

func TestOnChangeFires(t *testing.T) {
	r := New()
	fired := 0
	r.SetOnChange(func() { fired++ })

	e := r.Append("A", emotion.Joy, 5, "")
	r.RecordEcho(e.ID)
	r.RecordComment(e.ID, "B", "hi")
	r.Seed()

	if fired != 4 {
		t.Errorf("onChange fired %d times, want 4", fired)
	}
}

func TestLabelsReflectFullRegistry(t *testing.T) {
	r := New()
	r.Append("A", emotion.Joy, 5, "")
	r.Append("B", emotion.Fatigue, 5, "")

	labels := r.Labels()
	if len(labels) != 2 || labels[0] != "喜悦" || labels[1] != "疲惫" {
		t.Errorf("Labels = %v", labels)
	}
}
