package history

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"moodgarden/internal/emotion"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestKVGetSetRemove(t *testing.T) {
	s := openTestStore(t)

	if _, ok := s.Get("missing"); ok {
		t.Error("Get on missing key reported present")
	}

	if err := s.Set("k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("k", "v2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if v, ok := s.Get("k"); !ok || v != "v2" {
		t.Errorf("Get = %q,%v, want v2,true", v, ok)
	}

	if err := s.Remove("k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := s.Get("k"); ok {
		t.Error("key still present after Remove")
	}
	if err := s.Remove("k"); err != nil {
		t.Errorf("Remove on absent key: %v", err)
	}
}

func TestDisplayNamePersists(t *testing.T) {
	s := openTestStore(t)
	if got := s.DisplayName(); got != "" {
		t.Errorf("fresh store DisplayName = %q", got)
	}
	if err := s.SetDisplayName("晨曦"); err != nil {
		t.Fatalf("SetDisplayName: %v", err)
	}
	if got := s.DisplayName(); got != "晨曦" {
		t.Errorf("DisplayName = %q", got)
	}
}

func TestMoodLogWriteThrough(t *testing.T) {
	s := openTestStore(t)
	log := LoadMoodLog(s)

	rec := MoodRecord{
		Category:  emotion.Joy,
		Message:   "done!",
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := log.Append(rec); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// Reload from the same store: the append must already be persisted.
	reloaded := LoadMoodLog(s)
	if diff := cmp.Diff(log.Records(), reloaded.Records()); diff != "" {
		t.Errorf("reloaded log differs (-mem +disk):\n%s", diff)
	}
	if reloaded.Len() != 1 {
		t.Fatalf("reloaded Len = %d", reloaded.Len())
	}
}

func TestChatLogWriteThrough(t *testing.T) {
	s := openTestStore(t)
	log := LoadChatLog(s)

	msgs := []ChatMessage{
		{Role: RoleUser, Text: "你好", CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		{Role: RoleAssistant, Text: "你好呀", CreatedAt: time.Date(2025, 6, 1, 10, 0, 5, 0, time.UTC)},
	}
	for _, m := range msgs {
		if err := log.Append(m); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	reloaded := LoadChatLog(s)
	if diff := cmp.Diff(msgs, reloaded.Messages()); diff != "" {
		t.Errorf("reloaded chat log differs:\n%s", diff)
	}
}

func TestMalformedValueLoadsEmpty(t *testing.T) {
	s := openTestStore(t)
	if err := s.Set(KeyMoodHistory, "{definitely not json"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(KeyChatHistory, "[broken"); err != nil {
		t.Fatal(err)
	}

	if got := LoadMoodLog(s).Len(); got != 0 {
		t.Errorf("malformed mood history loaded %d records", got)
	}
	if got := LoadChatLog(s).Len(); got != 0 {
		t.Errorf("malformed chat history loaded %d messages", got)
	}
}

func TestClearEmptiesPersistedLogs(t *testing.T) {
	s := openTestStore(t)

	moods := LoadMoodLog(s)
	chat := LoadChatLog(s)
	moods.Append(MoodRecord{Category: emotion.Calm, Message: "x", CreatedAt: time.Now()})
	chat.Append(ChatMessage{Role: RoleUser, Text: "x", CreatedAt: time.Now()})

	if err := moods.Clear(); err != nil {
		t.Fatalf("moods.Clear: %v", err)
	}
	if err := chat.Clear(); err != nil {
		t.Fatalf("chat.Clear: %v", err)
	}

	if LoadMoodLog(s).Len() != 0 || LoadChatLog(s).Len() != 0 {
		t.Error("clear did not empty the persisted logs")
	}
}
