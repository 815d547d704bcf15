package history

import (
	"encoding/json"
	"time"

	"moodgarden/internal/emotion"
	"moodgarden/internal/logging"
)

// Role tags a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MoodRecord is one personal mood submission. Independent of the registry
// entry it accompanied; written only by the local user's own submissions.
type MoodRecord struct {
	Category  emotion.Category `json:"category"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

// ChatMessage is one turn of the guide chat.
type ChatMessage struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// MoodLog is the persisted append-only log of personal mood submissions.
// Every Append or Clear re-persists the full log write-through.
type MoodLog struct {
	store   *Store
	records []MoodRecord
}

// LoadMoodLog reads the persisted mood log. Missing or malformed data loads
// as an empty log.
func LoadMoodLog(store *Store) *MoodLog {
	l := &MoodLog{store: store}
	raw, ok := store.Get(KeyMoodHistory)
	if !ok {
		return l
	}
	if err := json.Unmarshal([]byte(raw), &l.records); err != nil {
		logging.Get(logging.CategoryStore).Warn("mood history malformed, starting empty: %v", err)
		l.records = nil
	}
	return l
}

// Records returns the records in append order.
func (l *MoodLog) Records() []MoodRecord {
	out := make([]MoodRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *MoodLog) Len() int { return len(l.records) }

// Append adds a record and persists the full log.
func (l *MoodLog) Append(rec MoodRecord) error {
	l.records = append(l.records, rec)
	return l.persist()
}

// Clear empties the log in memory and on disk. The caller is responsible for
// any user confirmation.
func (l *MoodLog) Clear() error {
	l.records = nil
	return l.persist()
}

func (l *MoodLog) persist() error {
	data, err := json.Marshal(l.records)
	if err != nil {
		return err
	}
	return l.store.Set(KeyMoodHistory, string(data))
}

// ChatLog is the persisted append-only log of chat turns.
type ChatLog struct {
	store    *Store
	messages []ChatMessage
}

// LoadChatLog reads the persisted chat log. Missing or malformed data loads
// as an empty log.
func LoadChatLog(store *Store) *ChatLog {
	l := &ChatLog{store: store}
	raw, ok := store.Get(KeyChatHistory)
	if !ok {
		return l
	}
	if err := json.Unmarshal([]byte(raw), &l.messages); err != nil {
		logging.Get(logging.CategoryStore).Warn("chat history malformed, starting empty: %v", err)
		l.messages = nil
	}
	return l
}

// Messages returns the turns in order.
func (l *ChatLog) Messages() []ChatMessage {
	out := make([]ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of turns.
func (l *ChatLog) Len() int { return len(l.messages) }

// Append adds a turn and persists the full log.
func (l *ChatLog) Append(msg ChatMessage) error {
	l.messages = append(l.messages, msg)
	return l.persist()
}

// Clear empties the log in memory and on disk.
func (l *ChatLog) Clear() error {
	l.messages = nil
	return l.persist()
}

func (l *ChatLog) persist() error {
	data, err := json.Marshal(l.messages)
	if err != nil {
		return err
	}
	return l.store.Set(KeyChatHistory, string(data))
}
