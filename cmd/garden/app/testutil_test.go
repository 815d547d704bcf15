package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"moodgarden/internal/config"
	"moodgarden/internal/empathy"
	"moodgarden/internal/history"
	"moodgarden/internal/registry"
)

// newTestModel builds a model on an in-memory store and a credential-less
// empathy service, so no test ever touches the network: every service call
// short-circuits to its fallback string.
func newTestModel(t *testing.T) Model {
	t.Helper()

	store, err := history.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	reg := registry.New()
	reg.Seed()

	svc := empathy.NewService(empathy.NewClient(empathy.DefaultClientConfig("")))

	cfg := config.DefaultConfig()
	cfg.SyntheticMoods = false

	m := New(cfg, reg, svc, store)
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return resized.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}
