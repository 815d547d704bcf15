package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.SyntheticIntervalSeconds != 45 {
		t.Errorf("SyntheticIntervalSeconds = %d", cfg.SyntheticIntervalSeconds)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GEMINI_API_KEY", "")

	want := DefaultConfig()
	want.APIKey = "file-key"
	want.DisplayName = "晨曦"
	want.SyntheticMoods = true

	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.APIKey != "file-key" || got.DisplayName != "晨曦" || !got.SyntheticMoods {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestEnvOverridesFileKey(t *testing.T) {
	chdirTemp(t)

	cfg := DefaultConfig()
	cfg.APIKey = "file-key"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Setenv("GEMINI_API_KEY", "env-key")
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env override", got.APIKey)
	}
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("GEMINI_API_KEY", "")

	gardenDir := filepath.Join(dir, ".garden")
	if err := os.MkdirAll(gardenDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(gardenDir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err == nil {
		t.Error("expected parse error for corrupt config")
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Errorf("corrupt config did not fall back to defaults: %+v", cfg)
	}
}
