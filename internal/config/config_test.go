package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"floor too low", func(c *Config) { c.ConfidenceFloor = 0 }, true},
		{"floor too high", func(c *Config) { c.ConfidenceFloor = 101 }, true},
		{"name cap too small", func(c *Config) { c.NameBucketCap = 1 }, true},
		{"phonetic cap too small", func(c *Config) { c.PhoneticBucketCap = 0 }, true},
		{"auto threshold below floor range", func(c *Config) { c.AutoThreshold = 49 }, true},
		{"auto threshold max", func(c *Config) { c.AutoThreshold = 100 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cardmerge.yaml")
	content := `
confidence_floor: 60
auto_threshold: 95
extra_nicknames:
  pepe: jose
extra_generic_domains:
  - freemail.example
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ConfidenceFloor != 60 {
		t.Errorf("ConfidenceFloor = %d, want 60", cfg.ConfidenceFloor)
	}
	if cfg.AutoThreshold != 95 {
		t.Errorf("AutoThreshold = %d, want 95", cfg.AutoThreshold)
	}
	// Unset keys keep defaults.
	if cfg.NameBucketCap != 100 {
		t.Errorf("NameBucketCap = %d, want default 100", cfg.NameBucketCap)
	}
	if cfg.ExtraNicknames["pepe"] != "jose" {
		t.Errorf("ExtraNicknames = %v", cfg.ExtraNicknames)
	}
	if len(cfg.ExtraGenericDomains) != 1 {
		t.Errorf("ExtraGenericDomains = %v", cfg.ExtraGenericDomains)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cardmerge.yaml")
	if err := os.WriteFile(path, []byte("confidence_floor: 60\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CARDMERGE_CONFIDENCE_FLOOR", "70")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ConfidenceFloor != 70 {
		t.Errorf("env override lost: ConfidenceFloor = %d, want 70", cfg.ConfidenceFloor)
	}

	t.Setenv("CARDMERGE_CONFIDENCE_FLOOR", "not-a-number")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed env value")
	}

	t.Setenv("CARDMERGE_CONFIDENCE_FLOOR", "0")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for out-of-range env value")
	}
}
