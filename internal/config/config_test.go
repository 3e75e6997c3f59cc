package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	if err := c.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if c.Scrape.StandingsURL == "" {
		t.Error("expected a default standings URL")
	}
	if c.Rank.Regression != 0.40 || c.Rank.Profile != 0.40 || c.Rank.WinPct != 0.20 {
		t.Errorf("unexpected default rank weights: %+v", c.Rank)
	}
	if c.Profile.WinPct != 0.40 {
		t.Errorf("unexpected default profile weights: %+v", c.Profile)
	}
}

func TestLoadFileMissing(t *testing.T) {
	c, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if c.Scrape.Delay != "3s" {
		t.Errorf("expected defaults for a missing file, got delay %q", c.Scrape.Delay)
	}
}

func TestLoadFilePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[scrape]
delay = "10s"

[rank]
regression = 0.5
profile = 0.3
win_pct = 0.2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if c.Scrape.Delay != "10s" {
		t.Errorf("expected overridden delay, got %q", c.Scrape.Delay)
	}
	// Values the file doesn't name keep their defaults.
	if c.Scrape.StandingsURL == "" {
		t.Error("expected default standings URL to survive a partial file")
	}
	if c.Rank.Regression != 0.5 {
		t.Errorf("expected overridden rank weights, got %+v", c.Rank)
	}

	d, err := c.GetScrapeDelay()
	if err != nil {
		t.Fatalf("GetScrapeDelay failed: %v", err)
	}
	if d != 10*time.Second {
		t.Errorf("expected 10s, got %v", d)
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[scrape\ndelay = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad delay", func(c *Config) { c.Scrape.Delay = "soon" }, true},
		{"empty standings URL", func(c *Config) { c.Scrape.StandingsURL = "" }, true},
		{"profile weights off unit sum", func(c *Config) { c.Profile.WinPct = 0.9 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
