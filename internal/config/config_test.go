package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_MissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	// Should NOT return error, but use defaults
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed for missing default file: %v", err)
	}

	if cfg.Database != DefaultDatabasePath() {
		t.Errorf("Database = %s; want %s", cfg.Database, DefaultDatabasePath())
	}
	if !cfg.Filter.RequirePlayed {
		t.Error("Expected default require_played=true")
	}
	if cfg.Filter.IncludeUnavailable {
		t.Error("Expected default include_unavailable=false")
	}
	if cfg.Display.ColumnWidth != 30 {
		t.Errorf("ColumnWidth = %d; want 30", cfg.Display.ColumnWidth)
	}
	if cfg.Player.BusName != "org.mpris.MediaPlayer2.clementine" {
		t.Errorf("BusName = %s; want the Clementine MPRIS name", cfg.Player.BusName)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "non-existent.toml"))
	if err == nil {
		t.Fatal("LoadConfig succeeded for a missing explicit file")
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
database = "/music/clementine.db"
log_level = "debug"

[filter]
include_unavailable = true
require_played = false

[display]
column_width = 40
color = false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Database != "/music/clementine.db" {
		t.Errorf("Database = %s; want /music/clementine.db", cfg.Database)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s; want debug", cfg.LogLevel)
	}
	f := cfg.LibraryFilter()
	if !f.IncludeUnavailable || f.RequirePlayed {
		t.Errorf("LibraryFilter() = %+v; want include_unavailable and no play requirement", f)
	}
	if cfg.Display.ColumnWidth != 40 || cfg.Display.Color {
		t.Errorf("Display = %+v; want width 40 without color", cfg.Display)
	}
	// Unset keys keep their defaults
	if cfg.Player.BusName != "org.mpris.MediaPlayer2.clementine" {
		t.Errorf("BusName = %s; want default", cfg.Player.BusName)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfig(t, `database = "/from/file.db"`)
	t.Setenv("CLEMSTATS_DATABASE", "/from/env.db")
	t.Setenv("CLEMSTATS_DISPLAY_COLUMN_WIDTH", "12")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Database != "/from/env.db" {
		t.Errorf("Database = %s; want /from/env.db", cfg.Database)
	}
	if cfg.Display.ColumnWidth != 12 {
		t.Errorf("ColumnWidth = %d; want 12", cfg.Display.ColumnWidth)
	}
}

func TestLoadConfig_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := writeConfig(t, `database = "~/music/clementine.db"`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if want := filepath.Join(home, "music", "clementine.db"); cfg.Database != want {
		t.Errorf("Database = %s; want %s", cfg.Database, want)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero column width", "[display]\ncolumn_width = 0\n"},
		{"unknown log level", `log_level = "loud"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("LoadConfig() error = nil; want validation error")
			}
		})
	}
}
