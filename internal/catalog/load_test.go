package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoadFileTOML(t *testing.T) {
	path := writeFile(t, "plants.toml", `
[[plants]]
name = "carrot"
grow_time = "24h"

[[plants]]
name = "radish"
grow_time_seconds = 1800
`)
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if d, ok := c.Lookup("radish"); !ok || d != 30*time.Minute {
		t.Fatalf("unexpected radish grow time: %v %v", d, ok)
	}
	if d, _ := c.Lookup("carrot"); d != 24*time.Hour {
		t.Fatalf("unexpected carrot grow time: %v", d)
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "plants.yaml", `
plants:
  - name: onion
    grow_time: 1h
  - name: potato
    grow_time_seconds: 60
`)
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if got := c.Names(); len(got) != 2 || got[0] != "onion" || got[1] != "potato" {
		t.Fatalf("unexpected names: %v", got)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "unknown toml key", file: "a.toml", content: "[[plants]]\nname = \"kale\"\ngrow_time = \"1h\"\ncolour = \"green\"\n"},
		{name: "unknown yaml key", file: "a.yaml", content: "plants:\n  - name: kale\n    grow_time: 1h\n    colour: green\n"},
		{name: "both grow times", file: "a.toml", content: "[[plants]]\nname = \"kale\"\ngrow_time = \"1h\"\ngrow_time_seconds = 3600\n"},
		{name: "missing grow time", file: "a.toml", content: "[[plants]]\nname = \"kale\"\n"},
		{name: "bad duration", file: "a.toml", content: "[[plants]]\nname = \"kale\"\ngrow_time = \"soon\"\n"},
		{name: "duplicate", file: "a.yml", content: "plants:\n  - {name: kale, grow_time: 1h}\n  - {name: kale, grow_time: 2h}\n"},
		{name: "missing name", file: "a.toml", content: "[[plants]]\ngrow_time = \"1h\"\n"},
		{name: "empty", file: "a.toml", content: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadFile(writeFile(t, tc.file, tc.content)); err == nil {
				t.Fatalf("expected load error")
			}
		})
	}
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	_, err := LoadFile(writeFile(t, "plants.json", `{}`))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}
