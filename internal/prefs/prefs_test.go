package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func writePrefs(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_FallsBackPerField(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Prefs
	}{
		{"empty file", "", Default()},
		{"theme only", "theme = \"Slate\"\n", Prefs{Theme: "Slate", Sort: "date"}},
		{"sort is trimmed and lowercased", "sort = \" Title \"\n", Prefs{Theme: "Nightfox", Sort: "title"}},
		{"unknown sort", "theme = \"Slate\"\nsort = \"rating\"\n", Prefs{Theme: "Slate", Sort: "date"}},
		{"blank theme", "theme = \"  \"\nsort = \"price\"\n", Prefs{Theme: "Nightfox", Sort: "price"}},
		{"malformed toml", "not valid toml {{{\n", Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writePrefs(t, tt.body))
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Load = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestLoad_DefaultLocationUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got, _ := Load(""); got != Default() {
		t.Fatalf("Load without a file = %#v, want defaults", got)
	}

	dir := filepath.Join(home, ".config", "setlist")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("sort = \"price\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got, _ := Load(""); got.Sort != "price" {
		t.Fatalf("Load(\"\").Sort = %q, want price", got.Sort)
	}
}

func TestSave_RoundTripsAndLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path := filepath.Join(dir, "prefs.toml")

	want := Prefs{Theme: "Slate", Sort: "title"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := Save(path, Prefs{Theme: "Slate", Sort: "price"}); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	got, _ := Load(path)
	if got.Sort != "price" || got.Theme != "Slate" {
		t.Fatalf("Load after overwrite = %#v", got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dir holds %d entries, want only prefs.toml", len(entries))
	}
}

func TestSave_NormalizesBeforeWriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := Save(path, Prefs{Sort: "PRICE"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	got, _ := Load(path)
	if got != (Prefs{Theme: "Nightfox", Sort: "price"}) {
		t.Fatalf("stored prefs = %q, loaded %#v", raw, got)
	}
}
