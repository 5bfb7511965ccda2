package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	for _, key := range []string{"fire", "earthquake", "flood", "severe_weather", "electrical"} {
		if !c.HasCategory(key) {
			t.Fatalf("default catalog missing category %q", key)
		}
	}
	if c.HasCategory("asteroid") {
		t.Fatalf("unexpected category")
	}
	for _, tier := range []string{"1", "2", "3", "4", "5"} {
		if !c.HasQuizTier(tier) {
			t.Fatalf("default catalog missing quiz tier %q", tier)
		}
	}
	if c.HasQuizTier("6") {
		t.Fatalf("unexpected quiz tier")
	}
	if got := len(c.CategoryKeys()); got != 5 {
		t.Fatalf("CategoryKeys: expected 5, got %d", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := []byte(`
categories:
  - key: fire
    title: Fire Safety
    drills:
      - id: fire_evacuation
        title: Building Evacuation
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.HasCategory("fire") {
		t.Fatalf("expected fire category")
	}
	// Tiers default when the file omits them.
	if !c.HasQuizTier("5") {
		t.Fatalf("expected default quiz tiers")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("categories: []\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(empty); err == nil {
		t.Fatalf("expected error for empty catalog")
	}
}
