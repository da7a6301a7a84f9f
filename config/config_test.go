package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	s, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d := Defaults()
	if s.MatrixFile != d.MatrixFile || s.SearchLimit != 10 || s.PlotFormat != "png" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if len(s.TissueRules) != 0 {
		t.Errorf("expected no tissue rules by default, got %v", s.TissueRules)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "geo.yaml")
	content := "matrix_file: GSE2361_series_matrix.txt.gz\n" +
		"plot_format: svg\n" +
		"tissue_rules:\n" +
		"  - keyword: marrow\n" +
		"    group: Bone Marrow\n" +
		"  - keyword: brain\n" +
		"    group: Brain\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.MatrixFile != "GSE2361_series_matrix.txt.gz" || s.PlotFormat != "svg" {
		t.Errorf("file values not applied: %+v", s)
	}
	if s.SearchLimit != 10 {
		t.Errorf("default search_limit lost: %d", s.SearchLimit)
	}
	want := []TissueRule{{"marrow", "Bone Marrow"}, {"brain", "Brain"}}
	if len(s.TissueRules) != len(want) {
		t.Fatalf("rules = %v, want %v", s.TissueRules, want)
	}
	for i := range want {
		if s.TissueRules[i] != want[i] {
			t.Errorf("rule %d = %v, want %v", i, s.TissueRules[i], want[i])
		}
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEOBUDDY_SEARCH_LIMIT", "25")
	s, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.SearchLimit != 25 {
		t.Fatalf("search_limit = %d, want 25", s.SearchLimit)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

func TestLoadRejectsIncompleteRule(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "geo.yaml")
	if err := os.WriteFile(p, []byte("tissue_rules:\n  - keyword: lung\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err == nil {
		t.Fatal("expected a validation error for a rule without a group")
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	s := Defaults()
	s.HistogramBins = 0
	s.TissueRules = []TissueRule{{Keyword: "retina", Group: "Eye"}}

	path, err := Save(s, filepath.Join(t.TempDir(), "sub", "config.yaml"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.HistogramBins != 0 || len(got.TissueRules) != 1 || got.TissueRules[0].Group != "Eye" {
		t.Fatalf("round trip lost values: %+v", got)
	}
}

func writeHomeConfig(t *testing.T, content string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".geo_buddy")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadHomeConfig(t *testing.T) {
	writeHomeConfig(t, "search_limit: 3\n")
	s, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.SearchLimit != 3 {
		t.Errorf("search limit = %d, want 3", s.SearchLimit)
	}
}

func TestLoadBrokenHomeConfig(t *testing.T) {
	writeHomeConfig(t, "search_limit: [3\n  plot_format: : svg\n")
	if _, err := Load(""); err == nil {
		t.Fatal("expected an error for an unreadable ~/.geo_buddy/config.yaml")
	}
}
