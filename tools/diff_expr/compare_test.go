package diff_expr

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"geo_buddy_go/tools/geo_matrix"
)

// Four brain samples, three lung samples and a single heart sample.
const tissueMatrix = `!Series_title	"Panel"
!Series_geo_accession	"GSE0002"
!Series_platform_id	"GPL570"
!Sample_title	"b1"	"b2"	"b3"	"b4"	"l1"	"l2"	"l3"	"h1"
!Sample_geo_accession	"GSM1"	"GSM2"	"GSM3"	"GSM4"	"GSM5"	"GSM6"	"GSM7"	"GSM8"
!Sample_source_name_ch1	"Brain cortex"	"brain"	"Hippocampus"	"Cerebellum"	"Lung"	"lung tissue"	"Bronchus"	"Heart"
!series_matrix_table_begin
"ID_REF"	"GSM1"	"GSM2"	"GSM3"	"GSM4"	"GSM5"	"GSM6"	"GSM7"	"GSM8"
"201210_at"	5.1	4.9	6.2	5.8	8.1	7.4	9.0	6.6
"sparse_at"	1.0	2.0	3.0	4.0	2.0	null	NA	1.0
"flat_at"	4	4	4	4	6	6	6	5
!series_matrix_table_end
`

func loadTissueMatrix(t *testing.T) (*geo_matrix.SeriesMatrix, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "GSE0002_series_matrix.txt")
	if err := os.WriteFile(path, []byte(tissueMatrix), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := geo_matrix.Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return m, path
}

func TestCompareBrainLung(t *testing.T) {
	m, _ := loadTissueMatrix(t)
	c, err := Compare(m, "201210_at", "brain", "LUNG")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if c.Group1 != "Brain" || c.Group2 != "Lung" {
		t.Errorf("groups = %q/%q, want canonical Brain/Lung", c.Group1, c.Group2)
	}
	if len(c.Values1) != 4 || len(c.Values2) != 3 {
		t.Fatalf("values = %v / %v", c.Values1, c.Values2)
	}

	want, err := WelchTTest([]float64{5.1, 4.9, 6.2, 5.8}, []float64{8.1, 7.4, 9.0})
	if err != nil {
		t.Fatalf("welch: %v", err)
	}
	if c.Welch != want {
		t.Errorf("welch = %+v, want %+v", c.Welch, want)
	}
	if c.Welch.T >= 0 || c.Welch.P >= 0.05 {
		t.Errorf("expected brain < lung with p < 0.05, got t=%v p=%v", c.Welch.T, c.Welch.P)
	}
	if math.Abs(c.Summary1.Mean-5.5) > 1e-12 {
		t.Errorf("brain mean = %v, want 5.5", c.Summary1.Mean)
	}
	if math.Abs(c.Summary2.Median-8.1) > 1e-12 {
		t.Errorf("lung median = %v, want 8.1", c.Summary2.Median)
	}
	if c.Summary1.Min != 4.9 || c.Summary1.Max != 6.2 {
		t.Errorf("brain range = %v..%v", c.Summary1.Min, c.Summary1.Max)
	}
}

func TestCompareTrimsProbeID(t *testing.T) {
	m, _ := loadTissueMatrix(t)
	c, err := Compare(m, " 201210_at\t", "Brain", "Lung")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if c.Probe != "201210_at" {
		t.Errorf("probe = %q, want 201210_at", c.Probe)
	}
	if got := PlotFileName(c, "png"); got != "201210_at_Brain_vs_Lung.png" {
		t.Errorf("PlotFileName = %q", got)
	}
}

func TestCompareTooFewValues(t *testing.T) {
	m, _ := loadTissueMatrix(t)

	// lung keeps one value after dropping "null" and "NA"
	_, err := Compare(m, "sparse_at", "Brain", "Lung")
	var serr *StatisticalError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StatisticalError, got %T: %v", err, err)
	}
	if serr.Group != "Lung" || serr.N != 1 {
		t.Errorf("error = %+v, want Lung with 1 value", serr)
	}
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("errors.Is(err, ErrInsufficientData) = false")
	}

	// a single-sample group
	_, err = Compare(m, "201210_at", "Heart", "Brain")
	if !errors.As(err, &serr) || serr.Group != "Heart" {
		t.Fatalf("expected StatisticalError for Heart, got %v", err)
	}
}

func TestCompareUnknownProbe(t *testing.T) {
	m, _ := loadTissueMatrix(t)
	_, err := Compare(m, "NOPROBE_at", "Brain", "Lung")
	var lerr *geo_matrix.LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected LookupError, got %T: %v", err, err)
	}
	if lerr.Kind != "probe" || !strings.Contains(err.Error(), "NOPROBE_at") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCompareUnknownGroup(t *testing.T) {
	m, _ := loadTissueMatrix(t)
	_, err := Compare(m, "201210_at", "Brain", "Liver")
	var lerr *geo_matrix.LookupError
	if !errors.As(err, &lerr) || lerr.Kind != "group" {
		t.Fatalf("expected group LookupError, got %T: %v", err, err)
	}
}

func TestCompareZeroVariance(t *testing.T) {
	m, _ := loadTissueMatrix(t)
	c, err := Compare(m, "flat_at", "Brain", "Lung")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !math.IsNaN(c.Welch.T) || !math.IsNaN(c.Welch.P) {
		t.Errorf("expected NaN statistics, got %+v", c.Welch)
	}
	if c.Summary1.SD != 0 || c.Summary2.SD != 0 {
		t.Errorf("expected zero sd, got %v/%v", c.Summary1.SD, c.Summary2.SD)
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize("G", []float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if s.N != 5 || s.Mean != 3 || s.Median != 3 || s.Min != 1 || s.Max != 5 {
		t.Errorf("unexpected summary %+v", s)
	}
	if math.Abs(s.SD-math.Sqrt(2.5)) > 1e-12 {
		t.Errorf("sd = %v, want %v", s.SD, math.Sqrt(2.5))
	}
	if s.Q1 >= s.Median || s.Q3 <= s.Median {
		t.Errorf("quartiles out of order: %+v", s)
	}
}
