package diff_expr

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteComparisonCSV(t *testing.T) {
	c := brainLung(t)
	path := filepath.Join(t.TempDir(), "out", "results.csv")
	if err := WriteComparisonCSV(path, []*Comparison{c}); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	header := strings.Join(rows[0], ",")
	for _, col := range []string{"probe_id", "group1", "group2", "t_statistic", "p_value"} {
		if !strings.Contains(header, col) {
			t.Errorf("header %q lacks %s", header, col)
		}
	}
	if rows[1][0] != "201210_at" || rows[1][1] != "Brain" || rows[1][2] != "Lung" {
		t.Errorf("unexpected row %v", rows[1])
	}
}

func TestPrintComparison(t *testing.T) {
	c := brainLung(t)

	var buf bytes.Buffer
	if err := PrintComparison(&buf, c, 0); err != nil {
		t.Fatalf("print: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"--- Results for 201210_at ---", "Brain Mean: 5.5000", "Lung Mean:", "t-statistic:", "P-Value:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "distribution") {
		t.Errorf("bins=0 should not print histograms")
	}

	buf.Reset()
	if err := PrintComparison(&buf, c, 3); err != nil {
		t.Fatalf("print with histogram: %v", err)
	}
	if !strings.Contains(buf.String(), "Brain distribution:") || !strings.Contains(buf.String(), "Lung distribution:") {
		t.Errorf("expected a histogram per group:\n%s", buf.String())
	}
}

func TestWriteHTMLReport(t *testing.T) {
	c := brainLung(t)
	svg, err := BoxPlotSVG(c, DefaultPlotOptions)
	if err != nil {
		t.Fatalf("svg: %v", err)
	}
	prefix := filepath.Join(t.TempDir(), "report")
	if err := WriteHTMLReport(prefix, c, svg); err != nil {
		t.Fatalf("html: %v", err)
	}
	page, err := os.ReadFile(prefix + ".html")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "201210_at: Brain vs Lung", "<svg"} {
		if !strings.Contains(string(page), want) {
			t.Errorf("report lacks %q", want)
		}
	}
}
