package diff_expr

import (
	"fmt"
	"io"
	"os"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/gocarina/gocsv"

	common "geo_buddy_go/utils"
)

// ComparisonRecord is the CSV row written for each comparison.
type ComparisonRecord struct {
	Probe   string  `csv:"probe_id"`
	Group1  string  `csv:"group1"`
	Group2  string  `csv:"group2"`
	N1      int     `csv:"n1"`
	N2      int     `csv:"n2"`
	Mean1   float64 `csv:"mean1"`
	Mean2   float64 `csv:"mean2"`
	Median1 float64 `csv:"median1"`
	Median2 float64 `csv:"median2"`
	SD1     float64 `csv:"sd1"`
	SD2     float64 `csv:"sd2"`
	T       float64 `csv:"t_statistic"`
	DF      float64 `csv:"df"`
	P       float64 `csv:"p_value"`
}

// Record flattens a comparison into its CSV row.
func (c *Comparison) Record() *ComparisonRecord {
	return &ComparisonRecord{
		Probe:   c.Probe,
		Group1:  c.Group1,
		Group2:  c.Group2,
		N1:      c.Summary1.N,
		N2:      c.Summary2.N,
		Mean1:   c.Summary1.Mean,
		Mean2:   c.Summary2.Mean,
		Median1: c.Summary1.Median,
		Median2: c.Summary2.Median,
		SD1:     c.Summary1.SD,
		SD2:     c.Summary2.SD,
		T:       c.Welch.T,
		DF:      c.Welch.DF,
		P:       c.Welch.P,
	}
}

// WriteComparisonCSV writes one row per comparison, with a header line.
func WriteComparisonCSV(path string, comparisons []*Comparison) error {
	records := make([]*ComparisonRecord, 0, len(comparisons))
	for _, c := range comparisons {
		records = append(records, c.Record())
	}

	if err := common.EnsureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	return f.Close()
}

// PrintComparison writes the result block and a histogram of each group.
// bins <= 0 skips the histograms.
func PrintComparison(w io.Writer, c *Comparison, bins int) error {
	fmt.Fprintf(w, "\n--- Results for %s ---\n", c.Probe)
	for _, s := range []GroupSummary{c.Summary1, c.Summary2} {
		fmt.Fprintf(w, "%s Mean: %.4f (median %.4f, sd %.4f, n=%d)\n", s.Group, s.Mean, s.Median, s.SD, s.N)
	}
	fmt.Fprintf(w, "t-statistic: %.4f (df %.2f)\n", c.Welch.T, c.Welch.DF)
	fmt.Fprintf(w, "P-Value: %.6f\n", c.Welch.P)

	if bins <= 0 {
		return nil
	}
	for _, g := range []struct {
		name   string
		values []float64
	}{{c.Group1, c.Values1}, {c.Group2, c.Values2}} {
		fmt.Fprintf(w, "\n%s distribution:\n", g.name)
		hist := histogram.Hist(bins, g.values)
		if err := histogram.Fprint(w, hist, histogram.Linear(30)); err != nil {
			return err
		}
	}
	return nil
}
