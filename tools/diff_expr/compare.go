package diff_expr

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"geo_buddy_go/tools/geo_matrix"
)

// GroupSummary describes the non-missing values of one group.
type GroupSummary struct {
	Group  string
	N      int
	Mean   float64
	Median float64
	SD     float64 // sample standard deviation
	Q1, Q3 float64
	Min    float64
	Max    float64
}

// Comparison is a probe tested between two tissue groups.
type Comparison struct {
	Probe    string
	Group1   string
	Group2   string
	Values1  []float64
	Values2  []float64
	Summary1 GroupSummary
	Summary2 GroupSummary
	Welch    WelchResult
}

// Compare looks up probe, splits its values into group1 and group2 (missing
// values dropped) and runs Welch's t-test. Group names are matched
// case-insensitively and reported in their canonical spelling.
func Compare(m *geo_matrix.SeriesMatrix, probe, group1, group2 string) (*Comparison, error) {
	probe = strings.TrimSpace(probe)
	if _, err := m.Table.Lookup(probe); err != nil {
		return nil, err
	}
	g1, err := m.ResolveGroup(group1)
	if err != nil {
		return nil, err
	}
	g2, err := m.ResolveGroup(group2)
	if err != nil {
		return nil, err
	}

	v1, err := m.GroupValues(probe, g1)
	if err != nil {
		return nil, err
	}
	v2, err := m.GroupValues(probe, g2)
	if err != nil {
		return nil, err
	}
	if len(v1) < minGroupSize {
		return nil, &StatisticalError{Group: g1, N: len(v1)}
	}
	if len(v2) < minGroupSize {
		return nil, &StatisticalError{Group: g2, N: len(v2)}
	}

	welch, err := WelchTTest(v1, v2)
	if err != nil {
		return nil, err
	}
	s1, err := Summarize(g1, v1)
	if err != nil {
		return nil, err
	}
	s2, err := Summarize(g2, v2)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Probe:    probe,
		Group1:   g1,
		Group2:   g2,
		Values1:  v1,
		Values2:  v2,
		Summary1: s1,
		Summary2: s2,
		Welch:    welch,
	}, nil
}

// Summarize computes descriptive statistics for a non-empty group.
func Summarize(group string, values []float64) (GroupSummary, error) {
	data := stats.LoadRawData(values)
	out := GroupSummary{Group: group, N: data.Len()}

	var err error
	if out.Mean, err = data.Mean(); err != nil {
		return out, fmt.Errorf("summarize %s: %w", group, err)
	}
	if out.Median, err = data.Median(); err != nil {
		return out, fmt.Errorf("summarize %s: %w", group, err)
	}
	if out.Min, err = data.Min(); err != nil {
		return out, fmt.Errorf("summarize %s: %w", group, err)
	}
	if out.Max, err = data.Max(); err != nil {
		return out, fmt.Errorf("summarize %s: %w", group, err)
	}
	if data.Len() > 1 {
		if out.SD, err = stats.StandardDeviationSample(data); err != nil {
			return out, fmt.Errorf("summarize %s: %w", group, err)
		}
	}
	q, err := stats.Quartile(data)
	if err != nil {
		return out, fmt.Errorf("summarize %s: %w", group, err)
	}
	out.Q1, out.Q3 = q.Q1, q.Q3
	return out, nil
}
