package geo_matrix

import (
	"sort"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Sample is one column of the series matrix.
type Sample struct {
	ID              string // GSM accession from the ID_REF header row
	Description     string // !Sample_source_name_ch1
	Title           string // !Sample_title
	Characteristics string // all !Sample_characteristics_ch1 lines, joined with "; "
	Group           string // tissue group assigned by TissueRules
}

// Series holds the series-level metadata shown to the user after a load.
type Series struct {
	Accession string
	Title     string
	Platform  string
}

// ExpressionTable maps probe IDs to one measurement per sample. Missing or
// non-numeric fields are stored as invalid null.Float values.
// The table is read-only once built.
type ExpressionTable struct {
	nSamples int
	probes   []string
	rows     map[string][]null.Float
}

func newExpressionTable(nSamples int) *ExpressionTable {
	return &ExpressionTable{
		nSamples: nSamples,
		rows:     make(map[string][]null.Float),
	}
}

// add inserts a row; it reports false if the probe is already present.
func (t *ExpressionTable) add(probe string, values []null.Float) bool {
	if _, exists := t.rows[probe]; exists {
		return false
	}
	t.rows[probe] = values
	t.probes = append(t.probes, probe)
	return true
}

// Len returns the number of probes.
func (t *ExpressionTable) Len() int { return len(t.probes) }

// Width returns the number of values in every row.
func (t *ExpressionTable) Width() int { return t.nSamples }

// Probes returns the probe IDs in file order.
func (t *ExpressionTable) Probes() []string {
	out := make([]string, len(t.probes))
	copy(out, t.probes)
	return out
}

// Lookup returns a copy of the row for probeID, aligned with the samples.
func (t *ExpressionTable) Lookup(probeID string) ([]null.Float, error) {
	row, ok := t.rows[strings.TrimSpace(probeID)]
	if !ok {
		return nil, &LookupError{Kind: "probe", Key: probeID}
	}
	out := make([]null.Float, len(row))
	copy(out, row)
	return out, nil
}

// Search returns probe IDs containing term (case-insensitive) in file order.
// A limit of zero or less returns every match.
func (t *ExpressionTable) Search(term string, limit int) []string {
	needle := strings.ToLower(strings.TrimSpace(term))
	var matches []string
	for _, probe := range t.probes {
		if strings.Contains(strings.ToLower(probe), needle) {
			matches = append(matches, probe)
			if limit > 0 && len(matches) == limit {
				break
			}
		}
	}
	return matches
}

// SeriesMatrix is a loaded series matrix file: metadata, samples and the
// expression table, with table columns in sample order.
type SeriesMatrix struct {
	Series  Series
	Samples []Sample
	Table   *ExpressionTable
}

// GroupCount is a tissue group with its number of samples.
type GroupCount struct {
	Group   string
	Samples int
}

// Groups lists the detected tissue groups sorted by name.
func (m *SeriesMatrix) Groups() []GroupCount {
	counts := make(map[string]int)
	for _, s := range m.Samples {
		counts[s.Group]++
	}
	out := make([]GroupCount, 0, len(counts))
	for g, n := range counts {
		out = append(out, GroupCount{Group: g, Samples: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}

// ResolveGroup returns the canonical spelling of a group name matched
// case-insensitively, or a LookupError.
func (m *SeriesMatrix) ResolveGroup(name string) (string, error) {
	name = strings.TrimSpace(name)
	for _, s := range m.Samples {
		if strings.EqualFold(s.Group, name) {
			return s.Group, nil
		}
	}
	return "", &LookupError{Kind: "group", Key: name}
}

// GroupValues returns the valid measurements of probe for the samples in
// group, in sample order. Missing values are dropped.
func (m *SeriesMatrix) GroupValues(probe, group string) ([]float64, error) {
	row, err := m.Table.Lookup(probe)
	if err != nil {
		return nil, err
	}
	canonical, err := m.ResolveGroup(group)
	if err != nil {
		return nil, err
	}
	var values []float64
	for i, s := range m.Samples {
		if s.Group != canonical {
			continue
		}
		if row[i].Valid {
			values = append(values, row[i].Float64)
		}
	}
	return values, nil
}
