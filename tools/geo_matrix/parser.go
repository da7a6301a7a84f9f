package geo_matrix

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"

	common "geo_buddy_go/utils"
)

// Series matrix line tags
const (
	tableBegin     = "!series_matrix_table_begin"
	tableEnd       = "!series_matrix_table_end"
	idRefHeader    = "ID_REF"
	tagAccession   = "!Sample_geo_accession"
	tagSource      = "!Sample_source_name_ch1"
	tagTitle       = "!Sample_title"
	tagCharacter   = "!Sample_characteristics_ch1"
	tagSeriesTitle = "!Series_title"
	tagSeriesAcc   = "!Series_geo_accession"
	tagSeriesPlat  = "!Series_platform_id"
)

// Load reads a GEO series matrix file (plain or gzip) and classifies every
// sample with rules. A nil or empty rule set falls back to DefaultTissueRules.
func Load(path string, rules TissueRules) (*SeriesMatrix, error) {
	rc, err := common.OpenMaybeGzip(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer rc.Close()

	m, err := Parse(rc, rules)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &FileAccessError{Path: path, Err: err}
	}
	return m, nil
}

// metadata collects the !Sample_ and !Series_ lines ahead of the table.
type metadata struct {
	series          Series
	accessions      []string
	accessionLine   int
	sources         []string
	sourceLine      int
	titles          []string
	titleLine       int
	characteristics [][]string
	characterLines  []int
}

// Parse reads a series matrix from r. Read failures are returned as-is;
// structural problems are returned as *ParseError.
func Parse(r io.Reader, rules TissueRules) (*SeriesMatrix, error) {
	if len(rules) == 0 {
		rules = DefaultTissueRules
	}

	scanner := common.NewLineScanner(r)
	var (
		meta     metadata
		table    *ExpressionTable
		ids      []string
		lineNo   int
		inTable  bool
		finished bool
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !inTable {
			if strings.HasPrefix(line, tableBegin) {
				inTable = true
				continue
			}
			meta.read(line, lineNo)
			continue
		}

		if strings.HasPrefix(line, tableEnd) {
			finished = true
			break
		}

		fields := splitFields(line)
		if table == nil { // First table line is the ID_REF header
			if fields[0] != idRefHeader {
				return nil, parseErrorf(lineNo, "expected %s header after %s, found %q", idRefHeader, tableBegin, fields[0])
			}
			ids = fields[1:]
			if len(ids) == 0 {
				return nil, parseErrorf(lineNo, "%s header lists no samples", idRefHeader)
			}
			table = newExpressionTable(len(ids))
			continue
		}

		if len(fields) != len(ids)+1 {
			return nil, parseErrorf(lineNo, "probe row has %d values, expected %d", len(fields)-1, len(ids))
		}
		probe := fields[0]
		if probe == "" {
			return nil, parseErrorf(lineNo, "probe row without an ID")
		}
		values := make([]null.Float, len(ids))
		for i, raw := range fields[1:] {
			values[i] = parseMeasurement(raw)
		}
		if !table.add(probe, values) {
			return nil, parseErrorf(lineNo, "duplicate probe ID %q", probe)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}

	switch {
	case !inTable:
		return nil, parseErrorf(0, "no %s marker, not a series matrix file", tableBegin)
	case table == nil:
		return nil, parseErrorf(lineNo, "data section has no %s header", idRefHeader)
	case !finished:
		return nil, parseErrorf(lineNo, "data section is not closed by %s (truncated file?)", tableEnd)
	case table.Len() == 0:
		return nil, parseErrorf(0, "data section contains no probe rows")
	}

	samples, err := meta.samples(ids, rules)
	if err != nil {
		return nil, err
	}
	return &SeriesMatrix{Series: meta.series, Samples: samples, Table: table}, nil
}

func (m *metadata) read(line string, lineNo int) {
	fields := splitFields(line)
	tag, values := fields[0], fields[1:]
	switch tag {
	case tagAccession:
		m.accessions, m.accessionLine = values, lineNo
	case tagSource:
		m.sources, m.sourceLine = values, lineNo
	case tagTitle:
		m.titles, m.titleLine = values, lineNo
	case tagCharacter:
		m.characteristics = append(m.characteristics, values)
		m.characterLines = append(m.characterLines, lineNo)
	case tagSeriesTitle:
		m.series.Title = strings.Join(values, " ")
	case tagSeriesAcc:
		m.series.Accession = strings.Join(values, " ")
	case tagSeriesPlat:
		m.series.Platform = strings.Join(values, " ")
	}
}

// samples builds the sample list in table column order and checks that every
// per-sample metadata line agrees with the ID_REF header.
func (m *metadata) samples(ids []string, rules TissueRules) ([]Sample, error) {
	n := len(ids)
	if m.accessions != nil {
		if len(m.accessions) != n {
			return nil, parseErrorf(m.accessionLine, "%s lists %d samples, data header has %d", tagAccession, len(m.accessions), n)
		}
		for i := range ids {
			if m.accessions[i] != ids[i] {
				return nil, parseErrorf(m.accessionLine, "sample %d is %q in %s but %q in the data header", i+1, m.accessions[i], tagAccession, ids[i])
			}
		}
	}
	if m.sources != nil && len(m.sources) != n {
		return nil, parseErrorf(m.sourceLine, "%s lists %d samples, data header has %d", tagSource, len(m.sources), n)
	}
	if m.titles != nil && len(m.titles) != n {
		return nil, parseErrorf(m.titleLine, "%s lists %d samples, data header has %d", tagTitle, len(m.titles), n)
	}
	for i, c := range m.characteristics {
		if len(c) != n {
			return nil, parseErrorf(m.characterLines[i], "%s lists %d samples, data header has %d", tagCharacter, len(c), n)
		}
	}

	if m.sources == nil && m.titles == nil && len(m.characteristics) == 0 {
		return nil, parseErrorf(0, "no !Sample_ description lines, not a series matrix header")
	}

	samples := make([]Sample, n)
	for i, id := range ids {
		s := Sample{ID: id}
		if m.sources != nil {
			s.Description = m.sources[i]
		}
		if m.titles != nil {
			s.Title = m.titles[i]
		}
		var traits []string
		for _, c := range m.characteristics {
			if c[i] != "" {
				traits = append(traits, c[i])
			}
		}
		s.Characteristics = strings.Join(traits, "; ")
		s.Group = rules.Classify(s.Description, s.Characteristics, s.Title)
		samples[i] = s
	}
	return samples, nil
}

// splitFields splits a tab-delimited line and strips the surrounding quotes
// GEO puts on text fields. The result always has at least one element.
func splitFields(line string) []string {
	fields := strings.Split(line, "\t")
	for i, f := range fields {
		fields[i] = strings.Trim(f, "\" ")
	}
	return fields
}

// parseMeasurement converts a value field. Anything that is not a finite
// number becomes an invalid (missing) measurement.
func parseMeasurement(raw string) null.Float {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return null.Float{}
	}
	return null.FloatFrom(v)
}
