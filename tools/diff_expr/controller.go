package diff_expr

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"geo_buddy_go/config"
	"geo_buddy_go/tools/geo_matrix"
)

// ErrUsage marks invalid command-line input; the flag set has already
// printed its usage.
var ErrUsage = errors.New("invalid arguments")

// newFlagSet returns an isolated flag set for a subcommand. Parse errors are
// returned rather than exiting so main decides the exit status.
func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(fs.Args()) > 0 { // If unparsed arguments remain:
		return fmt.Errorf("%w: unrecognized arguments %v (use -h to view valid flags)", ErrUsage, fs.Args())
	}
	return nil
}

// TissueRules converts the configured rules; no configured rules selects the
// built-in table.
func TissueRules(s *config.Settings) geo_matrix.TissueRules {
	if len(s.TissueRules) == 0 {
		return geo_matrix.DefaultTissueRules
	}
	rules := make(geo_matrix.TissueRules, len(s.TissueRules))
	for i, r := range s.TissueRules {
		rules[i] = geo_matrix.TissueRule{Keyword: r.Keyword, Group: r.Group}
	}
	return rules
}

// PlotOptionsFrom converts the configured figure size in inches.
func PlotOptionsFrom(s *config.Settings) PlotOptions {
	return PlotOptions{
		Width:  vg.Length(s.PlotWidthIn) * vg.Inch,
		Height: vg.Length(s.PlotHeightIn) * vg.Inch,
	}
}

// LoadMatrix loads path with the configured tissue rules and prints a short
// load summary.
func LoadMatrix(w io.Writer, path string, s *config.Settings) (*geo_matrix.SeriesMatrix, error) {
	fmt.Fprintf(w, "\n[1/2] Loading dataset: %s...\n", path)
	m, err := geo_matrix.Load(path, TissueRules(s))
	if err != nil {
		return nil, err
	}
	if m.Series.Accession != "" {
		fmt.Fprintf(w, "Series: %s %s (%s)\n", m.Series.Accession, m.Series.Title, m.Series.Platform)
	}
	fmt.Fprintf(w, "Success: Loaded %d gene probes across %d samples.\n", m.Table.Len(), len(m.Samples))

	unknown := 0
	for _, smp := range m.Samples {
		if smp.Group == geo_matrix.UnknownGroup {
			unknown++
		}
	}
	if unknown > 0 {
		log.Printf("[!] Warning: %d sample(s) matched no tissue rule and are grouped as %s", unknown, geo_matrix.UnknownGroup)
	}
	return m, nil
}

// PrintGroups writes the detected tissue groups with sample counts.
func PrintGroups(w io.Writer, m *geo_matrix.SeriesMatrix) {
	groups := m.Groups()
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = fmt.Sprintf("%s (%d)", g.Group, g.Samples)
	}
	fmt.Fprintln(w, "Available Organs/Tissues:")
	fmt.Fprintln(w, strings.Join(names, " | "))
}

// RunCompare is the geo_compare tool: one probe, two groups, non-interactive.
func RunCompare(args []string, w io.Writer) error {
	fs := newFlagSet("geo_compare", w)
	cfgFile := fs.String("config", "", "YAML config file (default ~/.geo_buddy/config.yaml)")
	matrix := fs.String("matrix", "", "GEO series matrix file, plain or .gz (default from config)")
	probe := fs.String("probe", "", "Probe ID to test (required)")
	group1 := fs.String("group1", "", "First tissue group (required)")
	group2 := fs.String("group2", "", "Second tissue group (required)")
	out := fs.String("out", "", "Plot file; extension selects the format (default <plot_dir>/<probe>_<g1>_vs_<g2>.<plot_format>)")
	csvOut := fs.String("csv", "", "Also write the result to this CSV file")
	htmlOut := fs.String("html", "", "Also write an HTML report with this file prefix")
	bins := fs.Int("bins", -1, "Histogram bins in the console output, 0 disables (default from config)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *probe == "" || *group1 == "" || *group2 == "" {
		fs.Usage()
		return fmt.Errorf("%w: -probe, -group1 and -group2 are required", ErrUsage)
	}

	s, err := config.Load(*cfgFile)
	if err != nil {
		return err
	}
	if *matrix == "" {
		*matrix = s.MatrixFile
	}
	if *bins < 0 {
		*bins = s.HistogramBins
	}

	m, err := LoadMatrix(w, *matrix, s)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "[2/2] Running Welch's t-test...")
	c, err := Compare(m, *probe, *group1, *group2)
	if err != nil {
		return err
	}
	if err := PrintComparison(w, c, *bins); err != nil {
		return err
	}

	plotPath := *out
	if plotPath == "" {
		plotPath = filepath.Join(s.PlotDir, PlotFileName(c, s.PlotFormat))
	}
	if err := RenderBoxPlot(c, plotPath, PlotOptionsFrom(s)); err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	fmt.Fprintf(w, "Wrote boxplot: %s\n", plotPath)

	if *csvOut != "" {
		if err := WriteComparisonCSV(*csvOut, []*Comparison{c}); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote comparison to CSV file: %s\n", *csvOut)
	}
	if *htmlOut != "" {
		svg, err := BoxPlotSVG(c, PlotOptionsFrom(s))
		if err != nil {
			return fmt.Errorf("failed to render SVG: %w", err)
		}
		if err := WriteHTMLReport(*htmlOut, c, svg); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote HTML file: %s.html\n", *htmlOut)
	}
	return nil
}

// RunSearch is the probe_search tool.
func RunSearch(args []string, w io.Writer) error {
	fs := newFlagSet("probe_search", w)
	cfgFile := fs.String("config", "", "YAML config file")
	matrix := fs.String("matrix", "", "GEO series matrix file (default from config)")
	term := fs.String("term", "", "Case-insensitive substring of the probe ID (required)")
	limit := fs.Int("limit", -1, "Maximum matches, 0 for all (default from config)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *term == "" {
		fs.Usage()
		return fmt.Errorf("%w: -term is required", ErrUsage)
	}

	s, err := config.Load(*cfgFile)
	if err != nil {
		return err
	}
	if *matrix == "" {
		*matrix = s.MatrixFile
	}
	if *limit < 0 {
		*limit = s.SearchLimit
	}

	m, err := LoadMatrix(w, *matrix, s)
	if err != nil {
		return err
	}
	printMatches(w, m.Table.Search(*term, *limit))
	return nil
}

func printMatches(w io.Writer, matches []string) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matching probe IDs.")
		return
	}
	fmt.Fprintln(w, "Top matches: ")
	for _, match := range matches {
		fmt.Fprintf(w, " - %s\n", match)
	}
}

// RunGroups is the groups tool: lists detected tissue groups, optionally
// with the per-sample assignment.
func RunGroups(args []string, w io.Writer) error {
	fs := newFlagSet("groups", w)
	cfgFile := fs.String("config", "", "YAML config file")
	matrix := fs.String("matrix", "", "GEO series matrix file (default from config)")
	perSample := fs.Bool("samples", false, "Also list every sample with its description and group")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	s, err := config.Load(*cfgFile)
	if err != nil {
		return err
	}
	if *matrix == "" {
		*matrix = s.MatrixFile
	}
	m, err := LoadMatrix(w, *matrix, s)
	if err != nil {
		return err
	}
	PrintGroups(w, m)

	if *perSample {
		fmt.Fprintln(w)
		for _, smp := range m.Samples {
			desc := smp.Description
			if desc == "" {
				desc = smp.Title
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", smp.ID, smp.Group, desc)
		}
	}
	return nil
}

// RunInitConfig writes the default settings, including the built-in tissue
// rules, so they can be edited.
func RunInitConfig(args []string, w io.Writer) error {
	fs := newFlagSet("init_config", w)
	out := fs.String("out", "", "Destination (default ~/.geo_buddy/config.yaml)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	s := config.Defaults()
	for _, r := range geo_matrix.DefaultTissueRules {
		s.TissueRules = append(s.TissueRules, config.TissueRule{Keyword: r.Keyword, Group: r.Group})
	}
	path, err := config.Save(s, *out)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote config: %s\n", path)
	return nil
}
