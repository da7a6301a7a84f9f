package diff_expr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"geo_buddy_go/config"
)

// prompter reads one trimmed line per question.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.w, question)
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Interactive runs the prompt-driven session used when geo_buddy is started
// without arguments: choose a file, then search probes or compare two groups
// until the user exits. Load, lookup and statistical failures end the session
// with an error.
func Interactive(in io.Reader, w io.Writer, s *config.Settings) error {
	p := &prompter{r: bufio.NewReader(in), w: w}

	path, err := p.ask(fmt.Sprintf("Series matrix file [%s]: ", s.MatrixFile))
	if err != nil {
		return fmt.Errorf("reading file name: %w", err)
	}
	if path == "" {
		path = s.MatrixFile
	}

	m, err := LoadMatrix(w, path, s)
	if err != nil {
		return err
	}

	for {
		fmt.Fprintln(w, "\n"+strings.Repeat("*", 5)+"GENE EXPRESSION COMPARISON TOOL"+strings.Repeat("*", 5))
		fmt.Fprintln(w, "1. Search for a Gene/Probe ID\n2. Compare Two Organs\n3. Exit")
		choice, err := p.ask("\nAction (1-3): ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			term, err := p.ask("Search term: ")
			if err != nil {
				return fmt.Errorf("reading search term: %w", err)
			}
			printMatches(w, m.Table.Search(term, s.SearchLimit))

		case "2":
			fmt.Fprintln(w, "\n"+strings.Repeat("=", 30)+"\n      ANALYSIS MENU\n"+strings.Repeat("=", 30))
			PrintGroups(w, m)
			fmt.Fprintln(w, strings.Repeat("-", 30))

			probe, err := p.ask("\nEnter Probe ID: ")
			if err != nil {
				return fmt.Errorf("reading probe ID: %w", err)
			}
			if _, err := m.Table.Lookup(probe); err != nil {
				return err
			}
			g1, err := p.ask("Enter Group 1 Name: ")
			if err != nil {
				return fmt.Errorf("reading group 1: %w", err)
			}
			g2, err := p.ask("Enter Group 2 Name: ")
			if err != nil {
				return fmt.Errorf("reading group 2: %w", err)
			}

			c, err := Compare(m, probe, g1, g2)
			if err != nil {
				return err
			}
			if err := PrintComparison(w, c, s.HistogramBins); err != nil {
				return err
			}
			plotPath := filepath.Join(s.PlotDir, PlotFileName(c, s.PlotFormat))
			if err := RenderBoxPlot(c, plotPath, PlotOptionsFrom(s)); err != nil {
				return fmt.Errorf("failed to render plot: %w", err)
			}
			fmt.Fprintf(w, "Saved boxplot: %s\n", plotPath)

		case "3":
			fmt.Fprintln(w, "Thank you for using the Gene Expression Comparison Tool!")
			return nil

		default:
			fmt.Fprintln(w, "Please choose 1, 2 or 3.")
		}
	}
}
