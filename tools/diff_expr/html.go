package diff_expr

import (
	"fmt"
	"html"
	"os"

	common "geo_buddy_go/utils"
)

// WriteHTMLReport writes <filename>.html with the result table and the
// boxplot SVG embedded inline.
func WriteHTMLReport(filename string, c *Comparison, svgBoxPlot string) error {
	path := filename + ".html"
	if err := common.EnsureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	title := html.EscapeString(fmt.Sprintf("%s: %s vs %s", c.Probe, c.Group1, c.Group2))
	g1 := html.EscapeString(c.Group1)
	g2 := html.EscapeString(c.Group2)

	page := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<title>Differential Expression Report - %s</title>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; padding: 20px; background-color: #f9f9f9; }
		h1 { color: #333; }
		table { border-collapse: collapse; margin-top: 20px; }
		th, td { padding: 8px 12px; border: 1px solid #ccc; text-align: left; }
		th { background-color: #eee; }
	</style>
</head>
<body>
	<h1>Differential Expression Report</h1>
	<h2>%s</h2>
	<table>
		<tr><th>Metric</th><th>%s</th><th>%s</th></tr>
		<tr><td>Samples (non-missing)</td><td>%d</td><td>%d</td></tr>
		<tr><td>Mean</td><td>%.4f</td><td>%.4f</td></tr>
		<tr><td>Median</td><td>%.4f</td><td>%.4f</td></tr>
		<tr><td>Std Dev</td><td>%.4f</td><td>%.4f</td></tr>
		<tr><td>Q1</td><td>%.4f</td><td>%.4f</td></tr>
		<tr><td>Q3</td><td>%.4f</td><td>%.4f</td></tr>
		<tr><td>Min</td><td>%.4f</td><td>%.4f</td></tr>
		<tr><td>Max</td><td>%.4f</td><td>%.4f</td></tr>
	</table>
	<table>
		<tr><th>Welch's t-test</th><th>Value</th></tr>
		<tr><td>t-statistic</td><td>%.4f</td></tr>
		<tr><td>Degrees of freedom</td><td>%.2f</td></tr>
		<tr><td>p-value</td><td>%.6g</td></tr>
	</table>
	<h2>Expression by Group</h2>
	<div>%s</div>
</body>
</html>`,
		title, title, g1, g2,
		c.Summary1.N, c.Summary2.N,
		c.Summary1.Mean, c.Summary2.Mean,
		c.Summary1.Median, c.Summary2.Median,
		c.Summary1.SD, c.Summary2.SD,
		c.Summary1.Q1, c.Summary2.Q1,
		c.Summary1.Q3, c.Summary2.Q3,
		c.Summary1.Min, c.Summary2.Min,
		c.Summary1.Max, c.Summary2.Max,
		c.Welch.T, c.Welch.DF, c.Welch.P,
		svgBoxPlot,
	)

	if _, err := f.WriteString(page); err != nil {
		return err
	}
	return nil
}
