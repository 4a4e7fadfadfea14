// Package report renders a bootstrap run record as a markdown summary and,
// for the HTTP API, as HTML.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"bootstat/domain/run"
)

const histogramBins = 20

// BuildMarkdown renders one run record as a markdown report: verdict,
// per-component interval table, and a textual histogram of the first
// component of the bootstrap distribution.
func BuildMarkdown(record *run.Record) string {
	result := record.Result
	var b strings.Builder

	verdict := "PASSED"
	if !record.Passed {
		verdict = "FAILED"
	}
	fmt.Fprintf(&b, "# Bootstrap test %s: %s\n\n", record.Name, verdict)
	fmt.Fprintf(&b, "- Statistic: `%s`\n", record.Statistic)
	fmt.Fprintf(&b, "- Sample size: %d, resamples: %d\n", result.SampleSize, result.Resamples)
	fmt.Fprintf(&b, "- Alpha: %g (corrected: %g)\n\n", result.Alpha, result.AlphaCorrected)

	b.WriteString("| Component | Reference | Lower | Upper | Median | IQR | Z-score | Within |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for i := 0; i < result.Components(); i++ {
		c := result.Component(i)
		fmt.Fprintf(&b, "| %d | %.6g | %.6g | %.6g | %.6g | %.6g | %.3f | %v |\n",
			i, c.Reference, c.Lower, c.Upper, c.Median, c.IQR, c.ZScore, c.Within())
	}
	b.WriteString("\n")

	if result.Components() > 0 && len(result.Statistics) > 0 {
		b.WriteString("## Bootstrap distribution (component 0)\n\n")
		b.WriteString("```\n")
		b.WriteString(histogram(result.Column(0)))
		b.WriteString("```\n")
	}
	return b.String()
}

// RenderHTML converts a markdown report to an HTML document fragment.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

// histogram bins a distribution column into a fixed-width ASCII chart.
func histogram(column []float64) string {
	low, high := column[0], column[0]
	for _, v := range column {
		low = math.Min(low, v)
		high = math.Max(high, v)
	}
	if low == high {
		return fmt.Sprintf("%10.4g | all %d values\n", low, len(column))
	}

	counts := make([]int, histogramBins)
	width := (high - low) / histogramBins
	for _, v := range column {
		bin := int((v - low) / width)
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		counts[bin]++
	}

	peak := 0
	for _, count := range counts {
		if count > peak {
			peak = count
		}
	}

	var b strings.Builder
	for i, count := range counts {
		bar := strings.Repeat("#", int(math.Round(40*float64(count)/float64(peak))))
		fmt.Fprintf(&b, "%10.4g | %-40s %d\n", low+float64(i)*width, bar, count)
	}
	return b.String()
}
