package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/nvr-ai/go-eval/evaluation"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	goodColor   = color.New(color.FgGreen)
	weakColor   = color.New(color.FgYellow)
	missColor   = color.New(color.FgRed)
)

// apColor picks the highlight of an AP value: red at zero, yellow below
// half, green otherwise.
func apColor(ap float64) *color.Color {
	switch {
	case ap <= 0:
		return missColor
	case ap < 50:
		return weakColor
	default:
		return goodColor
	}
}

// PrintSummary writes the report lines of a result with AP highlighting.
func PrintSummary(w io.Writer, res *evaluation.Result) {
	title := res.LabelType
	if title == "" {
		title = "results"
	}
	headerColor.Fprintf(w, "== %s ==\n", title)
	for _, c := range res.Classes {
		apColor(c.AP).Fprintln(w, c.String())
	}
	if len(res.APStrs) > len(res.Classes) {
		fmt.Fprintln(w, res.APStrs[len(res.APStrs)-1])
	}
	headerColor.Fprintf(w, "mAP: %.2f\n", res.MAP)
}
