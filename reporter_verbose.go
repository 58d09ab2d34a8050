package mediaq

import (
	"fmt"
	"io"
)

// VerboseReporter prints statistics and the per-block outcome
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs check statistics
func (r *VerboseReporter) PrintStatistics(result CheckResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Media Query Statistics", r.useColors))
	fmt.Fprintln(r.w, "------------------------")

	fmt.Fprintf(r.w, "Target:            %s\n", result.Environment)
	fmt.Fprintf(r.w, "Files Scanned:     %d\n", result.FilesScanned)
	if result.FilesSkipped > 0 {
		fmt.Fprintf(r.w, "Files Skipped:     %d\n", result.FilesSkipped)
	}
	fmt.Fprintf(r.w, "Queries Found:     %d\n", result.QueriesFound)
	fmt.Fprintf(r.w, "Invalid Queries:   %d\n", result.InvalidQueries)
	fmt.Fprintf(r.w, "Never Matching:    %d\n", result.NeverMatching)
	fmt.Fprintf(r.w, "Matching Blocks:   %d\n", result.MatchingBlocks)
	fmt.Fprintf(r.w, "Rules Applied:     %d\n", result.RulesApplied)
}

// PrintMatchProgress shows the share of queries that match the target
func (r *VerboseReporter) PrintMatchProgress(result CheckResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Matching Queries", r.useColors))
	fmt.Fprintln(r.w, "------------------")

	percentage := 0.0
	if result.QueriesFound > 0 {
		percentage = float64(result.MatchingBlocks) / float64(result.QueriesFound) * 100
	}
	printProgressBar(r.w, percentage)
}

// PrintBlocks lists every query with whether it applies to the target
func (r *VerboseReporter) PrintBlocks(result CheckResult) {
	if len(result.Blocks) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Blocks", r.useColors))
	fmt.Fprintln(r.w, "--------")

	for _, b := range result.Blocks {
		var status string
		switch {
		case !b.Valid:
			status = RenderStyle(StyleRed, "invalid ", r.useColors)
		case b.Matches:
			status = RenderStyle(StyleGreen, "match   ", r.useColors)
		default:
			status = RenderStyle(StyleGray, "no match", r.useColors)
		}
		fmt.Fprintf(r.w, "%s %s:%d:%d %s %s", status, b.File, b.Line, b.Column, b.Kind, b.Query)
		if b.Kind == "@media" {
			fmt.Fprintf(r.w, " (%s)", pluralizeCount(b.Rules, "rule", "rules"))
		}
		fmt.Fprintln(r.w)
	}
}

// PrintWarnings shows files that could not be checked
func (r *VerboseReporter) PrintWarnings(result CheckResult) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// printProgressBar prints a visual progress bar
func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}
