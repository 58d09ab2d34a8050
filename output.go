package mediaq

import (
	"fmt"
	"io"
	"os"
)

// OutputFormat represents the check output format
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics and the per-block outcome without issues
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues, statistics and blocks
	OutputFull OutputFormat = "full"
	// OutputJSON exports machine-readable JSON
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the output format from the flag value.
// Unknown values fall back to the default.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Quiet wins (exit code only); output is suppressed by the caller
	if quiet {
		return OutputIssues
	}

	switch OutputFormat(formatFlag) {
	case OutputIssues, OutputSummary, OutputFull, OutputJSON:
		return OutputFormat(formatFlag)
	}

	return DetermineDefaultOutputFormat()
}

// DetermineDefaultOutputFormat returns the default output format
// Following golangci-lint's UX: issues only by default
func DetermineDefaultOutputFormat() OutputFormat {
	return OutputIssues
}

// WriteOutput writes the check result in the specified format
func WriteOutput(w io.Writer, result *CheckResult, format OutputFormat, config CheckConfig) {
	switch format {
	case OutputIssues:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

	case OutputSummary:
		verboseReporter := NewVerboseReporter(w, ShouldUseColors(config.UseColors))
		verboseReporter.PrintStatistics(*result)
		verboseReporter.PrintMatchProgress(*result)
		verboseReporter.PrintBlocks(*result)
		verboseReporter.PrintWarnings(*result)

	case OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

		verboseReporter := NewVerboseReporter(w, reporter.UseColors())
		verboseReporter.PrintStatistics(*result)
		verboseReporter.PrintMatchProgress(*result)
		verboseReporter.PrintBlocks(*result)
		verboseReporter.PrintWarnings(*result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		}
	}
}
