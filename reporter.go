package mediaq

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Reporter handles formatting and outputting check results
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config CheckConfig) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       ShouldUseColors(config.UseColors),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}

	// FORCE_COLOR is honored by GitHub Actions and most CI systems
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	// Sort issues by file, then line, then column
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})

	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	// Format: file:line:col: message (linter)
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := BuildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// BuildCaretIndicator creates the "^" indicator aligned with the 1-based
// column. Tabs in the prefix are kept so the caret lines up with the source.
func BuildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result CheckResult) {
	totalIssues := len(result.Issues)
	truncated := result.TruncatedCount
	errors := result.ErrorCount()
	warnings := result.WarningCount()

	fmt.Fprintln(r.w, "")

	// Show severity breakdown if we have both types
	if errors > 0 && warnings > 0 {
		if truncated > 0 {
			fmt.Fprintf(r.w, "%s (%s, %s; %s truncated):\n",
				pluralizeCount(totalIssues, "issue", "issues"),
				pluralizeCount(errors, "error", "errors"),
				pluralizeCount(warnings, "warning", "warnings"),
				pluralizeCount(truncated, "issue", "issues"))
		} else {
			fmt.Fprintf(r.w, "%s (%s, %s):\n",
				pluralizeCount(totalIssues, "issue", "issues"),
				pluralizeCount(errors, "error", "errors"),
				pluralizeCount(warnings, "warning", "warnings"))
		}
	} else {
		if truncated > 0 {
			fmt.Fprintf(r.w, "%s (%s truncated):\n",
				pluralizeCount(totalIssues, "issue", "issues"),
				pluralizeCount(truncated, "issue", "issues"))
		} else {
			fmt.Fprintf(r.w, "%s:\n", pluralizeCount(totalIssues, "issue", "issues"))
		}
	}

	if errors > 0 {
		fmt.Fprintf(r.w, "* invalid: %s\n", pluralizeCount(errors, "query", "queries"))
	}
	if warnings > 0 {
		fmt.Fprintf(r.w, "* never matching: %s\n", pluralizeCount(warnings, "query", "queries"))
	}

	if totalIssues > 0 {
		fmt.Fprintln(r.w, "")
	}
	if errors > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run mediaq parse QUERY to see where an invalid query stops parsing", r.useColors))
	}
	if warnings > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --output-format full to see which blocks match the target", r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
