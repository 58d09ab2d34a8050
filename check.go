package mediaq

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/mediaq/internal/stylesheet"
)

// CheckConfig holds stylesheet checking configuration
type CheckConfig struct {
	Paths       []string    // Patterns to scan (e.g., "web/styles/**/*.css")
	Environment Environment // Target the queries are evaluated against
	Strict      bool        // Warnings fail the run as well as errors

	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues (default: true)
	PrintLinterName    bool // Show (mqlint) suffix (default: true)
	UseColors          bool // Enable color output (default: auto-detect)
}

// BlockResult is the outcome for one media query list found in a stylesheet.
type BlockResult struct {
	File   string
	Line   int
	Column int
	Kind   string // "@media" or "@import"
	Query  string // Raw query text
	Parent string // Raw query of the enclosing @media block, if any

	Valid       bool // The query parsed
	Satisfiable bool // Some environment could match it, given its ancestors
	Matches     bool // It and all its ancestors match the target environment
	Rules       int
}

// CheckResult contains stylesheet check results
type CheckResult struct {
	Issues []Issue
	Blocks []BlockResult

	FilesScanned   int
	FilesSkipped   int
	QueriesFound   int
	InvalidQueries int // error issues
	NeverMatching  int // warning issues
	MatchingBlocks int
	RulesApplied   int // Rules inside blocks that match the target
	TruncatedCount int // Issues removed due to limits

	Environment Environment
	Warnings    []string // Files that could not be read
}

// ErrorCount returns the number of error severity issues.
func (r *CheckResult) ErrorCount() int {
	return countSeverity(r.Issues, SeverityError)
}

// WarningCount returns the number of warning severity issues.
func (r *CheckResult) WarningCount() int {
	return countSeverity(r.Issues, SeverityWarning)
}

func countSeverity(issues []Issue, severity string) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

// Failed reports whether the result fails the run: any error, or any
// warning in strict mode.
func (r *CheckResult) Failed(strict bool) bool {
	if strict {
		return len(r.Issues) > 0
	}
	return r.ErrorCount() > 0
}

// Check scans the configured CSS files and evaluates every media query list
// against the target environment. Files that cannot be read are reported in
// Warnings; only a bad glob pattern returns an error.
func Check(config CheckConfig, log *zap.Logger) (*CheckResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("check")

	files, stats, err := expandGlobPatternsWithStats(config.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}
	log.Debug("discovered files",
		zap.Int("scanned", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))

	result := &CheckResult{
		FilesSkipped: stats.FilesSkipped,
		Environment:  config.Environment,
	}

	scanner := stylesheet.NewScanner(log)
	var readErrs error
	for _, file := range files {
		sheet, err := scanner.ScanFile(file)
		if err != nil {
			log.Warn("skipping file", zap.String("path", file), zap.Error(err))
			readErrs = multierr.Append(readErrs, fmt.Errorf("%s: %w", file, err))
			continue
		}
		result.FilesScanned++
		checkStylesheet(result, sheet, config.Environment)
	}
	for _, err := range multierr.Errors(readErrs) {
		result.Warnings = append(result.Warnings, err.Error())
	}

	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}

	log.Debug("check complete",
		zap.Int("queries", result.QueriesFound),
		zap.Int("issues", len(result.Issues)))
	return result, nil
}

// checkStylesheet parses each block once and evaluates it together with the
// blocks that enclose it.
func checkStylesheet(result *CheckResult, sheet *stylesheet.Stylesheet, env Environment) {
	filename := sheet.Path
	if filepath.IsAbs(filename) {
		filename = GetRelativePath(filename)
	}

	lists := make([]MediaQueryList, len(sheet.Blocks))
	valid := make([]bool, len(sheet.Blocks))

	for i, block := range sheet.Blocks {
		result.QueriesFound++
		br := BlockResult{
			File:   filename,
			Line:   block.Line,
			Column: block.Column,
			Kind:   block.Kind.String(),
			Query:  block.Query,
			Rules:  block.Rules,
		}
		if block.Parent >= 0 {
			br.Parent = sheet.Blocks[block.Parent].Query
		}

		list, err := Parse(block.Query)
		if err != nil {
			result.InvalidQueries++
			result.Issues = append(result.Issues, invalidQueryIssue(filename, block, err))
			result.Blocks = append(result.Blocks, br)
			continue
		}
		lists[i], valid[i] = list, true
		br.Valid = true

		ancestors, ancestorsValid := ancestorLists(sheet, i, lists, valid)
		br.Satisfiable = ancestorsValid && satisfiable(list, ancestors)
		br.Matches = ancestorsValid && list.Matches(env)
		for _, a := range ancestors {
			br.Matches = br.Matches && a.Matches(env)
		}

		if ancestorsValid && !br.Satisfiable {
			result.NeverMatching++
			result.Issues = append(result.Issues, neverMatchesIssue(filename, block, list, br.Parent))
		}
		if br.Matches {
			result.MatchingBlocks++
			result.RulesApplied += block.Rules
		}
		result.Blocks = append(result.Blocks, br)
	}
}

// ancestorLists returns the parsed lists of the blocks enclosing block i.
// ok is false when one of them failed to parse; such a block never applies,
// and the parse error has already been reported for the ancestor.
func ancestorLists(sheet *stylesheet.Stylesheet, i int, lists []MediaQueryList, valid []bool) ([]MediaQueryList, bool) {
	var out []MediaQueryList
	for p := sheet.Blocks[i].Parent; p >= 0; p = sheet.Blocks[p].Parent {
		if !valid[p] {
			return nil, false
		}
		out = append(out, lists[p])
	}
	return out, true
}

func invalidQueryIssue(filename string, block stylesheet.Block, err error) Issue {
	issue := Issue{
		FromLinter:  LinterName,
		Severity:    SeverityError,
		Text:        fmt.Sprintf(IssueInvalidQuery, block.Query, err.Error()),
		SourceLines: []string{block.LineText},
		Pos:         IssuePos{Filename: filename, Line: block.Line, Column: block.Column},
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		return issue
	}

	// Point at the offending token, which may sit on a later line of a
	// multi-line prelude.
	before := block.Query[:min(perr.Offset, len(block.Query))]
	if nl := strings.Count(before, "\n"); nl > 0 {
		issue.Pos.Line += nl
		issue.Pos.Column = len(before) - strings.LastIndex(before, "\n")
		issue.SourceLines = nil
		issue.LineRange = &LineRange{From: block.Line, To: issue.Pos.Line}
	} else {
		issue.Pos.Column += len(before)
	}
	return issue
}

func neverMatchesIssue(filename string, block stylesheet.Block, list MediaQueryList, parent string) Issue {
	text := fmt.Sprintf(IssueNeverMatches, list.String())
	if satisfiable(list, nil) && parent != "" {
		text = fmt.Sprintf(IssueNeverMatchesInner, list.String(), parent)
	}
	return Issue{
		FromLinter:  LinterName,
		Severity:    SeverityWarning,
		Text:        text,
		SourceLines: []string{block.LineText},
		Pos:         IssuePos{Filename: filename, Line: block.Line, Column: block.Column},
	}
}

// satisfiable reports whether some environment could match list inside all
// of its ancestor lists. Each list matches when one of its queries does, so
// this searches for one query per list whose combination is satisfiable.
func satisfiable(list MediaQueryList, ancestors []MediaQueryList) bool {
	for _, q := range list {
		if satisfiableWith(q, ancestors) {
			return true
		}
	}
	return false
}

func satisfiableWith(q MediaQuery, ancestors []MediaQueryList) bool {
	if !q.Satisfiable() {
		return false
	}
	if len(ancestors) == 0 {
		return true
	}
	for _, a := range ancestors[0] {
		if !a.Satisfiable() {
			continue
		}
		// "not" does not distribute over the combination, so a negated
		// query is only checked on its own.
		if q.Not || a.Not {
			if satisfiableWith(q, ancestors[1:]) {
				return true
			}
			continue
		}
		if typesConflict(q.Type, a.Type) {
			continue
		}
		if satisfiableWith(intersect(q, a), ancestors[1:]) {
			return true
		}
	}
	return false
}

// typesConflict reports whether two concrete media types are different.
func typesConflict(a, b MediaType) bool {
	if a == "" || a == MediaAll || b == "" || b == MediaAll {
		return false
	}
	return a != b
}

// intersect combines two non-negated queries with compatible types into one
// that matches where both do.
func intersect(a, b MediaQuery) MediaQuery {
	t := a.Type
	if t == "" || t == MediaAll {
		t = b.Type
	}
	return MediaQuery{Type: t, Condition: and(b.Condition, a.Condition)}
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config CheckConfig) ([]Issue, int) {
	originalCount := len(issues)

	if config.MaxIssuesPerLinter > 0 && len(issues) > config.MaxIssuesPerLinter {
		issues = issues[:config.MaxIssuesPerLinter]
	}

	// Apply max-same-issues (deduplication by message text)
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if messageCounts[issue.Text] < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
