package mediaq

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version     string      `json:"version"`
	Timestamp   string      `json:"timestamp"`
	Environment string      `json:"environment"`
	Summary     JSONSummary `json:"summary"`
	Stats       JSONStats   `json:"stats"`
	Issues      []JSONIssue `json:"issues"`
	Blocks      []JSONBlock `json:"blocks"`
	Warnings    []string    `json:"warnings,omitempty"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesScanned int `json:"files_scanned"`
	Truncated    int `json:"truncated,omitempty"`
}

// JSONStats contains query statistics
type JSONStats struct {
	QueriesFound   int `json:"queries_found"`
	InvalidQueries int `json:"invalid_queries"`
	NeverMatching  int `json:"never_matching"`
	MatchingBlocks int `json:"matching_blocks"`
	RulesApplied   int `json:"rules_applied"`
}

// JSONIssue represents a single check issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// JSONBlock represents one media query list and its outcome
type JSONBlock struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Kind        string `json:"kind"`
	Query       string `json:"query"`
	Parent      string `json:"parent,omitempty"`
	Valid       bool   `json:"valid"`
	Satisfiable bool   `json:"satisfiable"`
	Matches     bool   `json:"matches"`
	Rules       int    `json:"rules"`
}

// WriteJSON writes the check result as JSON
func WriteJSON(w io.Writer, result *CheckResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts CheckResult to JSONOutput
func buildJSONOutput(result *CheckResult) JSONOutput {
	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	blocks := make([]JSONBlock, len(result.Blocks))
	for i, b := range result.Blocks {
		blocks[i] = JSONBlock{
			File:        b.File,
			Line:        b.Line,
			Column:      b.Column,
			Kind:        b.Kind,
			Query:       b.Query,
			Parent:      b.Parent,
			Valid:       b.Valid,
			Satisfiable: b.Satisfiable,
			Matches:     b.Matches,
			Rules:       b.Rules,
		}
	}

	return JSONOutput{
		Version:     "1.0",
		Timestamp:   time.Now().Format(time.RFC3339),
		Environment: result.Environment.String(),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       result.ErrorCount(),
			Warnings:     result.WarningCount(),
			FilesScanned: result.FilesScanned,
			Truncated:    result.TruncatedCount,
		},
		Stats: JSONStats{
			QueriesFound:   result.QueriesFound,
			InvalidQueries: result.InvalidQueries,
			NeverMatching:  result.NeverMatching,
			MatchingBlocks: result.MatchingBlocks,
			RulesApplied:   result.RulesApplied,
		},
		Issues:   jsonIssues,
		Blocks:   blocks,
		Warnings: result.Warnings,
	}
}
