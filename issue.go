package mediaq

// Issue represents a single check finding in golangci-lint format
type Issue struct {
	FromLinter  string     `json:"FromLinter"`  // "mqlint"
	Text        string     `json:"Text"`        // "invalid media query \"(min-widht: 400px)\": ..."
	Severity    string     `json:"Severity"`    // "", "warning", "error"
	SourceLines []string   `json:"SourceLines"` // Lines of CSS with the issue
	Pos         IssuePos   `json:"Pos"`         // File location
	LineRange   *LineRange `json:"LineRange"`   // Optional range for multi-line queries
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "web/styles/layout.css"
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 8 (1-based, exact start of the offending token)
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// LinterName tags every issue produced by Check.
const LinterName = "mqlint"

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Issue texts
const (
	IssueInvalidQuery      = "invalid media query %q: %s"
	IssueNeverMatches      = "media query %q can never match"
	IssueNeverMatchesInner = "media query %q can never match inside %q"
)
