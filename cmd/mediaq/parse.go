package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/mediaq"
)

var parseCmd = &cobra.Command{
	Use:   "parse QUERY",
	Short: "Parse a media query list and print its canonical form",
	Long: `Parse QUERY and print it in canonical form, or as a JSON tree with
--json. Parse errors point at the offending token.`,
	Example: `  mediaq parse "SCREEN and (MIN-WIDTH:400PX)"
  mediaq parse --json "(400px <= width < 800px), print"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return runParse(cmd.OutOrStdout(), args[0], asJSON)
	},
}

func init() {
	parseCmd.Flags().Bool("json", false, "Print the parsed tree as JSON")
}

// queryError is a parse failure shown with the query and a caret under
// the offending offset.
type queryError struct {
	query string
	err   error
}

func newQueryError(query string, err error) error {
	return &queryError{query: query, err: err}
}

func (e *queryError) Error() string {
	var perr *mediaq.ParseError
	if !errors.As(e.err, &perr) || strings.Contains(e.query, "\n") {
		return "invalid media query: " + e.err.Error()
	}
	return fmt.Sprintf("invalid media query: %s\n\t%s\n\t%s",
		e.err, e.query, mediaq.BuildCaretIndicator(e.query, perr.Column()))
}

func (e *queryError) Unwrap() error {
	return e.err
}

// jsonQuery is the JSON form of one query of a list.
type jsonQuery struct {
	Text        string        `json:"text"`
	Not         bool          `json:"not,omitempty"`
	Only        bool          `json:"only,omitempty"`
	Type        string        `json:"type"`
	Features    []jsonFeature `json:"features"`
	Satisfiable bool          `json:"satisfiable"`
}

// jsonFeature is one feature test; Value is empty for existence tests.
type jsonFeature struct {
	Feature    string `json:"feature"`
	Comparator string `json:"comparator,omitempty"`
	Value      string `json:"value,omitempty"`
}

func runParse(w io.Writer, query string, asJSON bool) error {
	list, err := mediaq.Parse(query)
	if err != nil {
		return newQueryError(query, err)
	}

	if !asJSON {
		fmt.Fprintln(w, list.String())
		return nil
	}

	out := make([]jsonQuery, len(list))
	for i, q := range list {
		t := q.Type
		if t == "" {
			t = mediaq.MediaAll
		}
		out[i] = jsonQuery{
			Text:        q.String(),
			Not:         q.Not,
			Only:        q.Only,
			Type:        string(t),
			Features:    jsonFeatures(q.Condition, nil),
			Satisfiable: q.Satisfiable(),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// jsonFeatures flattens a condition into its feature tests, left to right.
func jsonFeatures(c mediaq.Condition, out []jsonFeature) []jsonFeature {
	switch n := c.(type) {
	case *mediaq.And:
		out = jsonFeatures(n.Left, out)
		return jsonFeatures(n.Right, out)
	case *mediaq.FeatureTest:
		f := jsonFeature{Feature: n.Feature.String()}
		if !n.IsExistence() {
			f.Comparator = n.Comparator.String()
			f.Value = n.Value.String()
		}
		return append(out, f)
	}
	if out == nil {
		return []jsonFeature{}
	}
	return out
}
