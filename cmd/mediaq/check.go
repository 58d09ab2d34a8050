package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/mediaq"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the media queries of CSS files",
	Long: `Scan CSS files for @media rules and @import media lists. Invalid queries
are errors; queries that can never match are warnings. Every query is also
evaluated against the environment described by the flags.`,
	Example: `  mediaq check --paths "web/**/*.css"
  mediaq check --width 390 --height 844 --resolution 3 --output-format full
  mediaq check --strict --output-format json`,
	PreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCheck(cmd)
	},
}

func init() {
	f := checkCmd.Flags()
	f.StringSlice("paths", []string{"**/*.css"}, "File patterns to scan")
	f.Bool("strict", false, "Exit 1 on warnings as well as errors (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues", 0, "Max issues to show (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (mqlint) suffix on issues")
	addEnvironmentFlags(f)
}

func runCheck(cmd *cobra.Command) error {
	config, err := buildCheckConfig()
	if err != nil {
		return err
	}

	log := newLogger()
	defer func() { _ = log.Sync() }()

	result, err := mediaq.Check(config, log)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "check.output-format", "")
	format := mediaq.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		mediaq.WriteOutput(cmd.OutOrStdout(), result, format, config)
	}

	// "Soft Gate": errors fail the run, warnings only in strict mode
	if result.Failed(config.Strict) {
		return &exitError{code: 1}
	}
	return nil
}
