package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/mediaq"
)

var evalCmd = &cobra.Command{
	Use:   "eval QUERY",
	Short: "Evaluate a media query list against an environment",
	Long: `Parse QUERY and evaluate it against the environment described by the
flags. Prints "match" or "no match"; the exit code is 1 unless the query
matches.`,
	Example: `  mediaq eval "screen and (min-width: 600px)" --width 1024
  mediaq eval "(orientation: portrait)" --width 390 --height 844`,
	Args:    cobra.ExactArgs(1),
	PreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnvironment()
		if err != nil {
			return err
		}

		log := newLogger()
		defer func() { _ = log.Sync() }()

		w := cmd.OutOrStdout()
		if getBoolWithFallback("quiet", "quiet", false) {
			w = io.Discard
		}

		matched, err := runEval(w, args[0], env, log)
		if err != nil {
			return err
		}
		if !matched {
			return &exitError{code: 1}
		}
		return nil
	},
}

func init() {
	addEnvironmentFlags(evalCmd.Flags())
}

// runEval parses and evaluates query, printing the outcome to w.
func runEval(w io.Writer, query string, env mediaq.Environment, log *zap.Logger) (bool, error) {
	list, err := mediaq.Parse(query)
	if err != nil {
		return false, newQueryError(query, err)
	}

	matched := list.Matches(env)
	log.Debug("evaluated media query",
		zap.String("query", list.String()),
		zap.Stringer("environment", env),
		zap.Bool("match", matched))

	useColors := mediaq.ShouldUseColors(getBoolWithFallback("force-color", "force-color", false))
	if matched {
		fmt.Fprintln(w, mediaq.RenderStyle(mediaq.StyleGreen, "match", useColors))
	} else {
		fmt.Fprintln(w, mediaq.RenderStyle(mediaq.StyleRed, "no match", useColors))
	}
	return matched, nil
}
