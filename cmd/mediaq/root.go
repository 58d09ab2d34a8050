package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mediaq",
	Short: "CSS media query parser, evaluator and stylesheet checker",
	Long: `Parse CSS media query lists, evaluate them against a described
viewport and device, and check the @media rules of stylesheets for
queries that are invalid or can never match.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("force-color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".mediaq.yaml", "Config file path")

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
