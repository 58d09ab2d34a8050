package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .mediaq.yaml config file",
	Long:  `Create a .mediaq.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if err := writeDefaultConfig(".mediaq.yaml", force); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Created .mediaq.yaml")
		return nil
	},
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

const defaultConfig = `# mediaq configuration
# Docs: https://github.com/yacobolo/mediaq

verbose: false
force-color: false

# Target the queries are evaluated against. Zero or empty means unknown;
# a feature test that needs an unknown value does not match.
environment:
  type: screen             # screen | print
  width: 1280
  height: 800
  device-width: 0
  device-height: 0
  resolution: 1            # dppx
  orientation: ""          # portrait | landscape, derived when empty
  aspect-ratio: ""         # e.g. 16/9, derived when empty
  device-aspect-ratio: ""
  color: 8                 # bits per color component, 0 = monochrome
  font-size: 16            # px per em and rem

# Stylesheet checking
check:
  paths:
    - "**/*.css"
  strict: false
  output-format: issues    # issues | summary | full | json
  max-issues: 0            # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
