package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage trackconv configuration file values.",
	Long: `Create, edit, display, and delete the trackconv configuration file.

The configuration stores default conversion values and per-file project rules:
- convert.email / convert.project
- convert.on_error / convert.utc / convert.timezone
- rules[].name / file_template / project`,
	Example: `
  # Create default config in $HOME/.trackconv.yaml
  trackconv config create

  # Show active config and source file
  trackconv config show

  # Open active config in editor (creates example if missing)
  trackconv config edit

  # Delete active config file
  trackconv config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
