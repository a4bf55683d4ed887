package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by trackconv.

Afterwards "convert" no longer has default email, project, error policy,
UTC mode, timezone or file rules. If no configuration file is active, the
command returns an error.`,
	Example: `
  # Delete active config
  trackconv config delete

  # Delete config at a custom path
  trackconv --configFile ./custom-trackconv.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return fmt.Errorf("no configuration file found")
		}

		if err := os.Remove(configPath); err != nil {
			return fmt.Errorf("error deleting configuration file: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration file successfully deleted: %s\n", configPath)
		fmt.Fprintln(out, "convert now takes email, project and modes from flags or TRACKCONV_* variables; a missing email is asked for.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
