package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"trackconv/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Values coming
from TRACKCONV_* environment variables are included.`,
	Example: `
  # Show active configuration
  trackconv config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		out := cmd.OutOrStdout()
		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Fprintln(out, "Config file loaded from:", configPath)
		} else {
			fmt.Fprintln(out, "No config file loaded; showing defaults.")
		}

		content, err := cfg.YAML()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Configuration:")
		fmt.Fprint(out, content)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
