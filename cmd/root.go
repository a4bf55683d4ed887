/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"trackconv/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trackconv",
	Short: "Convert time-tracking exports (CSV, JSON) into an import-ready CSV.",
	Long: `
**********************************************
*              TRACKCONV                     *
**********************************************

This CLI reads one time-tracking export file, normalizes every entry and writes
a CSV file with the columns:

  Email, Project, Description, Start date, Start time, Duration

Supported input formats:
- CSV: .csv (header row with start date, duration, task title, project)
- JSON: .json (array of objects with startDate, duration, activityTitle, project)
`,
	Example: `
  # Create configuration file
  trackconv config create

  # Convert a CSV export
  trackconv convert export.csv import.csv --email me@example.com

  # Convert a JSON export and force one project for every row
  trackconv convert export.json import.csv -e me@example.com -p "Internal"

  # Print the converted CSV to standard output
  trackconv convert export.csv - -e me@example.com > import.csv
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.trackconv.yaml, then ./.trackconv.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".trackconv" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".trackconv")
	}

	viper.SetEnvPrefix("TRACKCONV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// The config file is optional; flags and prompts cover every value.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintln(os.Stderr, "Config file could not be read:", err)
		}
	}
}
