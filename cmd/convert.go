package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"trackconv/config"
	"trackconv/convert"
	"trackconv/importer"
	"trackconv/output"
)

type convertFlags struct {
	email    string
	project  string
	format   string
	onError  string
	utc      string
	timezone string
	yes      bool
	verbose  bool
}

var convertArgs convertFlags

var (
	convertPromptInput  io.Reader = os.Stdin
	convertPromptOutput io.Writer = os.Stderr
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a CSV or JSON time-tracking export into the import CSV",
	Long: `Read one export file, normalize every entry and write the import CSV.

The input format is inferred from the file extension (.csv or .json) unless
--format is given. Use "-" as output to print the CSV to standard output.
An output ending in .xlsx or .xlsm is written as an Excel workbook with the same
columns; every other output path, and "-", gets CSV.

Values not given as flags fall back to the config file (convert.*). When no email
is configured, it is asked for on the terminal. The project is taken from
--project, then from the first rules[] entry whose file_template matches the
input file, then from each row.

Row failures:
- auto: CSV rows that fail are skipped and reported, JSON input aborts on the first failure
- skip: always skip failing rows
- abort: always stop at the first failing row`,
	Example: `
  # Convert a CSV export
  trackconv convert export.csv import.csv --email me@example.com

  # Convert JSON, keep timestamps as written instead of converting to UTC
  trackconv convert export.json import.csv -e me@example.com --utc off

  # Skip broken JSON items instead of aborting
  trackconv convert export.json import.csv -e me@example.com --on-error skip -v

  # Overwrite an existing file without asking
  trackconv convert export.csv import.csv -e me@example.com -y
`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		options, err := buildConvertOptions(args[0], args[1], convertArgs, cfg)
		if err != nil {
			return err
		}

		// Shared by both prompts.
		var prompt *bufio.Reader
		if convertPromptInput != nil {
			prompt = bufio.NewReader(convertPromptInput)
		}

		if strings.TrimSpace(options.Email) == "" {
			email, err := promptEmail(prompt, convertPromptOutput)
			if err != nil {
				return err
			}
			options.Email = email
		}

		if !convertArgs.yes && outputExists(options.Output) {
			confirmed, err := confirmOverwritePrompt(prompt, convertPromptOutput, options.Output)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
				return nil
			}
		}

		_, err = convert.Run(options, cmd.OutOrStdout(), cmd.ErrOrStderr())
		return err
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertArgs.email, "email", "e", "", "Email written to every row (default: convert.email, else prompted)")
	convertCmd.Flags().StringVarP(&convertArgs.project, "project", "p", "", "Project written to every row, overriding rules and the row's own project")
	convertCmd.Flags().StringVarP(&convertArgs.format, "format", "f", "", "Input format: csv|json (optional, inferred from extension when omitted)")
	convertCmd.Flags().StringVar(&convertArgs.onError, "on-error", "", "Row failure policy: auto|skip|abort (default: convert.on_error)")
	convertCmd.Flags().StringVar(&convertArgs.utc, "utc", "", "Convert start times to UTC: auto|on|off (default: convert.utc)")
	convertCmd.Flags().StringVar(&convertArgs.timezone, "timezone", "", "Timezone for timestamps without offset (default: convert.timezone)")
	convertCmd.Flags().BoolVarP(&convertArgs.yes, "yes", "y", false, "Overwrite an existing output file without asking")
	convertCmd.Flags().BoolVarP(&convertArgs.verbose, "verbose", "v", false, "Print the reason for every skipped row")
}

// buildConvertOptions merges flags over the loaded configuration.
func buildConvertOptions(input, outputPath string, flags convertFlags, cfg *config.Config) (convert.Options, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	policy, err := importer.ParseErrorPolicy(firstNonEmpty(flags.onError, cfg.Convert.OnError))
	if err != nil {
		return convert.Options{}, err
	}
	utcMode, err := importer.ParseUTCMode(firstNonEmpty(flags.utc, cfg.Convert.UTC))
	if err != nil {
		return convert.Options{}, err
	}

	convertConfig := cfg.Convert
	convertConfig.Timezone = firstNonEmpty(flags.timezone, cfg.Convert.Timezone)
	location, err := convertConfig.Location()
	if err != nil {
		return convert.Options{}, err
	}

	return convert.Options{
		Input:    input,
		Output:   outputPath,
		Email:    firstNonEmpty(flags.email, cfg.Convert.Email),
		Project:  firstNonEmpty(flags.project, cfg.Convert.Project),
		Format:   flags.format,
		Policy:   policy,
		UTC:      utcMode,
		Location: location,
		Rules:    cfg.Rules,
		Verbose:  flags.verbose,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func outputExists(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" || output.IsStdout(path) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func promptEmail(input *bufio.Reader, out io.Writer) (string, error) {
	if input == nil {
		return "", fmt.Errorf("email prompt input is not available")
	}
	if out == nil {
		out = io.Discard
	}

	if _, err := fmt.Fprint(out, "Email: "); err != nil {
		return "", fmt.Errorf("write email prompt: %w", err)
	}

	line, err := input.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read email: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func confirmOverwritePrompt(input *bufio.Reader, out io.Writer, path string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("overwrite confirmation input is not available")
	}
	if out == nil {
		out = io.Discard
	}

	if _, err := fmt.Fprintf(out, "Output file %q already exists. Overwrite? [y/N]: ", path); err != nil {
		return false, fmt.Errorf("write overwrite confirmation prompt: %w", err)
	}

	line, err := input.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read overwrite confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
