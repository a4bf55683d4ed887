package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

const (
	KeyConvertEmail    = "convert.email"
	KeyConvertProject  = "convert.project"
	KeyConvertOnError  = "convert.on_error"
	KeyConvertUTC      = "convert.utc"
	KeyConvertTimezone = "convert.timezone"
	KeyRules           = "rules"
)

type Config struct {
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert"`
	Rules   []Rule        `mapstructure:"rules" yaml:"rules"`
}

type ConvertConfig struct {
	Email    string `mapstructure:"email" yaml:"email" validate:"omitempty,email"`
	Project  string `mapstructure:"project" yaml:"project"`
	OnError  string `mapstructure:"on_error" yaml:"on_error" validate:"omitempty,oneof=auto skip abort"`
	UTC      string `mapstructure:"utc" yaml:"utc" validate:"omitempty,oneof=auto on off"`
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

// Rule assigns a project to input files whose name matches FileTemplate.
type Rule struct {
	Name         string `mapstructure:"name" yaml:"name"`
	FileTemplate string `mapstructure:"file_template" yaml:"file_template"`
	Project      string `mapstructure:"project" yaml:"project"`
}

// Location resolves the configured timezone; empty or "Local" means the
// system timezone.
func (c ConvertConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# trackconv configuration
convert:
  # Default account email; prompted for when empty and --email is not set.
  email: ""
  # Project written to every row when --project is not set.
  project: ""
  # Row failures: auto (skip for CSV, abort for JSON) | skip | abort
  on_error: "auto"
  # UTC conversion of start times: auto (JSON only) | on | off
  utc: "auto"
  # Timezone for timestamps without an offset, e.g. "Europe/Berlin".
  timezone: "Local"

# Per-file project rules, first match wins:
# rules:
#   - name: "infra"
#     file_template: "infra-*.csv"
#     project: "Infrastructure"
rules: []
`
}

// YAML renders the configuration as YAML.
func (c Config) YAML() (string, error) {
	content, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(content), nil
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if _, err := cfg.Convert.Location(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateRules(cfg.Rules); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyConvertEmail, "")
	v.SetDefault(KeyConvertProject, "")
	v.SetDefault(KeyConvertOnError, "auto")
	v.SetDefault(KeyConvertUTC, "auto")
	v.SetDefault(KeyConvertTimezone, "Local")
	v.SetDefault(KeyRules, []map[string]any{})
}

func validateRules(rules []Rule) error {
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return fmt.Errorf("validation failed: rules[%d].name is required", i)
		}
		key := strings.ToLower(name)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("validation failed: duplicate rule name %q", name)
		}
		seen[key] = struct{}{}
		if strings.TrimSpace(rule.FileTemplate) == "" {
			return fmt.Errorf("validation failed: rules[%d].file_template is required", i)
		}
		if _, err := filepath.Match(rule.FileTemplate, ""); err != nil {
			return fmt.Errorf("validation failed: rules[%d].file_template %q: %w", i, rule.FileTemplate, err)
		}
		if strings.TrimSpace(rule.Project) == "" {
			return fmt.Errorf("validation failed: rules[%d].project is required", i)
		}
	}
	return nil
}
