// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"recipe-planner/internal/errors"
	"recipe-planner/internal/logging"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "RECIPE_PLANNER_"

// FileName is the default config file name in the home directory
const FileName = ".recipe-planner.json"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" validate:"required"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Format is the default output format
	Format string `json:"format" validate:"oneof=cli json markdown msgpack dot"`

	// NoColor disables terminal colors
	NoColor bool `json:"no_color"`

	// ShowGoal prints the goal items above the plan
	ShowGoal bool `json:"show_goal"`

	// EdgeLabel is what graph edges show (total, per-craft)
	EdgeLabel string `json:"edge_label" validate:"oneof=total per-craft"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			Format:    "cli",
			NoColor:   false,
			ShowGoal:  false,
			EdgeLabel: "total",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.recipe-planner.json, or the bare file name when
// the home directory is unknown
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Load loads configuration from a file, then applies .env and environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, errors.Wrapf(errors.TypeConfiguration, err, "invalid config file %s", path)
		}
	case !os.IsNotExist(err):
		return nil, errors.Input(fmt.Sprintf("failed to read config file %s", path), err)
	}

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides settings from RECIPE_PLANNER_* variables. The
// conventional NO_COLOR variable is honored too.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok && v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
	if v, ok := lookup(EnvPrefix + "OUTPUT_FORMAT"); ok && v != "" {
		c.Output.Format = strings.ToLower(v)
	}
	if v, ok := lookup("NO_COLOR"); ok && v != "" {
		c.Output.NoColor = true
	}
	if v, ok := lookup(EnvPrefix + "NO_COLOR"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(errors.TypeConfiguration, err, "%sNO_COLOR must be a boolean, got %q", EnvPrefix, v)
		}
		c.Output.NoColor = b
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.TypeConfiguration, "invalid configuration", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.Configuration("invalid configuration: " + strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	// Namespace starts with the root struct name
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Input(fmt.Sprintf("failed to create %s", dir), err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Internal("failed to encode configuration", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Input(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
