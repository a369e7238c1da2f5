package cli

import (
	stderrors "errors"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/toyz/ibcompose/internal/annotations"
	"github.com/toyz/ibcompose/internal/composer"
	"github.com/toyz/ibcompose/internal/errors"
	"github.com/toyz/ibcompose/internal/utils"
)

const (
	// ConfigName is the base name of the optional config file in the working directory
	ConfigName = "ibcompose"
	// EnvPrefix prefixes environment overrides, e.g. IBCOMPOSE_OUTPUT
	EnvPrefix = "IBCOMPOSE"
	// CacheSuffix is appended to the output path to name the fingerprint file
	CacheSuffix = ".sum"
)

// Config holds the configuration for one generation run
type Config struct {
	// Inputs are .class files, directories, or .jar/.zip archives, in order
	Inputs []string `mapstructure:"inputs" yaml:"inputs"`

	// Output is the generated Objective-C file
	Output string `mapstructure:"output" yaml:"output"`

	Includes         []string `mapstructure:"includes" yaml:"includes,omitempty"`
	ExcludeLibraries []string `mapstructure:"exclude_libraries" yaml:"exclude_libraries,omitempty"`
	AdditionalCode   []string `mapstructure:"additional_code" yaml:"additional_code,omitempty"`

	// SelectorRule names the rule deriving selectors for unannotated methods
	SelectorRule string `mapstructure:"selector_rule" yaml:"selector_rule"`

	// Jobs bounds parallel scanning; 0 means GOMAXPROCS
	Jobs int `mapstructure:"jobs" yaml:"jobs"`

	// Cache skips generation when the inputs and options are unchanged
	Cache bool `mapstructure:"cache" yaml:"cache"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `mapstructure:"verbose" yaml:"-"`
}

// NewViper creates a viper instance with defaults and environment overrides
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("selector_rule", annotations.DefaultSelectorRule)
	v.SetDefault("jobs", 0)
	v.SetDefault("cache", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads configFile, or ibcompose.yaml from the working directory
// when configFile is empty, and decodes the merged settings
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.WrapConfigurationError("config", err).
				WithContext("file", configFile)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapConfigurationError("config", err)
	}

	// Include patterns may contain commas, so a plain string value (an
	// environment variable) holds one pattern per line.
	if raw, ok := v.Get("includes").(string); ok {
		cfg.Includes = splitLines(raw)
	}
	return &cfg, nil
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Validate checks the settings needed for a generation run. Every failing
// setting is reported, collected in an errors.MultipleErrors when there is
// more than one.
func (c *Config) Validate() error {
	checks := []struct {
		key string
		err error
	}{
		{"inputs", validateInputs(c.Inputs)},
		{"output", utils.NotEmpty("output")(c.Output)},
		{"includes", utils.ValidateEach("includes", utils.IsValidRegex("includes"))(c.Includes)},
		{"selector_rule", utils.IsOneOf("selector_rule", append(annotations.SelectorRuleNames(), "")...)(c.SelectorRule)},
		{"jobs", utils.AtLeast("jobs", 0)(c.Jobs)},
	}

	var problems errors.MultipleErrors
	for _, check := range checks {
		if check.err != nil {
			problems.Add(configError(check.key, check.err))
		}
	}
	if len(problems.Errors) == 1 {
		return problems.Errors[0]
	}
	return problems.ErrorOrNil()
}

// ValidateInputs checks only the input list, for commands that write nothing
func (c *Config) ValidateInputs() error {
	if err := validateInputs(c.Inputs); err != nil {
		return configError("inputs", err)
	}
	return nil
}

// ValidateOutput checks only the output path
func (c *Config) ValidateOutput() error {
	if err := utils.NotEmpty("output")(c.Output); err != nil {
		return configError("output", err)
	}
	return nil
}

func validateInputs(inputs []string) error {
	return utils.NewValidatorChain(
		utils.SliceNotEmpty[string]("inputs"),
		utils.ValidateEach("inputs", utils.NotEmpty("inputs")),
	).Validate(inputs)
}

func configError(key string, err error) *errors.BaseError {
	return errors.WrapConfigurationError(key, err).
		WithSuggestions("Set '" + key + "' in " + ConfigName + ".yaml, with a flag, or via " + EnvPrefix + "_" + strings.ToUpper(key))
}

// ComposerOptions returns the options passed to the composer
func (c *Config) ComposerOptions() composer.Options {
	return composer.Options{
		IncludePatterns:  c.Includes,
		ExcludeLibraries: c.ExcludeLibraries,
		AdditionalCode:   c.AdditionalCode,
	}
}

// Workers returns the effective scan parallelism
func (c *Config) Workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// CachePath returns the fingerprint file written next to the output
func (c *Config) CachePath() string {
	return filepath.Clean(c.Output) + CacheSuffix
}
