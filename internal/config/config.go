package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rwdkit/kickstart/internal/branding"
	"github.com/rwdkit/kickstart/internal/layout"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by kickstart.
const (
	KeyTargetIE         = "target.ie"
	KeyRegistrationMode = "registration.mode"
	KeyFunctionsStrict  = "functions.strict"
	KeyStylesheetsDir   = "layout.stylesheets_dir"
	KeyJavascriptsDir   = "layout.javascripts_dir"
	KeyImagesDir        = "layout.images_dir"
	KeyTemplatePaths    = "templates.paths"
)

// ErrUnknownKey is returned by Set for keys kickstart does not read.
var ErrUnknownKey = errors.New("unknown config key")

// Keys returns every supported key in display order.
func Keys() []string {
	return []string{
		KeyTargetIE,
		KeyRegistrationMode,
		KeyFunctionsStrict,
		KeyStylesheetsDir,
		KeyJavascriptsDir,
		KeyImagesDir,
		KeyTemplatePaths,
	}
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return branding.EnvVar(strings.ReplaceAll(key, ".", "_"))
}

// Settings is the typed view of the configuration.
type Settings struct {
	Target       TargetSettings       `mapstructure:"target"`
	Registration RegistrationSettings `mapstructure:"registration"`
	Functions    FunctionSettings     `mapstructure:"functions"`
	Layout       layout.Layout        `mapstructure:"layout"`
	Templates    TemplateSettings     `mapstructure:"templates"`
}

// TargetSettings holds the default legacy engine versions.
type TargetSettings struct {
	IE string `mapstructure:"ie"`
}

// RegistrationSettings selects how template search paths are published.
type RegistrationSettings struct {
	Mode string `mapstructure:"mode"`
}

// FunctionSettings configures the text function library.
type FunctionSettings struct {
	Strict bool `mapstructure:"strict"`
}

// TemplateSettings lists extra template source directories, highest
// priority first.
type TemplateSettings struct {
	Paths []string `mapstructure:"paths"`
}

// TargetPairs returns the configured target as ENGINE=VERSION pairs.
func (s Settings) TargetPairs() []string {
	if s.Target.IE == "" {
		return nil
	}
	return []string{"IE=" + s.Target.IE}
}

// Dir returns the path to the kickstart config directory (~/.kickstart/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.kickstart/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// TemplatesDir returns the per-user template directory (~/.kickstart/templates/).
func TemplatesDir() string {
	return filepath.Join(Dir(), "templates")
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyTargetIE, "")
	viper.SetDefault(KeyRegistrationMode, "framework")
	viper.SetDefault(KeyFunctionsStrict, false)
	viper.SetDefault(KeyStylesheetsDir, layout.DefaultStylesheetsDir)
	viper.SetDefault(KeyJavascriptsDir, layout.DefaultJavascriptsDir)
	viper.SetDefault(KeyImagesDir, layout.DefaultImagesDir)
	viper.SetDefault(KeyTemplatePaths, []string{})
}

// Load initializes Viper to read from the config file and environment.
// A missing config file is not an error; a malformed one is.
func Load() error {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(FilePath()); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the typed configuration.
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Layout.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid layout settings: %w", err)
	}
	return s, nil
}

// Set writes a config key-value pair and saves the config file.
// KeyTemplatePaths takes a comma-separated list.
func Set(key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	if key == KeyTemplatePaths {
		viper.Set(key, splitList(value))
	} else {
		viper.Set(key, value)
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
