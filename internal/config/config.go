package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"xmldocmd/internal/links"
)

// RenderConfig maps 1:1 onto the engine's render options.
type RenderConfig struct {
	FileNames     links.FileNameStyle `mapstructure:"file_names"`
	RootNamespace string              `mapstructure:"root_namespace"`
	TrimFileNames bool                `mapstructure:"trim_file_names"`
	Language      string              `mapstructure:"language"`
}

// OutputConfig controls where generated files go.
type OutputConfig struct {
	Dir        string `mapstructure:"dir"`
	SingleFile string `mapstructure:"single_file"`
	Report     string `mapstructure:"report"`
	Cache      bool   `mapstructure:"cache"`
}

type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Output OutputConfig `mapstructure:"output"`
}

// cacheBase returns the base cache directory for xmldocmd.
// Checks XDG_CACHE_HOME, then ~/.cache, then /tmp/xmldocmd as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "xmldocmd")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "xmldocmd")
	}
	return filepath.Join(os.TempDir(), "xmldocmd")
}

// CASDir returns the path to the rendered-page cache directory.
func CASDir() string {
	return filepath.Join(cacheBase(), "cas")
}

func InitializeViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "xmldocmd"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "xmldocmd"))
	}

	viper.SetDefault("render.file_names", "verbatim")
	viper.SetDefault("render.language", "csharp")
	viper.SetDefault("output.dir", "docs")

	viper.SetEnvPrefix("XMLDOCMD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// stringToFileNameStyleHookFunc decodes the textual style spelling into the
// enum so a bad value fails at load time rather than mid-render.
func stringToFileNameStyleHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(links.Verbatim) {
			return data, nil
		}
		if f.Kind() == reflect.String {
			return links.ParseFileNameStyle(data.(string))
		}
		return data, nil
	}
}

func Load() (*Config, error) {
	if err := InitializeViper(); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToFileNameStyleHookFunc(),
		Result:     &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
