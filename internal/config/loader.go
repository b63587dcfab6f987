package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	fileName  = ".bloombox"
	fileType  = "yaml"
	envPrefix = "BLOOMBOX"
)

// LoadConfig resolves settings in increasing precedence: built-in defaults,
// the config file, then BLOOMBOX_* environment variables (BLOOMBOX_STORE_DIR
// sets store.dir).
//
// An explicit configPath must exist. Without one, .bloombox.yaml is looked up
// in the working directory and then $HOME, and its absence is not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(fileType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := findConfig(v, configPath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigFile, v.ConfigFileUsed(), err)
	}

	cfg.Log.Level = strings.ToUpper(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func findConfig(v *viper.Viper, configPath string) error {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return fmt.Errorf("%w: %v", ErrConfigFile, err)
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(fileName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !(configPath == "" && errors.As(err, &notFound)) {
		return fmt.Errorf("%w: %v", ErrConfigFile, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	for key, value := range map[string]any{
		"store.dir":               DefaultStoreDir,
		"store.compress":          DefaultCompress,
		"defaults.expected_items": DefaultExpectedItems,
		"defaults.fp_rate":        DefaultFPRate,
		"log.level":               DefaultLogLevel,
	} {
		v.SetDefault(key, value)
	}
}
