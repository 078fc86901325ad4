// Config loading for the toolbox CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/toolbox/internal/registry"
	"github.com/mesh-intelligence/toolbox/internal/server"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// envPrefix maps TOOLBOX_SERVER_ADDR onto server.addr and so on.
	envPrefix = "TOOLBOX"
)

// Config keys.
const (
	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeySync      = "sync"
	cfgKeyAddr      = "server.addr"
	cfgKeyRateLimit = "server.rate_limit"
	cfgKeyBurst     = "server.burst"
	cfgKeyLogLevel  = "log.level"
	cfgKeyLogFormat = "log.format"
	cfgKeyRatesURL  = "api.rates_url"
	cfgKeyIPURL     = "api.ip_url"
	cfgKeyTimeout   = "api.timeout"
)

// configFile is the structure written to config.yaml on first run.
type configFile struct {
	Backend string             `yaml:"backend"`
	DataDir string             `yaml:"data_dir,omitempty"`
	Sync    string             `yaml:"sync"`
	Server  types.ServerConfig `yaml:"server"`
	Log     logConfig          `yaml:"log"`
	API     apiFileConfig      `yaml:"api"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// apiFileConfig mirrors types.APIConfig with the timeout as text.
type apiFileConfig struct {
	RatesURL string `yaml:"rates_url"`
	IPURL    string `yaml:"ip_url"`
	Timeout  string `yaml:"timeout"`
}

func defaultConfigFile(dataDir string) configFile {
	return configFile{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
		Sync:    types.SyncImmediate,
		Server:  types.ServerConfig{Addr: server.DefaultAddr, RateLimit: 20, Burst: 40},
		Log:     logConfig{Level: "info", Format: "console"},
		API:     apiFileConfig{RatesURL: registry.DefaultRatesURL, IPURL: registry.DefaultIPURL, Timeout: "10s"},
	}
}

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run. Environment variables with
// the TOOLBOX_ prefix override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), ""); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	def := defaultConfigFile("")
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeySync, def.Sync)
	v.SetDefault(cfgKeyAddr, def.Server.Addr)
	v.SetDefault(cfgKeyRateLimit, def.Server.RateLimit)
	v.SetDefault(cfgKeyBurst, def.Server.Burst)
	v.SetDefault(cfgKeyLogLevel, def.Log.Level)
	v.SetDefault(cfgKeyLogFormat, def.Log.Format)
	v.SetDefault(cfgKeyRatesURL, def.API.RatesURL)
	v.SetDefault(cfgKeyIPURL, def.API.IPURL)
	v.SetDefault(cfgKeyTimeout, def.API.Timeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. An existing file is left untouched.
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfigFile(dataDir)
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// storeConfig returns the store settings, validated.
func storeConfig(v *viper.Viper, dataDir string) (types.Config, error) {
	cfg := types.Config{
		Backend: v.GetString(cfgKeyBackend),
		DataDir: dataDir,
		Sync:    v.GetString(cfgKeySync),
	}
	return cfg, cfg.Validate()
}

func serverConfig(v *viper.Viper) types.ServerConfig {
	return types.ServerConfig{
		Addr:      v.GetString(cfgKeyAddr),
		RateLimit: v.GetFloat64(cfgKeyRateLimit),
		Burst:     v.GetInt(cfgKeyBurst),
	}
}

func apiConfig(v *viper.Viper) (types.APIConfig, error) {
	timeout := v.GetDuration(cfgKeyTimeout)
	if timeout <= 0 {
		return types.APIConfig{}, fmt.Errorf("%s must be a positive duration", cfgKeyTimeout)
	}
	return types.APIConfig{
		RatesURL: v.GetString(cfgKeyRatesURL),
		IPURL:    v.GetString(cfgKeyIPURL),
		Timeout:  timeout,
	}, nil
}

// recordDataDir stores dataDir in config.yaml when the file names none, so
// later commands find the data without the flag.
func recordDataDir(path, dataDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if cfg.DataDir != "" {
		return nil
	}
	cfg.DataDir = dataDir
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, out, 0o644)
}
