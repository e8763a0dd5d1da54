package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// HelperName is the snapshot helper's file name under <lib_dir>/helpers
const HelperName = "btrfs-backup"

// Config represents the configuration of a wither run or worker
type Config struct {
	RootDir   string          `mapstructure:"root_dir"`
	LibDir    string          `mapstructure:"lib_dir"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Path      PathConfig      `mapstructure:"path"`
	Rcon      RconConfig      `mapstructure:"rcon"`
	Log       LogConfig       `mapstructure:"log"`
	Report    ReportConfig    `mapstructure:"report"`
	Temporal  TemporalConfig  `mapstructure:"temporal"`
}

// NewConfig loads configuration from file and WITHER_* environment variables.
// configPath: path to the config file. If empty, looks for "wither.yaml" in the
// current directory and /etc/wither
func NewConfig(ctx context.Context, configPath string) (*Config, error) {
	config := new(Config)
	v := viper.New()

	v.SetDefault("root_dir", defaultRootDir())
	v.SetDefault("lib_dir", "")

	// Discovery defaults
	v.SetDefault("discovery.root", "/")
	v.SetDefault("discovery.exclude", []string{"/backup/"})
	v.SetDefault("discovery.skip", []string{"/proc", "/sys"})

	// External programs
	v.SetDefault("path.helper", "")
	v.SetDefault("path.mcrcon", "mcrcon")

	v.SetDefault("rcon.host", "")
	v.SetDefault("rcon.port", 0)
	v.SetDefault("rcon.password", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "stdout")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)

	v.SetDefault("report.path", "")
	v.SetDefault("report.s3.bucket", "")
	v.SetDefault("report.s3.region", "")
	v.SetDefault("report.s3.endpoint", "")
	v.SetDefault("report.s3.access_key_id", "")
	v.SetDefault("report.s3.secret_access_key", "")
	v.SetDefault("report.s3.prefix", "")

	v.SetDefault("temporal.host_port", "")
	v.SetDefault("temporal.namespace", "")
	v.SetDefault("temporal.queue", "wither")
	v.SetDefault("temporal.tls", false)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("wither")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/wither")
	}

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("wither")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}

	// Paths derived from the installation root
	if config.LibDir == "" {
		config.LibDir = filepath.Join(config.RootDir, "lib")
	}
	if config.Path.Helper == "" {
		config.Path.Helper = filepath.Join(config.LibDir, "helpers", HelperName)
	}

	return config, nil
}

// defaultRootDir is the parent of the directory holding the executable,
// i.e. <root>/bin/wither
func defaultRootDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe))
}
