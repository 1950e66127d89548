package dirigera

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultConfigFile is where the generate-token command writes its output
// and where NewDefaultClient looks for it.
const DefaultConfigFile = "config.toml"

// Config carries the persisted hub address and access token. The library
// itself never writes it; persistence is the caller's (or the generate-token
// command's) responsibility.
type Config struct {
	IPAddress string
	Token     string
}

// LoadConfig reads a TOML config file with `ip-address` and `token` keys, as
// written by SaveConfig.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{
		IPAddress: v.GetString("ip-address"),
		Token:     v.GetString("token"),
	}
	if cfg.IPAddress == "" {
		return nil, fmt.Errorf("%w (in %s)", ErrEmptyIPAddress, path)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w (in %s)", ErrEmptyToken, path)
	}

	return cfg, nil
}

// SaveConfig writes the config as TOML. It refuses to overwrite an existing
// file: the token it would clobber cannot be recovered without re-pairing.
func SaveConfig(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("dirigera: config cannot be nil")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("dirigera: %s already exists", path)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("ip-address", cfg.IPAddress)
	v.Set("token", cfg.Token)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

// NewClientFromConfig constructs a client from a loaded config. It is
// exactly equivalent to NewClient(cfg.IPAddress, cfg.Token, opts...).
func NewClientFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("dirigera: config cannot be nil")
	}
	return NewClient(cfg.IPAddress, cfg.Token, opts...)
}

// NewDefaultClient reads DefaultConfigFile from the working directory and
// constructs a client from it. This is the convenience layer over explicit
// construction; there is no hidden global state beyond the file itself.
func NewDefaultClient(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig(DefaultConfigFile)
	if err != nil {
		return nil, err
	}
	return NewClientFromConfig(cfg, opts...)
}
