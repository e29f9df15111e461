// Package config resolves checker settings from flags, environment and
// defaults into an explicit Config.
package config

import (
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"os"
	"path/filepath"
	"strings"
)

const EnvPrefix = "CHECKBM"

const (
	KeyLayout  = "layout"
	KeyRules   = "rules"
	KeyName    = "name"
	KeyDevice  = "device"
	KeyVerbose = "verbose"
)

type Config struct {
	Layout  string
	Rules   string
	Name    string
	Device  string
	Verbose bool
}

// Defaults returns the default file locations: the layout file two levels
// above the checker directory, the rule file beside it and the device image
// in the home directory.
func Defaults(execDir, home string) map[string]string {
	return map[string]string{
		KeyLayout: filepath.Join(execDir, "..", "..", "include", "fs.layout"),
		KeyRules:  filepath.Join(execDir, "golden.json"),
		KeyDevice: filepath.Join(home, "ddriver"),
	}
}

// New returns a viper instance with defaults and CHECKBM_* environment
// lookup configured.
func New(execDir, home string) *viper.Viper {
	v := viper.New()
	for key, value := range Defaults(execDir, home) {
		v.SetDefault(key, value)
	}
	v.SetDefault(KeyVerbose, false)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// NewFromEnvironment uses the running executable's directory and $HOME.
func NewFromEnvironment() (*viper.Viper, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, Fatal(err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, Fatal(err)
	}
	return New(filepath.Dir(exe), home), nil
}

// BindFlags binds the checker flags in flags to v.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyLayout, KeyRules, KeyName, KeyDevice, KeyVerbose} {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}
		err := v.BindPFlag(key, flag)
		if err != nil {
			return Fatal(err)
		}
	}
	return nil
}

// Load resolves a Config from v. The name is required.
func Load(v *viper.Viper) (*Config, error) {
	c := Config{
		Layout:  v.GetString(KeyLayout),
		Rules:   v.GetString(KeyRules),
		Name:    v.GetString(KeyName),
		Device:  v.GetString(KeyDevice),
		Verbose: v.GetBool(KeyVerbose),
	}
	if c.Name == "" {
		return nil, ErrNoName
	}
	return &c, nil
}

// Validate checks that the layout, rule and device files exist in fs.
func (c *Config) Validate(fs afero.Fs) error {
	for _, filename := range []string{c.Layout, c.Rules, c.Device} {
		info, err := fs.Stat(filename)
		if err != nil || info.IsDir() {
			return Fatalf("file not found: %s", filename)
		}
	}
	return nil
}
