package config

import (
	"os"
	"sync"
)

// GlobalConfig holds the configuration for the running command.
var GlobalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects GlobalConfig

// InitGlobalConfig loads the configuration from path (empty for defaults only)
// plus the environment seen through lookupEnv, and installs it as the global config.
func InitGlobalConfig(path string, lookupEnv func(string) (string, bool)) error {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	cfg, err := LoadWithEnv(path, lookupEnv)
	if err != nil {
		return err
	}
	SetGlobalConfig(cfg)
	return nil
}

// SetGlobalConfig installs cfg as the global config.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	GlobalConfig = cfg
}

// ResetGlobalConfigForTest resets the global config for testing purposes.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// GetGlobalConfig returns the global configuration, falling back to defaults
// when none has been loaded.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := GlobalConfig
	globalConfigMu.RUnlock()

	if cfg == nil {
		return New()
	}
	return cfg
}

// ResolveConfigPath picks the config file: the --config flag value first,
// then FIXTUREGEN_CONFIG. An empty result means defaults only.
func ResolveConfigPath(flagValue string, lookupEnv func(string) (string, bool)) string {
	if flagValue != "" {
		return flagValue
	}
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if v, ok := lookupEnv(EnvConfigPath); ok {
		return v
	}
	return ""
}
