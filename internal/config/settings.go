package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys. Viper maps each to the upper-cased environment variable
// (log_level → LOG_LEVEL), which is what Meltano exports for extensions.
const (
	KeyLogLevel      = "log_level"
	KeyLogTimestamps = "log_timestamps"
	KeyLogJSON       = "meltano_log_json"
)

// Flag names bound to the keys above.
const (
	FlagLogLevel      = "log-level"
	FlagLogTimestamps = "log-timestamps"
	FlagLogJSON       = "meltano-log-json"
)

// Settings holds the logging options shared by every command.
type Settings struct {
	LogLevel      string
	LogTimestamps bool
	LogJSON       bool
}

// RegisterFlags adds the persistent logging flags to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(FlagLogLevel, "info", "Log level (debug, info, warn, error)")
	flags.Bool(FlagLogTimestamps, false, "Include timestamps in log output")
	flags.Bool(FlagLogJSON, false, "Emit logs as JSON")
}

// Load resolves Settings from flags (when changed), then the environment,
// then defaults. flags may be nil.
func Load(flags *pflag.FlagSet) *Settings {
	v := viper.New()
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogTimestamps, false)
	v.SetDefault(KeyLogJSON, false)
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{
			KeyLogLevel:      FlagLogLevel,
			KeyLogTimestamps: FlagLogTimestamps,
			KeyLogJSON:       FlagLogJSON,
		} {
			if f := flags.Lookup(name); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	return &Settings{
		LogLevel:      v.GetString(KeyLogLevel),
		LogTimestamps: v.GetBool(KeyLogTimestamps),
		LogJSON:       v.GetBool(KeyLogJSON),
	}
}
