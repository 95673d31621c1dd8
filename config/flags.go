package config

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigFlag names the flag of an optional run configuration file.
const ConfigFlag = "config"

// AddConfigFlag registers --config on fs.
func AddConfigFlag(fs *pflag.FlagSet) {
	fs.String(ConfigFlag, "", "run configuration file providing any of the flags")
}

// BindFlags parses args into fs and binds every flag into a fresh viper
// instance. Values from the --config file fill flags not given on the
// command line.
func BindFlags(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: bind flags: %w", err)
	}
	if path, _ := fs.GetString(ConfigFlag); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		log.WithField("file", path).Debug("run configuration loaded")
	}
	return v, nil
}

// Require reports the keys that were neither given as flags nor read from
// the run configuration.
func Require(v *viper.Viper, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if !v.IsSet(k) {
			missing = append(missing, "--"+k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required %s", strings.Join(missing, ", "))
	}
	return nil
}

// Setup reads the environment and configures logging.
func Setup() (Env, error) {
	e, err := ParseEnv()
	if err != nil {
		return e, err
	}
	return e, SetupLogger(e)
}
