package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings are process-level options read from the environment and an
// optional config file
type Settings struct {
	DBPath         string   `mapstructure:"COSTBREAKDOWN_DB_PATH"`
	LogLevel       string   `mapstructure:"LOG_LEVEL"`
	LogPretty      bool     `mapstructure:"LOG_PRETTY"`
	DisabledPayers []string `mapstructure:"DISABLED_PAYERS"`
	IRSLimitsFile  string   `mapstructure:"IRS_LIMITS_FILE"`
}

var settingKeys = []string{
	"COSTBREAKDOWN_DB_PATH",
	"LOG_LEVEL",
	"LOG_PRETTY",
	"DISABLED_PAYERS",
	"IRS_LIMITS_FILE",
}

// LoadSettings reads settings. configFile may be empty; when set it must exist.
func LoadSettings(configFile string) (*Settings, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("COSTBREAKDOWN_DB_PATH", "costbreakdown.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("DISABLED_PAYERS", "")
	v.SetDefault("IRS_LIMITS_FILE", "")

	for _, key := range settingKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	s.DisabledPayers = splitList(s.DisabledPayers)

	if strings.TrimSpace(s.DBPath) == "" {
		return nil, fmt.Errorf("COSTBREAKDOWN_DB_PATH cannot be empty")
	}
	return s, nil
}

// splitList flattens comma separated entries and drops blanks
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
