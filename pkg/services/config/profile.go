package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultBaseURL = "https://api.bsale.io/v1"

// Profile holds the per-account settings for a report run.
type Profile struct {
	BaseURL     string `mapstructure:"base_url"`
	Token       string `mapstructure:"token" validate:"required"`
	CacheDir    string `mapstructure:"cache_dir"`
	PageLimit   int    `mapstructure:"page_limit"`
	PageDelayMs int    `mapstructure:"page_delay_ms"`
}

func (p *Profile) PageDelay() time.Duration {
	return time.Duration(p.PageDelayMs) * time.Millisecond
}

// LoadProfile reads the profile file and applies BSALE_* environment
// overrides, so the access token can stay out of the file.
func LoadProfile(profilePath string) (*Profile, error) {
	v := viper.New()
	v.SetEnvPrefix("bsale")
	v.AutomaticEnv()

	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("token", "")
	v.SetDefault("cache_dir", "data/cache")
	v.SetDefault("page_limit", 50)
	v.SetDefault("page_delay_ms", 200)

	if profilePath != "" {
		v.SetConfigFile(profilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	if strings.TrimSpace(profile.Token) == "" {
		return nil, fmt.Errorf("no access token: set token in %s or BSALE_TOKEN in the environment", profilePath)
	}
	return &profile, nil
}
