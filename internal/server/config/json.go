package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arshan09/AuthenticationApp/internal/flagx"
	"github.com/arshan09/AuthenticationApp/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file. Every
// field is optional; absent fields keep the value from the defaults layer.
type JsonConfig struct {
	Port                         *int            `json:"port"`
	GRPCHealthAddr               *string         `json:"grpc_health_addr"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	AccessTokenSecret            *string         `json:"access_token_secret"`
	RefreshTokenSecret           *string         `json:"refresh_token_secret"`
	ResetTokenSecret             *string         `json:"reset_token_secret"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	ResetTokenValidityDuration   *timex.Duration `json:"reset_token_validity_duration"`
	ClientURL                    *string         `json:"client_url"`
	EmailUser                    *string         `json:"email_user"`
	EmailPass                    *string         `json:"email_pass"`
	EmailFrom                    *string         `json:"email_from"`
	EmailRegion                  *string         `json:"email_region"`
	EmailEndpoint                *string         `json:"email_endpoint"`
	UsersMaxPageSize             *int            `json:"users_max_page_size"`
	RequireAccessToken           *bool           `json:"require_access_token"`
	LogLevel                     *string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config (or $AUTH_CONFIG_FILE) and
// copies every present field into config. No file means no changes.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	setIf(&config.Port, c.Port)
	setIf(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.AccessTokenSecret, c.AccessTokenSecret)
	setIf(&config.RefreshTokenSecret, c.RefreshTokenSecret)
	setIf(&config.ResetTokenSecret, c.ResetTokenSecret)
	setIf(&config.ClientURL, c.ClientURL)
	setIf(&config.EmailUser, c.EmailUser)
	setIf(&config.EmailPass, c.EmailPass)
	setIf(&config.EmailFrom, c.EmailFrom)
	setIf(&config.EmailRegion, c.EmailRegion)
	setIf(&config.EmailEndpoint, c.EmailEndpoint)
	setIf(&config.UsersMaxPageSize, c.UsersMaxPageSize)
	setIf(&config.RequireAccessToken, c.RequireAccessToken)
	setIf(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.ResetTokenValidityDuration != nil {
		config.ResetTokenValidityDuration = c.ResetTokenValidityDuration.Duration
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
