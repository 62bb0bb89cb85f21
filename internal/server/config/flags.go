package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/arshan09/AuthenticationApp/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-p int      HTTP listen port
//	-g string   gRPC health bind address
//	-d string   PostgreSQL DSN
//	-u string   client base URL for reset links
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-x int      reset token validity, minutes
//	-l string   log level
//
// Unknown arguments are filtered out first with flagx.FilterArgs so the -c
// config flag and flags of other components do not collide.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-p", "-g", "-d", "-u", "-t", "-r", "-x", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.IntVar(&config.Port, "p", config.Port, "HTTP port")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "gRPC health address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.ClientURL, "u", config.ClientURL, "client base URL")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	accessTTL := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTTL := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")
	resetTTL := fs.Int("x", int(config.ResetTokenValidityDuration.Minutes()), "reset token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Durations are only touched when the flag was given, so sub-minute
	// values from JSON or env survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTTL) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshTTL) * time.Minute
		case "x":
			config.ResetTokenValidityDuration = time.Duration(*resetTTL) * time.Minute
		}
	})
	return nil
}
