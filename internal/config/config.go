// Package config builds the command line entry point and the settings it
// collects. Every flag can also be set through the environment variable of
// the same name, upper-cased with dashes turned into underscores
// (--success-at-count → SUCCESS_AT_COUNT).
package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ReleaseVersion = "1.0.0"

	// devSecret signs cookies in debug mode when no secret is configured.
	devSecret = "dev_secret_change_me"
)

type Config struct {
	Bind           string
	Port           int
	Vocab          string
	SuccessAtCount int
	Seed           string
	SecretKey      string
	Debug          bool
	LogLevel       string
	DB             string
	DailySalt      string
	SessionTTL     time.Duration
	ClientOrigin   string
	SecureCookies  bool
}

// Validate checks the settings and fills the debug-only secret.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.SuccessAtCount < 1 {
		return fmt.Errorf("invalid success-at-count (must be at least 1): %d", c.SuccessAtCount)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("invalid session-ttl (must be positive): %s", c.SessionTTL)
	}
	if c.SecretKey == "" {
		if !c.Debug {
			return errors.New("--secret-key is required outside of --debug")
		}
		c.SecretKey = devSecret
	}
	return nil
}

// SeedValue returns the configured jumble seed, or -1 when unseeded.
func (c *Config) SeedValue() int64 { return ParseSeed(c.Seed) }

// ParseSeed reads a seed setting. Anything that is not a non-negative
// integer means "no seed" and yields -1.
func ParseSeed(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// envName maps a flag name to its environment variable.
func envName(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// NewCommand returns the root command. run is invoked with validated
// settings.
func NewCommand(cfg *Config, run func(ctx context.Context, cfg *Config) error) *cobra.Command {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// envErr holds values from the environment that did not parse.
	var envErr error

	cmd := &cobra.Command{
		Use:           "vocab",
		Short:         "Find the vocabulary words hidden in a jumble of letters.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       ReleaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 5000, "port to listen on (env: PORT)")
	fs.StringVar(&cfg.Vocab, "vocab", "", "vocabulary file, one word per line; empty uses the built-in list (env: VOCAB)")
	fs.IntVar(&cfg.SuccessAtCount, "success-at-count", 3, "words to find before the round is won (env: SUCCESS_AT_COUNT)")
	fs.StringVar(&cfg.Seed, "seed", "", "jumble seed; empty, negative or non-numeric means random (env: SEED)")
	fs.StringVar(&cfg.SecretKey, "secret-key", "", "key used to sign session cookies (env: SECRET_KEY)")
	fs.BoolVarP(&cfg.Debug, "debug", "d", false, "human readable debug logging (env: DEBUG)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "minimum log level (env: LOG_LEVEL)")
	fs.StringVar(&cfg.DB, "db", "", "sqlite file for daily results; empty disables them (env: DB)")
	fs.StringVar(&cfg.DailySalt, "daily-salt", "local_dev_salt", "salt for the daily puzzle seed (env: DAILY_SALT)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 2*time.Hour, "time before idle sessions are dropped (env: SESSION_TTL)")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", false, "mark session cookies Secure and SameSite=None; enable only behind https (env: SECURE_COOKIES)")
	fs.StringVar(&cfg.ClientOrigin, "client-origin", "", "origin allowed to make credentialed CORS requests (env: CLIENT_ORIGIN)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			if err := fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
				envErr = errors.Join(envErr, fmt.Errorf("invalid %s: %w", envName(f.Name), err))
			}
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("vocab v{{.Version}}\n")

	return cmd
}
