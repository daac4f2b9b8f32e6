// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/creachadair/totp"
	"github.com/joho/godotenv"
)

// Config holds the settings of a checker session. Values are read from
// TOTPCHECK_-prefixed environment variables, optionally preloaded from a
// .env file, and command-line flags take precedence.
type Config struct {
	Encoding string `env:"ENCODING" envDefault:"ASCII"`
	Hash     string `env:"HASH" envDefault:"SHA1"`
	Digits   int    `env:"DIGITS" envDefault:"6"`
	Period   uint32 `env:"PERIOD" envDefault:"30"`
	Window   int    `env:"WINDOW" envDefault:"1"`

	// If empty, the user is asked to choose from a menu.
	TimeZone string `env:"TIMEZONE"`

	Diagnose bool   `env:"DIAGNOSE" envDefault:"true"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

const envPrefix = "TOTPCHECK_"

// loadConfig parses command-line args and the environment into a Config.
func loadConfig(args []string, stderr io.Writer) (Config, error) {
	flags := flag.NewFlagSet("totpcheck", flag.ContinueOnError)
	flags.SetOutput(stderr)

	envFile := flags.String("env-file", "", "Load environment variables from this file (default .env, if present)")
	encoding := flags.String("encoding", "", "Secret encoding: HEX, BASE32, ASCII, or UTF8")
	timeZone := flags.String("timezone", "", "Time zone for displayed times: UTC, Local, or an IANA name")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadDotEnv(*envFile); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if *encoding != "" {
		cfg.Encoding = *encoding
	}
	if *timeZone != "" {
		cfg.TimeZone = *timeZone
	}
	return cfg, nil
}

// loadDotEnv loads variables from path without overriding ones already set.
// An empty path selects .env, which need not exist.
func loadDotEnv(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Params resolves the code parameters and secret encoding named by c.
func (c Config) Params() (totp.Params, totp.Encoding, error) {
	enc, err := totp.ParseEncoding(c.Encoding)
	if err != nil {
		return totp.Params{}, 0, err
	}
	hash, err := totp.ParseHash(c.Hash)
	if err != nil {
		return totp.Params{}, 0, err
	}
	if c.Period == 0 {
		return totp.Params{}, 0, fmt.Errorf("%w: period must be positive", totp.ErrInvalidParameters)
	}
	if c.Window < 0 {
		return totp.Params{}, 0, fmt.Errorf("%w: negative window %d", totp.ErrInvalidParameters, c.Window)
	}
	p := totp.Params{Hash: hash, Period: c.Period, Digits: c.Digits}
	if err := p.Check(); err != nil {
		return totp.Params{}, 0, err
	}
	return p, enc, nil
}
