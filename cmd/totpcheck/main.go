// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

// Program totpcheck interactively checks one-time PINs against a shared
// secret. When a PIN is rejected it prints a diagnostic report, including the
// codes the secret would produce under other encodings.
//
// Usage:
//
//	totpcheck [-env-file path] [-encoding ASCII|HEX|BASE32|UTF8] [-timezone name]
//
// Settings are also read from TOTPCHECK_ENCODING, TOTPCHECK_HASH,
// TOTPCHECK_DIGITS, TOTPCHECK_PERIOD, TOTPCHECK_WINDOW, TOTPCHECK_TIMEZONE,
// TOTPCHECK_DIAGNOSE, and TOTPCHECK_LOG_LEVEL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	_ "time/tzdata"
)

func main() {
	cfg, err := loadConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "totpcheck: %v\n", err)
		os.Exit(2)
	}

	log := newLogger(os.Stderr, cfg.LogLevel)
	sh, err := newShell(cfg, os.Stdin, os.Stdout, log, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "totpcheck: %v\n", err)
		os.Exit(2)
	}
	if err := sh.Run(context.Background()); err != nil {
		log.Error("session ended", errAttr(err))
		os.Exit(1)
	}
}
