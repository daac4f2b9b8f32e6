// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/creachadair/totp"
)

// Shell is an interactive session that reads secrets and PINs and reports
// whether each PIN is valid.
type Shell struct {
	cfg    Config
	params totp.Params
	enc    totp.Encoding

	in  *bufio.Scanner
	out io.Writer
	log *slog.Logger
	now func() time.Time

	zone *time.Location
}

// newShell constructs a Shell from cfg. If now is nil, time.Now is used.
func newShell(cfg Config, in io.Reader, out io.Writer, log *slog.Logger, now func() time.Time) (*Shell, error) {
	params, enc, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &Shell{
		cfg:    cfg,
		params: params,
		enc:    enc,
		in:     bufio.NewScanner(in),
		out:    out,
		log:    log,
		now:    now,
		zone:   time.UTC,
	}, nil
}

// Run selects a time zone and then checks PINs until the input is exhausted,
// the user enters an empty secret or "exit", or ctx ends.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "=== TOTP Validator ===")
	fmt.Fprintln(s.out)
	s.selectZone()
	fmt.Fprintln(s.out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		secret, ok := s.prompt("Enter the secret (or 'exit' to quit): ")
		if !ok || secret == "" || strings.EqualFold(secret, "exit") {
			return s.in.Err()
		}
		pin, ok := s.prompt(fmt.Sprintf("Enter the %d-digit PIN: ", s.digits()))
		if !ok {
			return s.in.Err()
		}
		if pin == "" {
			fmt.Fprintln(s.out, "Invalid PIN. Try again.")
			fmt.Fprintln(s.out)
			continue
		}
		s.check(secret, pin)
		fmt.Fprintln(s.out)
	}
}

func (s *Shell) digits() int {
	if s.params.Digits == 0 {
		return totp.DefaultDigits
	}
	return s.params.Digits
}

// prompt writes msg and reads one line of input. It reports false at the end
// of input.
func (s *Shell) prompt(msg string) (string, bool) {
	fmt.Fprint(s.out, msg)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// selectZone sets the display time zone from the configuration, or from the
// menu if none is configured. A zone that cannot be loaded falls back to UTC.
func (s *Shell) selectZone() {
	name := s.cfg.TimeZone
	if name == "" {
		fmt.Fprintln(s.out, "Select the time zone:")
		for _, c := range zoneChoices {
			fmt.Fprintf(s.out, "%s. %s\n", c.key, c.label)
		}
		answer, _ := s.prompt(fmt.Sprintf("Enter your choice (1-%d): ", len(zoneChoices)))
		name = zoneForChoice(answer)
	}
	loc, err := loadZone(name)
	if err != nil {
		s.log.Warn("time zone unavailable, using UTC", slog.String("zone", name), errAttr(err))
		fmt.Fprintf(s.out, "⚠ Could not load time zone %q, using UTC\n", name)
		s.zone = time.UTC
		return
	}
	s.zone = loc
	fmt.Fprintf(s.out, "✓ Time zone: %s\n", loc)
}

// check validates pin against secret at the current time and prints the
// outcome, followed by a diagnostic report if the PIN is invalid.
func (s *Shell) check(secret, pin string) {
	unix := s.unixNow()
	key, err := totp.DecodeSecret(secret, s.enc)
	if err != nil {
		s.log.Debug("decode secret failed", slog.String("encoding", s.enc.String()), errAttr(err))
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	res, err := s.params.Verify(key, pin, unix, s.cfg.Window)
	if err != nil {
		s.log.Debug("verify failed", errAttr(err))
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.log.Info("pin checked",
		slog.String("encoding", s.enc.String()),
		slog.Bool("valid", res.Matched),
		slog.Int("offset", res.Offset),
	)
	if res.Matched {
		fmt.Fprintln(s.out, "✓ PIN VALID - authentication succeeded")
		return
	}
	fmt.Fprintln(s.out, "✗ PIN INVALID - authentication failed")
	if !s.cfg.Diagnose {
		return
	}

	r, err := totp.Diagnose(secret, s.enc, pin, unix, s.params, s.cfg.Window)
	if err != nil {
		fmt.Fprintf(s.out, "error: diagnostics: %v\n", err)
		return
	}
	if m := r.Mismatch(); len(m) != 0 {
		s.log.Info("possible encoding mismatch", slog.String("declared", s.enc.String()), slog.Any("matched", m))
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "--- DIAGNOSTICS ---")
	renderReport(s.out, r, s.zone)
	fmt.Fprintln(s.out, "--- END DIAGNOSTICS ---")
}

func (s *Shell) unixNow() uint64 {
	t := s.now().Unix()
	if t < 0 {
		return 0
	}
	return uint64(t)
}
