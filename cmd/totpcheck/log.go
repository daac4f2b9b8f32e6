// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger returns a text logger writing to w at the named level.
// An unrecognized level selects info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// errAttr returns an "error" attribute, or an empty one if err is nil.
func errAttr(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}
