// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/creachadair/totp"
)

// renderReport writes r to w as human-readable text. Times are shown in loc.
func renderReport(w io.Writer, r *totp.Report, loc *time.Location) {
	line := func(format string, args ...any) {
		fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
	}

	line("=== ENCODING ===")
	line("Original secret: %s", r.Secret)
	line("Encoding used: %v", r.Encoding)
	line("Secret length: %d characters", r.SecretLen)
	line("Secret as bytes: %s", r.KeyHex)
	line("Key length: %d bytes", r.KeyLen)
	fmt.Fprintln(w)

	at := time.Unix(int64(r.Unix), 0).In(loc)
	line("=== CURRENT VALIDATION ===")
	line("PIN entered: %s", r.Candidate)
	line("Current code: %s", r.Code)
	line("Unix time: %d (%s)", r.Unix, at.Format("2006-01-02 15:04:05 MST"))
	line("Time step: %d", r.Step)
	line("Exact match: %v", r.Exact)
	fmt.Fprintln(w)

	line("Without window: %v, time step matched: %s", r.Current.Matched, matchedStep(r.Current))
	line("With window ±%d: %v, time step matched: %s", r.Window, r.Windowed.Matched, matchedStep(r.Windowed))
	fmt.Fprintln(w)

	line("=== OTHER ENCODINGS ===")
	for _, p := range r.Probes {
		switch {
		case p.Incompatible():
			line("%v: incompatible format", p.Encoding)
		case p.Match:
			line("%v: %s <- MATCH! (%d bytes)", p.Encoding, p.Code, p.KeyLen)
		default:
			line("%v: %s (%d bytes)", p.Encoding, p.Code, p.KeyLen)
		}
	}
	if m := r.Mismatch(); len(m) != 0 {
		names := make([]string, len(m))
		for i, enc := range m {
			names[i] = enc.String()
		}
		line("Hint: the PIN matches the secret decoded as %s, not %v", strings.Join(names, " or "), r.Encoding)
	}
}

func matchedStep(res totp.Result) string {
	if !res.Matched {
		return "none"
	}
	return fmt.Sprintf("%d (offset %+d)", res.Step, res.Offset)
}
