// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package totp

import (
	"encoding/hex"
	"strings"
)

// A Report describes a verification attempt in enough detail to explain why
// it failed. The most common cause of failure in practice is a secret given in
// a different encoding than the one it was decoded with, so a Report also
// records the code each other encoding would have produced.
type Report struct {
	Secret    string   // the secret as given
	Encoding  Encoding // the encoding used to decode Secret
	SecretLen int      // length of Secret in characters
	KeyHex    string   // the decoded key, upper-case hex
	KeyLen    int      // length of the decoded key in bytes

	Candidate string // the code being verified
	Code      string // the code at the current time step
	Unix      uint64 // the Unix time of the attempt
	Step      uint64 // the current time step
	Exact     bool   // Candidate == Code

	Window   int    // the verification window
	Current  Result // verification with a window of zero
	Windowed Result // verification with Window

	Probes []Probe // one per encoding other than Encoding, in Encodings order
}

// A Probe is the code computed at the current step from the secret decoded
// with an alternative encoding.
type Probe struct {
	Encoding Encoding
	Code     string // empty if Err != nil
	KeyLen   int
	Match    bool  // Code equals the candidate
	Err      error // decoding or computation failure
}

// Incompatible reports whether the secret could not be used with the probe's
// encoding.
func (p Probe) Incompatible() bool { return p.Err != nil }

// Mismatch returns the alternative encodings whose code equals the candidate.
// A non-empty result strongly suggests the secret was declared with the wrong
// encoding.
func (r *Report) Mismatch() []Encoding {
	var out []Encoding
	for _, p := range r.Probes {
		if p.Match {
			out = append(out, p.Encoding)
		}
	}
	return out
}

// Diagnose reconstructs the verification of code against secret decoded with
// enc at the Unix time unix. Errors decoding secret with enc, or computing
// codes from it, are returned. Failures for the alternative encodings are
// expected and are recorded in the corresponding Probe instead.
func Diagnose(secret string, enc Encoding, code string, unix uint64, p Params, window int) (*Report, error) {
	key, err := DecodeSecret(secret, enc)
	if err != nil {
		return nil, err
	}
	cur, err := p.TOTP(key, unix)
	if err != nil {
		return nil, err
	}
	exact, err := p.Verify(key, code, unix, 0)
	if err != nil {
		return nil, err
	}
	wide, err := p.Verify(key, code, unix, window)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Secret:    secret,
		Encoding:  enc,
		SecretLen: len([]rune(secret)),
		KeyHex:    strings.ToUpper(hex.EncodeToString(key)),
		KeyLen:    len(key),
		Candidate: code,
		Code:      cur,
		Unix:      unix,
		Step:      p.TimeStep(unix),
		Exact:     cur == code,
		Window:    window,
		Current:   exact,
		Windowed:  wide,
	}
	for _, alt := range allEncodings {
		if alt == enc {
			continue
		}
		r.Probes = append(r.Probes, probe(secret, alt, code, unix, p))
	}
	return r, nil
}

func probe(secret string, enc Encoding, code string, unix uint64, p Params) Probe {
	key, err := DecodeSecret(secret, enc)
	if err != nil {
		return Probe{Encoding: enc, Err: err}
	}
	alt, err := p.TOTP(key, unix)
	if err != nil {
		return Probe{Encoding: enc, KeyLen: len(key), Err: err}
	}
	return Probe{Encoding: enc, Code: alt, KeyLen: len(key), Match: alt == code}
}
