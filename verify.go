// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package totp

import (
	"crypto/subtle"
	"fmt"
)

// Result reports the outcome of a verification.
type Result struct {
	Matched bool   // whether any step in the window produced the code
	Offset  int    // offset of the matching step from the current one
	Step    uint64 // the matching time step
}

// Verify reports whether code is the TOTP code for key at any time step within
// window steps of the step containing the Unix time unix.
//
// Steps are tried in order of increasing distance from the current step, the
// earlier step first at each distance (0, -1, +1, -2, +2, ...), and the first
// match wins. Steps before zero are skipped. Codes are compared for exact
// equality, with no characters removed from either side. When no step
// matches, the result is the zero Result.
func (p Params) Verify(key []byte, code string, unix uint64, window int) (Result, error) {
	if window < 0 {
		return Result{}, fmt.Errorf("%w: negative window %d", ErrInvalidParameters, window)
	}
	t0 := p.TimeStep(unix)
	for _, off := range offsets(window) {
		if off < 0 && uint64(-off) > t0 {
			continue
		}
		step := t0 + uint64(int64(off))
		want, err := p.HOTP(key, step)
		if err != nil {
			return Result{}, err
		}
		if subtle.ConstantTimeCompare([]byte(want), []byte(code)) == 1 {
			return Result{Matched: true, Offset: off, Step: step}, nil
		}
	}
	return Result{}, nil
}

// offsets returns the step offsets of a window in the order they are tried.
func offsets(window int) []int {
	out := make([]int, 1, 2*window+1)
	for d := 1; d <= window; d++ {
		out = append(out, -d, d)
	}
	return out
}

// Validate reports whether code is valid for secret, decoded with enc, at the
// Unix time unix, using DefaultParams and DefaultWindow.
// Decoding and parameter errors are returned to the caller.
func Validate(secret string, enc Encoding, code string, unix uint64) (bool, error) {
	key, err := DecodeSecret(secret, enc)
	if err != nil {
		return false, err
	}
	res, err := DefaultParams.Verify(key, code, unix, DefaultWindow)
	if err != nil {
		return false, err
	}
	return res.Matched, nil
}
