// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

// Package totp validates time-based one-time passwords as specified in RFC
// 6238, using the HOTP construction of RFC 4226. It decodes shared secrets
// given in several textual encodings, computes and verifies codes over a
// window of time steps, and can reconstruct why a verification failed.
//
// See https://tools.ietf.org/html/rfc6238, https://tools.ietf.org/html/rfc4226
//
// All functions in this package are pure: they perform no I/O, read no clock,
// and hold no shared state, so they are safe for concurrent use.
package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"
)

// Errors reported by the package. Returned errors wrap one of these values
// and can be tested with errors.Is.
var (
	// ErrInvalidHex indicates a hex secret with a non-hex digit or odd length.
	ErrInvalidHex = errors.New("totp: invalid hex secret")

	// ErrInvalidBase32 indicates a secret outside the RFC 4648 base32 alphabet.
	ErrInvalidBase32 = errors.New("totp: invalid base32 secret")

	// ErrInvalidASCII indicates an ASCII secret with a character that does not
	// fit in a single byte.
	ErrInvalidASCII = errors.New("totp: invalid ASCII secret")

	// ErrUnsupportedEncoding indicates an unrecognized encoding.
	ErrUnsupportedEncoding = errors.New("totp: unsupported encoding")

	// ErrInvalidParameters indicates an empty key or out-of-range parameters.
	ErrInvalidParameters = errors.New("totp: invalid parameters")
)

// Default parameter values.
const (
	DefaultPeriod = 30 // seconds per time step
	DefaultDigits = 6  // digits per code
	DefaultWindow = 1  // steps accepted either side of the current one

	maxDigits = 10 // a truncated HOTP value has at most 10 decimal digits
)

// Hash identifies the HMAC hash function used to compute codes.
type Hash int

const (
	SHA1 Hash = iota // the default
	SHA256
	SHA512
)

// ParseHash parses the name of a hash function, ignoring case.
func ParseHash(s string) (Hash, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "")) {
	case "SHA1":
		return SHA1, nil
	case "SHA256":
		return SHA256, nil
	case "SHA512":
		return SHA512, nil
	}
	return 0, fmt.Errorf("%w: unknown hash %q", ErrInvalidParameters, s)
}

func (h Hash) String() string {
	switch h {
	case SHA1:
		return "SHA1"
	case SHA256:
		return "SHA256"
	case SHA512:
		return "SHA512"
	}
	return "Hash(" + strconv.Itoa(int(h)) + ")"
}

func (h Hash) newHash() (func() hash.Hash, bool) {
	switch h {
	case SHA1:
		return sha1.New, true
	case SHA256:
		return sha256.New, true
	case SHA512:
		return sha512.New, true
	}
	return nil, false
}

// Params holds the settings that control the generation of codes.
// The zero value is ready for use and selects the defaults.
type Params struct {
	Hash   Hash   // HMAC hash function (default SHA1)
	Period uint32 // seconds per time step (default 30)
	Digits int    // number of code digits, 1 to 10 (default 6)
}

// DefaultParams are the parameters used by Validate.
var DefaultParams = Params{Hash: SHA1, Period: DefaultPeriod, Digits: DefaultDigits}

func (p Params) period() uint32 {
	if p.Period == 0 {
		return DefaultPeriod
	}
	return p.Period
}

func (p Params) digits() int {
	if p.Digits == 0 {
		return DefaultDigits
	}
	return p.Digits
}

// Check reports whether p describes a usable configuration.
func (p Params) Check() error {
	if d := p.digits(); d < 1 || d > maxDigits {
		return fmt.Errorf("%w: digits %d out of range 1..%d", ErrInvalidParameters, d, maxDigits)
	}
	if _, ok := p.Hash.newHash(); !ok {
		return fmt.Errorf("%w: unknown hash %v", ErrInvalidParameters, p.Hash)
	}
	return nil
}

// TimeStep returns the number of period-second intervals elapsed at the given
// Unix time. A period of zero selects DefaultPeriod.
func TimeStep(unix uint64, period uint32) uint64 {
	if period == 0 {
		period = DefaultPeriod
	}
	return unix / uint64(period)
}

// TimeStep returns the time step containing the given Unix time.
func (p Params) TimeStep(unix uint64) uint64 { return TimeStep(unix, p.period()) }

// HOTP returns the HOTP code for key at the specified counter value.
// It reports ErrInvalidParameters if key is empty or p is not valid.
func (p Params) HOTP(key []byte, counter uint64) (string, error) {
	if len(key) == 0 {
		return "", fmt.Errorf("%w: empty key", ErrInvalidParameters)
	}
	if err := p.Check(); err != nil {
		return "", err
	}
	return format(truncate(p.hmac(key, counter)), p.digits()), nil
}

// TOTP returns the TOTP code for key at the given Unix time.
func (p Params) TOTP(key []byte, unix uint64) (string, error) {
	return p.HOTP(key, p.TimeStep(unix))
}

func (p Params) hmac(key []byte, counter uint64) []byte {
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], counter)
	newHash, _ := p.Hash.newHash()
	h := hmac.New(newHash, key)
	h.Write(ctr[:])
	return h.Sum(nil)
}

func truncate(digest []byte) uint64 {
	offset := digest[len(digest)-1] & 0x0f
	code := (uint64(digest[offset]&0x7f) << 24) |
		(uint64(digest[offset+1]) << 16) |
		(uint64(digest[offset+2]) << 8) |
		(uint64(digest[offset+3]) << 0)
	return code
}

const padding = "0000000000000000"

func format(code uint64, width int) string {
	s := strconv.FormatUint(code, 10)
	if len(s) < width {
		s = padding[:width-len(s)] + s // left-pad with zeros
	}
	return s[len(s)-width:]
}
