// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package totp

import (
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Encoding identifies how a textual secret is converted to key bytes.
// The zero value is not a valid encoding.
type Encoding int

const (
	ASCII  Encoding = iota + 1 // one byte per character, code points 0..255
	Hex                        // pairs of hex digits
	Base32                     // RFC 4648 base32, case and padding insensitive
	UTF8                       // the UTF-8 encoding of the text
)

var allEncodings = []Encoding{ASCII, Hex, Base32, UTF8}

// Encodings returns all supported encodings in the order Diagnose probes them.
func Encodings() []Encoding { return append([]Encoding(nil), allEncodings...) }

// ParseEncoding parses an encoding name (HEX, BASE32, ASCII, UTF8), ignoring case.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASCII":
		return ASCII, nil
	case "HEX":
		return Hex, nil
	case "BASE32":
		return Base32, nil
	case "UTF8", "UTF-8":
		return UTF8, nil
	}
	return 0, fmt.Errorf("%w: %q (use HEX, BASE32, ASCII, UTF8)", ErrUnsupportedEncoding, s)
}

func (e Encoding) String() string {
	switch e {
	case ASCII:
		return "ASCII"
	case Hex:
		return "HEX"
	case Base32:
		return "BASE32"
	case UTF8:
		return "UTF8"
	}
	return "Encoding(" + strconv.Itoa(int(e)) + ")"
}

// DecodeSecret converts raw to key bytes according to enc.
//
// An empty raw string decodes to an empty key under every encoding; the error
// surfaces when a code is computed from it.
func DecodeSecret(raw string, enc Encoding) ([]byte, error) {
	switch enc {
	case ASCII:
		key, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidASCII, err)
		}
		return key, nil

	case Hex:
		if len(raw)%2 != 0 {
			return nil, fmt.Errorf("%w: odd length %d", ErrInvalidHex, len(raw))
		}
		key, err := hex.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
		}
		return key, nil

	case Base32:
		return parseBase32(raw)

	case UTF8:
		return []byte(raw), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedEncoding, enc)
}

// parseBase32 parses a key encoded as base32, which is the typical format used
// by two-factor authentication setup tools. Whitespace is ignored, and padding
// is restored if it was omitted.
func parseBase32(s string) ([]byte, error) {
	clean := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	if n := len(clean) % 8; n != 0 {
		clean += strings.Repeat("=", 8-n)
	}
	dec, err := base32.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase32, err)
	}
	return dec, nil
}
