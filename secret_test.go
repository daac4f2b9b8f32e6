// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package totp_test

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/totp"
	"github.com/google/go-cmp/cmp"
)

func TestDecodeSecret(t *testing.T) {
	tests := []struct {
		raw  string
		enc  totp.Encoding
		want []byte
	}{
		{"12345678901234567890", totp.ASCII, key20},
		{"café", totp.ASCII, []byte{'c', 'a', 'f', 0xe9}},
		{"café", totp.UTF8, []byte{'c', 'a', 'f', 0xc3, 0xa9}},
		{"3132333435363738393031323334353637383930", totp.Hex, key20},
		{"DEADbeef", totp.Hex, []byte{0xde, 0xad, 0xbe, 0xef}},
		{"GEZDGNBVGY3TQOJQ", totp.Base32, []byte("1234567890")},
		{"gezdgnbvgy3tqojq", totp.Base32, []byte("1234567890")},
		{"MFYH A3DF EB2G C4TU", totp.Base32, []byte("apple tart")},
		{"JBSWY3DPEHPK3PXP", totp.Base32, []byte("Hello!\xde\xad\xbe\xef")},
		{"MZXW6===", totp.Base32, []byte("foo")},
		{"MZXW6", totp.Base32, []byte("foo")},
	}
	for _, test := range tests {
		got, err := totp.DecodeSecret(test.raw, test.enc)
		if err != nil {
			t.Errorf("DecodeSecret(%q, %v): unexpected error: %v", test.raw, test.enc, err)
			continue
		}
		if diff := cmp.Diff(got, test.want); diff != "" {
			t.Errorf("DecodeSecret(%q, %v) (-got, +want):\n%s", test.raw, test.enc, diff)
		}
	}
}

func TestDecodeSecretEmpty(t *testing.T) {
	for _, enc := range totp.Encodings() {
		got, err := totp.DecodeSecret("", enc)
		if err != nil {
			t.Errorf("DecodeSecret(\"\", %v): unexpected error: %v", enc, err)
		} else if len(got) != 0 {
			t.Errorf("DecodeSecret(\"\", %v): got %q, want empty", enc, got)
		}
	}
}

func TestDecodeSecretErrors(t *testing.T) {
	tests := []struct {
		raw  string
		enc  totp.Encoding
		want error
	}{
		{"abc", totp.Hex, totp.ErrInvalidHex},
		{"0g", totp.Hex, totp.ErrInvalidHex},
		{"12 34", totp.Hex, totp.ErrInvalidHex},
		{"GEZDGNB1", totp.Base32, totp.ErrInvalidBase32},
		{"hello!", totp.Base32, totp.ErrInvalidBase32},
		{"price: €5", totp.ASCII, totp.ErrInvalidASCII},
		{"secret", totp.Encoding(0), totp.ErrUnsupportedEncoding},
		{"secret", totp.Encoding(42), totp.ErrUnsupportedEncoding},
	}
	for _, test := range tests {
		got, err := totp.DecodeSecret(test.raw, test.enc)
		if !errors.Is(err, test.want) {
			t.Errorf("DecodeSecret(%q, %v): got (%q, %v), want %v", test.raw, test.enc, got, err, test.want)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"00",
		"ff00FF",
		"3132333435363738393031323334353637383930",
		"DeadBeefCafeBabe0123456789abcdef",
	}
	for _, in := range inputs {
		key, err := totp.DecodeSecret(in, totp.Hex)
		if err != nil {
			t.Errorf("DecodeSecret(%q, HEX): unexpected error: %v", in, err)
			continue
		}
		if got := hex.EncodeToString(key); !strings.EqualFold(got, in) {
			t.Errorf("Round trip of %q: got %q", in, got)
		}
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		input string
		want  totp.Encoding
	}{
		{"HEX", totp.Hex},
		{"hex", totp.Hex},
		{"Base32", totp.Base32},
		{"ascii", totp.ASCII},
		{"UTF8", totp.UTF8},
		{"utf-8", totp.UTF8},
		{" ASCII\n", totp.ASCII},
	}
	for _, test := range tests {
		got, err := totp.ParseEncoding(test.input)
		if err != nil {
			t.Errorf("ParseEncoding(%q): unexpected error: %v", test.input, err)
		} else if got != test.want {
			t.Errorf("ParseEncoding(%q): got %v, want %v", test.input, got, test.want)
		}
	}

	for _, bad := range []string{"", "base64", "latin1", "HEXX"} {
		if got, err := totp.ParseEncoding(bad); !errors.Is(err, totp.ErrUnsupportedEncoding) {
			t.Errorf("ParseEncoding(%q): got (%v, %v), want %v", bad, got, err, totp.ErrUnsupportedEncoding)
		}
	}
}

func TestEncodingString(t *testing.T) {
	for _, enc := range totp.Encodings() {
		got, err := totp.ParseEncoding(enc.String())
		if err != nil || got != enc {
			t.Errorf("ParseEncoding(%q): got (%v, %v), want %v", enc.String(), got, err, enc)
		}
	}
	if got, want := totp.Encoding(0).String(), "Encoding(0)"; got != want {
		t.Errorf("Encoding(0).String(): got %q, want %q", got, want)
	}
}
