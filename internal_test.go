// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package totp

import (
	"encoding/hex"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testCase struct {
	counter   uint64
	trunc     uint64
	otp       string
	hexDigest string
}

var tests = []testCase{
	// Test vectors from Appendix D of RFC 4226.
	{0, 1284755224, "755224", "cc93cf18508d94934c64b65d8ba7667fb7cde4b0"},
	{1, 1094287082, "287082", "75a48a19d4cbe100644e8ac1397eea747a2d33ab"},
	{2, 137359152, "359152", "0bacb7fa082fef30782211938bc1c5e70416ff44"},
	{3, 1726969429, "969429", "66c28227d03a2d5529262ff016a1e6ef76557ece"},
	{4, 1640338314, "338314", "a904c900a64b35909874b33e61c5938a8e15ed1c"},
	{5, 868254676, "254676", "a37e783d7b7233c083d4f62926c7a25f238d0316"},
	{6, 1918287922, "287922", "bc9cd28561042c83f219324d3c607256c03272ae"},
	{7, 82162583, "162583", "a4fb960c0bc06e1eabb804e5b397cdc4b45596fa"},
	{8, 673399871, "399871", "1b3c89f65e6c9e883012052823443f048b4332db"},
	{9, 645520489, "520489", "1637409809a679dc698207310c8c7fc07290d9e5"},

	// Test vectors from Appendix B of RFC 6238.
	//
	// The trunc values have been expanded to their original precision, since
	// the implementation does not reduce before conversion.
	{59 / 30, 1094287082, "287082", ""},
	{1111111109 / 30, 907081804, "081804", ""},
	{1111111111 / 30, 414050471, "050471", ""},
	{1234567890 / 30, 689005924, "005924", ""},
	{20000000000 / 30, 1465353130, "353130", ""},
}

var rfcKey = []byte("12345678901234567890")

func (tc testCase) Run(t *testing.T, p Params) {
	t.Helper()

	hmac := p.hmac(rfcKey, tc.counter)
	trunc := truncate(hmac)
	hexDigest := hex.EncodeToString(hmac)
	otp, err := p.HOTP(rfcKey, tc.counter)
	if err != nil {
		t.Fatalf("Counter %d HOTP: unexpected error: %v", tc.counter, err)
	}

	if tc.hexDigest != "" && hexDigest != tc.hexDigest {
		t.Errorf("Counter %d digest: got %q, want %q", tc.counter, hexDigest, tc.hexDigest)
	}
	if trunc != tc.trunc {
		t.Errorf("Counter %d trunc: got %d, want %0d", tc.counter, trunc, tc.trunc)
	}
	if otp != tc.otp {
		t.Errorf("Counter %d HOTP: got %q, want %q", tc.counter, otp, tc.otp)
	}
}

func TestParams_HOTP(t *testing.T) {
	var p Params
	for _, test := range tests {
		test.Run(t, p)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		code  uint64
		width int
		want  string
	}{
		{1094287082, 6, "287082"},
		{1094287082, 8, "94287082"},
		{1094287082, 10, "1094287082"},
		{1094287082, 1, "2"},
		{82162583, 10, "0082162583"},
		{5924, 6, "005924"},
		{0, 6, "000000"},
	}
	for _, test := range tests {
		if got := format(test.code, test.width); got != test.want {
			t.Errorf("format(%d, %d): got %q, want %q", test.code, test.width, got, test.want)
		}
	}
}

func TestOffsets(t *testing.T) {
	tests := []struct {
		window int
		want   []int
	}{
		{0, []int{0}},
		{1, []int{0, -1, 1}},
		{3, []int{0, -1, 1, -2, 2, -3, 3}},
	}
	for _, test := range tests {
		if diff := cmp.Diff(offsets(test.window), test.want); diff != "" {
			t.Errorf("offsets(%d) (-got, +want):\n%s", test.window, diff)
		}
	}
}
