package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/custody/errors"
)

func TestEncodeDecode(t *testing.T) {
	cases := map[string]struct {
		hrp     string
		payload string
		enc     string
	}{
		// bech32 -e -h tiov 746573742d7061796c6f6164
		"known vector": {
			hrp:     "tiov",
			payload: "746573742d7061796c6f6164",
			enc:     "tiov1w3jhxapdwpshjmr0v9jqymqq4y",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			want, err := hex.DecodeString(tc.payload)
			if err != nil {
				t.Fatal(err)
			}

			hrp, payload, err := Decode(tc.enc)
			if err != nil {
				t.Fatal(err)
			}
			if hrp != tc.hrp {
				t.Fatalf("want %q prefix, got %q", tc.hrp, hrp)
			}
			if !bytes.Equal(want, payload) {
				t.Fatalf("invalid decode: %X", payload)
			}

			raw, err := Encode(hrp, payload)
			if err != nil {
				t.Fatalf("cannot encode: %s", err)
			}
			if raw != tc.enc {
				t.Fatalf("invalid encoding: %q", raw)
			}
		})
	}
}

func TestAddressRoundTrip(t *testing.T) {
	addr := bytes.Repeat([]byte{0xAB}, 20)
	raw, err := Encode("custody", addr)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	payload, err := DecodePrefixed(raw, "custody")
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if !bytes.Equal(addr, payload) {
		t.Fatalf("round trip mismatch: %X", payload)
	}
}

func TestDecodePrefixedRejectsOtherNetwork(t *testing.T) {
	raw, err := Encode("tiov", bytes.Repeat([]byte{0x01}, 20))
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if _, err := DecodePrefixed(raw, "custody"); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

func TestEncodeRequiresPrefix(t *testing.T) {
	if _, err := Encode("", []byte{1}); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty error, got %+v", err)
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, _, err := Decode("custody1invalidchecksum"); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}
