package custody_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := custody.Address(b)

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", addr))
		So(addr.String(), ShouldEqual, strings.ToUpper(fmt.Sprintf("%x", b)))
	})

	Convey("test hexademical condition printing", t, func() {
		cond := custody.NewCondition("12", "32", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", cond))
	})

	Convey("test empty address printing", t, func() {
		So(custody.Address(nil).String(), ShouldEqual, "(nil)")
		So(custody.Address(nil).IsEmpty(), ShouldBeTrue)
	})
}

func TestConditionToAddress(t *testing.T) {
	a := custody.NewCondition("sigs", "ed25519", []byte("first key"))
	b := custody.NewCondition("sigs", "ed25519", []byte("second key"))

	require.NoError(t, a.Validate())
	assert.Len(t, a.Address(), custody.AddressLength)
	assert.True(t, a.Address().Equals(a.Address()))
	assert.False(t, a.Address().Equals(b.Address()))

	ext, typ, data, err := a.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte("first key"), data)

	assert.Error(t, custody.Condition("no-slashes").Validate())
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := custody.NewCondition("foo", "bar", []byte("conditiondata")).Address()
	hexAddr := strings.ToUpper(fmt.Sprintf("%x", []byte(addr)))
	bech, err := addr.Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr custody.Address
	}{
		"default decoding": {
			json:     `"` + hexAddr + `"`,
			wantAddr: addr,
		},
		"hex decoding": {
			json:     `"hex:` + hexAddr + `"`,
			wantAddr: addr,
		},
		"bech32 decoding": {
			json:     `"bech32:` + bech + `"`,
			wantAddr: addr,
		},
		"invalid hex": {
			json:    `"zzzz"`,
			wantErr: errors.ErrInput,
		},
		"too short": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"invalid bech32": {
			json:    `"bech32:custody1xyz"`,
			wantErr: errors.ErrInput,
		},
		"bech32 of another network": {
			json:    `"bech32:tiov1qyqszqgpqyqszqgpqyqszqgpqyqszqgprkxj9v"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a custody.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestAddressMarshalJSON(t *testing.T) {
	addr := custody.Address([]byte("01234567890123456789"))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got custody.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}

func TestAddressClone(t *testing.T) {
	addr := custody.Address([]byte("01234567890123456789"))
	c := addr.Clone()
	c[0] = 'X'
	assert.Equal(t, byte('0'), addr[0])
	assert.Nil(t, custody.Address(nil).Clone())
}
