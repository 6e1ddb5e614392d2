package server

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// KeygenCmd generates fresh ed25519 identities and writes, for each of
// them, the address in hex and bech32 format followed by the private key
// seed.
func KeygenCmd(out io.Writer, args []string) error {
	var n int
	fl := flag.NewFlagSet("keygen", flag.ContinueOnError)
	fl.IntVar(&n, "n", 1, "number of identities to generate")
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if n < 1 {
		return errors.Wrapf(errors.ErrInput, "invalid number of identities: %d", n)
	}

	for i := 0; i < n; i++ {
		key := crypto.GenPrivKeyEd25519()
		addr := key.PublicKey().Address()
		bech, err := addr.Bech32()
		if err != nil {
			return errors.Wrap(err, "bech32")
		}
		fmt.Fprintf(out, "address=%s bech32=%s seed=%s\n", addr, bech, hex.EncodeToString(key.Seed()))
	}
	return nil
}
