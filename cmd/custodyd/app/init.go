package app

import (
	"encoding/json"
	"flag"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/ledger"
)

// GenInitOptions will produce genesis options for a custody pool from
// command line flags:
//
//   -owners a,b,c   comma separated owner addresses
//   -threshold n    number of confirmations required (default: majority)
//   -pool name      name of the pool
func GenInitOptions(args []string) (json.RawMessage, error) {
	var (
		owners    string
		threshold uint
		pool      string
	)
	fl := flag.NewFlagSet("init", flag.ContinueOnError)
	fl.StringVar(&owners, "owners", "", "comma separated owner addresses")
	fl.UintVar(&threshold, "threshold", 0, "number of confirmations required, default is majority")
	fl.StringVar(&pool, "pool", DefaultPool, "name of the pool")
	if err := fl.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}

	var gen ledger.Genesis
	for _, raw := range strings.Split(owners, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		addr, err := custody.ParseAddress(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "owner %q", raw)
		}
		gen.Owners = append(gen.Owners, addr)
	}
	gen.Threshold = uint32(threshold)
	if gen.Threshold == 0 {
		gen.Threshold = uint32(len(gen.Owners)/2 + 1)
	}

	// Build it once to validate the configuration.
	if _, err := ledger.New(gen.Owners, gen.Threshold, ledger.EffectFunc(nopTransfer)); err != nil {
		return nil, err
	}

	return json.MarshalIndent(map[string]interface{}{
		"pool":   pool,
		"ledger": gen,
		"cash":   []interface{}{},
	}, "", "  ")
}

func nopTransfer(custody.Context, custody.Address, uint64, []byte) error {
	return nil
}
