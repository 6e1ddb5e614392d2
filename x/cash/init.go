package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use custody.Address, so address in hex, not base64
type GenesisAccount struct {
	Address custody.Address `json:"address"`
	Amount  uint64          `json:"amount"`
}

// Initializer loads opening balances from the genesis file.
type Initializer struct{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts custody.Options, kv store.KVStore) error {
	stream, err := opts.Stream(optKey)
	switch {
	case errors.ErrEmpty.Is(err):
		return nil
	case err != nil:
		return err
	}

	bucket := NewBalanceBucket()
	for i := 0; ; i++ {
		var acct GenesisAccount
		switch err := stream(&acct); {
		case errors.ErrEmpty.Is(err):
			return nil
		case err != nil:
			return errors.Wrapf(err, "account %d", i)
		}
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if _, err := credit(kv, bucket, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
}
