package ledger

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const optKey = "ledger"

// Genesis is used to parse the ledger configuration from the genesis file.
// Addresses can be given in any format accepted by custody.ParseAddress.
type Genesis struct {
	Owners    []custody.Address `json:"owners"`
	Threshold uint32            `json:"threshold"`
}

// FromGenesis builds a ledger as configured under the "ledger" key of the
// genesis file. A missing configuration is an error because a ledger
// cannot exist without owners.
func FromGenesis(opts custody.Options, effect Effect, extra ...Option) (*Ledger, error) {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	l, err := New(gen.Owners, gen.Threshold, effect, extra...)
	if err != nil {
		return nil, errors.Wrap(err, "genesis")
	}
	return l, nil
}
