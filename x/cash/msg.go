package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const pathDepositMsg = "cash/deposit"

// DepositMsg adds value to the custody pool on behalf of the signer.
type DepositMsg struct {
	Amount uint64
}

var _ custody.Msg = (*DepositMsg)(nil)

// Path returns the routing path for this message.
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Validate makes sure that this is sensible.
func (m *DepositMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero deposit")
	}
	return nil
}
