package cash

import (
	"encoding/binary"
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, v *Vault) {
	r.Handle(pathDepositMsg, NewDepositHandler(auth, v))
}

// DepositHandler will handle depositing value into the pool
type DepositHandler struct {
	auth  x.Authenticator
	vault *Vault
}

var _ custody.Handler = DepositHandler{}

// NewDepositHandler creates a handler for DepositMsg
func NewDepositHandler(auth x.Authenticator, v *Vault) DepositHandler {
	return DepositHandler{
		auth:  auth,
		vault: v,
	}
}

// Deliver adds the deposited amount to the pool. The result data holds
// the big endian encoded pool balance.
func (h DepositHandler) Deliver(ctx custody.Context, m custody.Msg) (*custody.Result, error) {
	msg, ok := m.(*DepositMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	sender := x.MainSigner(ctx, h.auth)
	if sender == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}

	balance, err := h.vault.Deposit(ctx, sender.Address(), msg.Amount)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, balance)
	return &custody.Result{
		Data: data,
		Log:  fmt.Sprintf("deposited %d, pool balance %d", msg.Amount, balance),
	}, nil
}
