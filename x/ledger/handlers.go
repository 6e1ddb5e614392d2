package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, l *Ledger) {
	r.Handle(pathSubmitMsg, SubmitHandler{auth: auth, ledger: l})
	r.Handle(pathConfirmMsg, ConfirmHandler{auth: auth, ledger: l})
	r.Handle(pathRevokeMsg, RevokeHandler{auth: auth, ledger: l})
	r.Handle(pathExecuteMsg, ExecuteHandler{auth: auth, ledger: l})
}

// SubmitHandler registers a new transaction proposal. The result data
// holds the big endian encoded index of the new transaction.
type SubmitHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

var _ custody.Handler = SubmitHandler{}

func (h SubmitHandler) Deliver(ctx custody.Context, m custody.Msg) (*custody.Result, error) {
	var msg *SubmitMsg
	if err := loadMsg(m, &msg); err != nil {
		return nil, err
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	index, err := h.ledger.Submit(ctx, caller, msg.To, msg.Value, msg.Data)
	if err != nil {
		return nil, err
	}
	return &custody.Result{
		Data: encodeIndex(index),
		Log:  fmt.Sprintf("transaction %d submitted", index),
	}, nil
}

// ConfirmHandler confirms a transaction on behalf of the main signer.
type ConfirmHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

var _ custody.Handler = ConfirmHandler{}

func (h ConfirmHandler) Deliver(ctx custody.Context, m custody.Msg) (*custody.Result, error) {
	var msg *ConfirmMsg
	if err := loadMsg(m, &msg); err != nil {
		return nil, err
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Confirm(ctx, caller, msg.Index); err != nil {
		return nil, err
	}
	return &custody.Result{Log: fmt.Sprintf("transaction %d confirmed", msg.Index)}, nil
}

// RevokeHandler revokes a confirmation of the main signer.
type RevokeHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

var _ custody.Handler = RevokeHandler{}

func (h RevokeHandler) Deliver(ctx custody.Context, m custody.Msg) (*custody.Result, error) {
	var msg *RevokeMsg
	if err := loadMsg(m, &msg); err != nil {
		return nil, err
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Revoke(ctx, caller, msg.Index); err != nil {
		return nil, err
	}
	return &custody.Result{Log: fmt.Sprintf("transaction %d revoked", msg.Index)}, nil
}

// ExecuteHandler executes a sufficiently confirmed transaction.
type ExecuteHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

var _ custody.Handler = ExecuteHandler{}

func (h ExecuteHandler) Deliver(ctx custody.Context, m custody.Msg) (*custody.Result, error) {
	var msg *ExecuteMsg
	if err := loadMsg(m, &msg); err != nil {
		return nil, err
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Execute(ctx, caller, msg.Index); err != nil {
		return nil, err
	}
	return &custody.Result{Log: fmt.Sprintf("transaction %d executed", msg.Index)}, nil
}

// loadMsg ensures the message is of the expected type and valid.
func loadMsg(m custody.Msg, dest interface{}) error {
	var ok bool
	switch d := dest.(type) {
	case **SubmitMsg:
		*d, ok = m.(*SubmitMsg)
	case **ConfirmMsg:
		*d, ok = m.(*ConfirmMsg)
	case **RevokeMsg:
		*d, ok = m.(*RevokeMsg)
	case **ExecuteMsg:
		*d, ok = m.(*ExecuteMsg)
	default:
		return errors.Wrapf(errors.ErrHuman, "unsupported destination %T", dest)
	}
	if !ok {
		return errors.WithType(errors.ErrMsg, m)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

// signer returns the address of the main signer. A request without any
// signer is unauthorized.
func signer(ctx custody.Context, auth x.Authenticator) (custody.Address, error) {
	cond := x.MainSigner(ctx, auth)
	if cond == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return cond.Address(), nil
}

func encodeIndex(index uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, index)
	return b
}

// DecodeIndex returns the transaction index carried by a submit result.
func DecodeIndex(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "invalid index length %d", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}
