package ledger

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	pathSubmitMsg  = "ledger/submit"
	pathConfirmMsg = "ledger/confirm"
	pathRevokeMsg  = "ledger/revoke"
	pathExecuteMsg = "ledger/execute"
)

// maxDataSize limits the size of the opaque payload attached to a
// transaction.
const maxDataSize = 4096

// SubmitMsg proposes a new transaction.
type SubmitMsg struct {
	To    custody.Address
	Value uint64
	Data  []byte
}

var _ custody.Msg = (*SubmitMsg)(nil)

// Path returns the routing path for this message.
func (SubmitMsg) Path() string {
	return pathSubmitMsg
}

// Validate makes sure that this is sensible.
func (m *SubmitMsg) Validate() error {
	if m.To.IsEmpty() {
		return errors.Wrap(ErrInvalidTarget, "to")
	}
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	if len(m.Data) > maxDataSize {
		return errors.Wrapf(errors.ErrInput, "data too long: %d > %d", len(m.Data), maxDataSize)
	}
	return nil
}

// ConfirmMsg confirms the transaction under given index on behalf of the
// signer.
type ConfirmMsg struct {
	Index uint64
}

var _ custody.Msg = (*ConfirmMsg)(nil)

func (ConfirmMsg) Path() string {
	return pathConfirmMsg
}

func (m *ConfirmMsg) Validate() error {
	return nil
}

// RevokeMsg withdraws the signer's confirmation.
type RevokeMsg struct {
	Index uint64
}

var _ custody.Msg = (*RevokeMsg)(nil)

func (RevokeMsg) Path() string {
	return pathRevokeMsg
}

func (m *RevokeMsg) Validate() error {
	return nil
}

// ExecuteMsg executes the transaction under given index.
type ExecuteMsg struct {
	Index uint64
}

var _ custody.Msg = (*ExecuteMsg)(nil)

func (ExecuteMsg) Path() string {
	return pathExecuteMsg
}

func (m *ExecuteMsg) Validate() error {
	return nil
}
