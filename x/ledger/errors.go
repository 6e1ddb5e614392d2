package ledger

import (
	"github.com/iov-one/custody/errors"
)

// Error codes
// x/ledger reserves 100 ~ 119.
//
// A caller that is not an owner is rejected with errors.ErrUnauthorized and an
// unknown transaction index with errors.ErrNotFound.
var (
	ErrConfig                    = errors.Register(100, "invalid ledger configuration")
	ErrAlreadyExecuted           = errors.Register(101, "transaction already executed")
	ErrAlreadyConfirmed          = errors.Register(102, "transaction already confirmed")
	ErrNotConfirmed              = errors.Register(103, "transaction not confirmed")
	ErrInvalidTarget             = errors.Register(104, "invalid target")
	ErrInsufficientConfirmations = errors.Register(105, "insufficient confirmations")
	ErrExecutionFailed           = errors.Register(106, "execution failed")
)
