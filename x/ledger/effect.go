package ledger

import (
	"github.com/iov-one/custody"
)

// Effect moves value out of the custody pool when a transaction is executed.
//
// Transfer must either fully succeed or fail without any observable change.
// An implementation may call back into the ledger.
type Effect interface {
	Transfer(ctx custody.Context, to custody.Address, value uint64, data []byte) error
}

// EffectFunc allows to use a function as an Effect.
type EffectFunc func(ctx custody.Context, to custody.Address, value uint64, data []byte) error

var _ Effect = EffectFunc(nil)

func (fn EffectFunc) Transfer(ctx custody.Context, to custody.Address, value uint64, data []byte) error {
	return fn(ctx, to, value, data)
}
