package ledger

import (
	"fmt"
	"sync"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Ledger is the approval ledger of a custody pool. All methods are safe for
// concurrent use.
//
// Events are delivered in the order of the state changes they describe and
// never while the ledger lock is held, so a sink may call back into the
// ledger. An event may be delivered by the goroutine of a concurrent caller.
type Ledger struct {
	mu sync.RWMutex

	owners    []custody.Address
	index     map[string]int
	threshold uint32
	txs       []*entry

	effect Effect
	events custody.EventSink

	// outbox holds events not yet delivered, in state change order.
	outbox   []notice
	flushing bool
}

type notice struct {
	ctx   custody.Context
	event custody.Event
}

// Option configures optional Ledger attributes.
type Option func(*Ledger)

// WithEventSink sets the sink that receives all ledger events. By default
// events are dropped.
func WithEventSink(s custody.EventSink) Option {
	return func(l *Ledger) {
		l.events = s
	}
}

// New returns a ledger controlled by given owners. Owners order is preserved.
// Execution of a transaction is delegated to the effect.
func New(owners []custody.Address, threshold uint32, effect Effect, opts ...Option) (*Ledger, error) {
	if len(owners) == 0 {
		return nil, errors.Wrap(ErrConfig, "empty owner set")
	}
	if threshold == 0 || int(threshold) > len(owners) {
		return nil, errors.Wrapf(ErrConfig, "invalid threshold %d for %d owners", threshold, len(owners))
	}
	index := make(map[string]int, len(owners))
	cp := make([]custody.Address, len(owners))
	for i, o := range owners {
		if o.IsEmpty() {
			return nil, errors.Wrapf(ErrConfig, "null owner at position %d", i)
		}
		key := string(o)
		if _, ok := index[key]; ok {
			return nil, errors.Wrapf(ErrConfig, "duplicate owner %s", o)
		}
		index[key] = i
		cp[i] = o.Clone()
	}
	if effect == nil {
		return nil, errors.Wrap(ErrConfig, "missing effect")
	}

	l := &Ledger{
		owners:    cp,
		index:     index,
		threshold: threshold,
		effect:    effect,
		events:    custody.NopSink{},
	}
	for _, fn := range opts {
		fn(l)
	}
	return l, nil
}

// Submit registers a new transaction proposal and returns its index. The
// new transaction has no confirmations, not even the caller's.
func (l *Ledger) Submit(ctx custody.Context, caller, to custody.Address, value uint64, data []byte) (uint64, error) {
	idx, err := l.submit(ctx, caller, to, value, data)
	if err != nil {
		return 0, err
	}
	l.flush()
	return idx, nil
}

func (l *Ledger) submit(ctx custody.Context, caller, to custody.Address, value uint64, data []byte) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.owner(caller); err != nil {
		return 0, err
	}
	if to.IsEmpty() {
		return 0, errors.Wrap(ErrInvalidTarget, "null recipient")
	}

	tx := Transaction{To: to.Clone(), Value: value}
	if len(data) != 0 {
		tx.Data = append([]byte(nil), data...)
	}
	idx := uint64(len(l.txs))
	l.txs = append(l.txs, newEntry(tx, len(l.owners)))

	custody.GetLogger(ctx).Debug("transaction submitted", "index", idx, "caller", caller)
	l.queue(ctx, custody.SubmitEvent{
		Caller: caller.Clone(),
		Index:  idx,
		To:     tx.To.Clone(),
		Value:  tx.Value,
		Data:   cloneBytes(tx.Data),
	})
	return idx, nil
}

// Confirm adds caller's confirmation to the transaction.
func (l *Ledger) Confirm(ctx custody.Context, caller custody.Address, index uint64) error {
	if err := l.confirm(ctx, caller, index); err != nil {
		return err
	}
	l.flush()
	return nil
}

func (l *Ledger) confirm(ctx custody.Context, caller custody.Address, index uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos, e, err := l.pending(caller, index)
	if err != nil {
		return err
	}
	if e.confirmed[pos] {
		return errors.Wrapf(ErrAlreadyConfirmed, "transaction %d", index)
	}
	e.setConfirmation(pos, true)

	custody.GetLogger(ctx).Debug("transaction confirmed", "index", index, "caller", caller, "confirmations", e.tx.Confirmations)
	l.queue(ctx, custody.ConfirmEvent{Caller: caller.Clone(), Index: index})
	return nil
}

// Revoke withdraws caller's confirmation of the transaction. Revoking a
// transaction that was not confirmed by the caller is an error.
func (l *Ledger) Revoke(ctx custody.Context, caller custody.Address, index uint64) error {
	if err := l.revoke(ctx, caller, index); err != nil {
		return err
	}
	l.flush()
	return nil
}

func (l *Ledger) revoke(ctx custody.Context, caller custody.Address, index uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos, e, err := l.pending(caller, index)
	if err != nil {
		return err
	}
	if !e.confirmed[pos] {
		return errors.Wrapf(ErrNotConfirmed, "transaction %d", index)
	}
	e.setConfirmation(pos, false)

	custody.GetLogger(ctx).Debug("confirmation revoked", "index", index, "caller", caller, "confirmations", e.tx.Confirmations)
	l.queue(ctx, custody.RevokeEvent{Caller: caller.Clone(), Index: index})
	return nil
}

// Execute runs the transaction effect if the transaction collected enough
// confirmations.
//
// The transaction is marked as executed before the effect is called and
// stays executed even if the effect fails. Each transaction can be
// executed at most once. A failure of the effect is reported as
// ErrExecutionFailed that still matches the error returned by the effect.
func (l *Ledger) Execute(ctx custody.Context, caller custody.Address, index uint64) error {
	tx, err := l.markExecuted(caller, index)
	if err != nil {
		return err
	}

	custody.GetLogger(ctx).Debug("executing transaction", "index", index, "caller", caller)
	if err := l.effect.Transfer(ctx, tx.To, tx.Value, tx.Data); err != nil {
		custody.GetLogger(ctx).Error("transaction execution failed", "index", index, "err", err)
		return errors.WithCode(err, ErrExecutionFailed, fmt.Sprintf("transaction %d", index))
	}

	l.mu.Lock()
	l.queue(ctx, custody.ExecuteEvent{Caller: caller.Clone(), Index: index})
	l.mu.Unlock()
	l.flush()
	return nil
}

// queue schedules an event for delivery.
// Must be called with the lock held.
func (l *Ledger) queue(ctx custody.Context, e custody.Event) {
	l.outbox = append(l.outbox, notice{ctx: ctx, event: e})
}

// flush delivers queued events with the lock released. Only one goroutine
// delivers at a time; others leave their events to it, which keeps the
// delivery order equal to the queue order. A sink calling back into the
// ledger queues its events behind the one being delivered.
func (l *Ledger) flush() {
	l.mu.Lock()
	if l.flushing {
		l.mu.Unlock()
		return
	}
	l.flushing = true
	l.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			l.mu.Lock()
			l.flushing = false
			l.mu.Unlock()
			panic(r)
		}
	}()

	for {
		l.mu.Lock()
		if len(l.outbox) == 0 {
			l.flushing = false
			l.mu.Unlock()
			return
		}
		n := l.outbox[0]
		l.outbox[0] = notice{}
		l.outbox = l.outbox[1:]
		l.mu.Unlock()

		l.events.Emit(n.ctx, n.event)
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// markExecuted does all execution checks and flags the transaction as
// executed. It returns a copy of the transaction to be used by the effect
// once the lock is released.
func (l *Ledger) markExecuted(caller custody.Address, index uint64) (*Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, e, err := l.pending(caller, index)
	if err != nil {
		return nil, err
	}
	if e.tx.Confirmations < l.threshold {
		return nil, errors.Wrapf(ErrInsufficientConfirmations,
			"transaction %d has %d of %d", index, e.tx.Confirmations, l.threshold)
	}
	e.tx.Executed = true
	return e.tx.Copy(), nil
}

// owner returns the position of the caller in the owner set.
// Must be called with the lock held.
func (l *Ledger) owner(caller custody.Address) (int, error) {
	pos, ok := l.index[string(caller)]
	if !ok || caller.IsEmpty() {
		return 0, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller)
	}
	return pos, nil
}

// get returns the registry entry under given index.
// Must be called with the lock held.
func (l *Ledger) get(index uint64) (*entry, error) {
	if index >= uint64(len(l.txs)) {
		return nil, errors.Wrapf(errors.ErrNotFound, "transaction %d", index)
	}
	return l.txs[index], nil
}

// pending does the authorization, existence and not executed checks shared
// by all operations on an existing transaction, in this order.
// Must be called with the lock held.
func (l *Ledger) pending(caller custody.Address, index uint64) (int, *entry, error) {
	pos, err := l.owner(caller)
	if err != nil {
		return 0, nil, err
	}
	e, err := l.get(index)
	if err != nil {
		return 0, nil, err
	}
	if e.tx.Executed {
		return 0, nil, errors.Wrapf(ErrAlreadyExecuted, "transaction %d", index)
	}
	return pos, e, nil
}

// Owners returns a copy of the owner set, in the order given at creation.
func (l *Ledger) Owners() []custody.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()

	res := make([]custody.Address, len(l.owners))
	for i, o := range l.owners {
		res[i] = o.Clone()
	}
	return res
}

// IsOwner returns true if given address belongs to the owner set.
func (l *Ledger) IsOwner(addr custody.Address) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, err := l.owner(addr)
	return err == nil
}

// Threshold returns the number of confirmations required for execution.
func (l *Ledger) Threshold() uint32 {
	return l.threshold
}

// TransactionCount returns the number of transactions ever submitted.
func (l *Ledger) TransactionCount() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.txs))
}

// Transaction returns a copy of the transaction state.
func (l *Ledger) Transaction(index uint64) (*Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	e, err := l.get(index)
	if err != nil {
		return nil, err
	}
	return e.tx.Copy(), nil
}

// IsConfirmedBy returns true if the owner holds a standing confirmation of
// the transaction. Addresses outside of the owner set never confirm.
func (l *Ledger) IsConfirmedBy(index uint64, owner custody.Address) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	e, err := l.get(index)
	if err != nil {
		return false, err
	}
	pos, ok := l.index[string(owner)]
	if !ok {
		return false, nil
	}
	return e.confirmed[pos], nil
}

// Confirmers returns all owners with a standing confirmation of the
// transaction, in owner set order.
func (l *Ledger) Confirmers(index uint64) ([]custody.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	e, err := l.get(index)
	if err != nil {
		return nil, err
	}
	var res []custody.Address
	for pos, ok := range e.confirmed {
		if ok {
			res = append(res, l.owners[pos].Clone())
		}
	}
	return res, nil
}
