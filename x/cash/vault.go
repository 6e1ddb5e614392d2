package cash

import (
	"sync"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/ledger"
)

// Receiver is notified about value transferred to an address it was
// registered for.
type Receiver interface {
	Receive(ctx custody.Context, from custody.Address, value uint64, data []byte) error
}

// ReceiverFunc allows to use a function as a Receiver.
type ReceiverFunc func(ctx custody.Context, from custody.Address, value uint64, data []byte) error

func (fn ReceiverFunc) Receive(ctx custody.Context, from custody.Address, value uint64, data []byte) error {
	return fn(ctx, from, value, data)
}

// Vault keeps the balance of the custody pool and of all addresses that
// received value from it. It is safe for concurrent use.
type Vault struct {
	mu sync.RWMutex
	db store.CacheableKVStore

	pool      custody.Address
	balances  orm.ModelBucket
	transfers orm.ModelBucket
	seq       orm.Sequence

	events custody.EventSink

	hooksMu sync.RWMutex
	hooks   map[string][]Receiver
}

var _ ledger.Effect = (*Vault)(nil)

// VaultOption configures optional Vault attributes.
type VaultOption func(*Vault)

// WithEventSink sets the sink that receives deposit events.
func WithEventSink(s custody.EventSink) VaultOption {
	return func(v *Vault) {
		v.events = s
	}
}

// NewVault returns a vault holding the value of the pool under given
// address, using db as the storage.
func NewVault(db store.CacheableKVStore, pool custody.Address, opts ...VaultOption) (*Vault, error) {
	if err := pool.Validate(); err != nil {
		return nil, errors.Wrap(err, "pool address")
	}
	v := &Vault{
		db:        db,
		pool:      pool.Clone(),
		balances:  NewBalanceBucket(),
		transfers: NewTransferBucket(),
		seq:       orm.NewSequence(transferBucket, "id"),
		events:    custody.NopSink{},
		hooks:     make(map[string][]Receiver),
	}
	for _, fn := range opts {
		fn(v)
	}
	return v, nil
}

// Pool returns the address holding the pool value.
func (v *Vault) Pool() custody.Address {
	return v.pool.Clone()
}

// Deposit adds value to the pool. Anyone can deposit. The new pool balance
// is returned. The deposit event is emitted once the vault lock is released.
func (v *Vault) Deposit(ctx custody.Context, sender custody.Address, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, errors.Wrap(errors.ErrAmount, "zero deposit")
	}
	if sender.IsEmpty() {
		return 0, errors.Wrap(errors.ErrEmpty, "sender")
	}

	balance, err := v.deposit(amount)
	if err != nil {
		return 0, err
	}

	custody.GetLogger(ctx).Debug("deposit", "sender", sender, "amount", amount, "balance", balance)
	v.events.Emit(ctx, custody.DepositEvent{Sender: sender.Clone(), Amount: amount, Balance: balance})
	return balance, nil
}

func (v *Vault) deposit(amount uint64) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	cache := v.db.CacheWrap()
	balance, err := credit(cache, v.balances, v.pool, amount)
	if err != nil {
		cache.Discard()
		return 0, err
	}
	if err := cache.Write(); err != nil {
		return 0, errors.Wrap(err, "commit")
	}
	return balance, nil
}

// Transfer moves value from the pool to given address. All changes are
// applied atomically: on failure the store is left untouched.
//
// Once the transfer is committed, receivers registered for the recipient
// are called. A receiver may call back into the ledger. Receiver failures
// are logged and do not revert the transfer.
func (v *Vault) Transfer(ctx custody.Context, to custody.Address, value uint64, data []byte) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := v.transfer(to, value, data); err != nil {
		return err
	}
	custody.GetLogger(ctx).Debug("transfer", "to", to, "value", value)

	v.hooksMu.RLock()
	hooks := v.hooks[string(to)]
	v.hooksMu.RUnlock()
	for _, h := range hooks {
		if err := h.Receive(ctx, v.pool, value, data); err != nil {
			custody.GetLogger(ctx).Error("receiver failed", "to", to, "err", err)
		}
	}
	return nil
}

func (v *Vault) transfer(to custody.Address, value uint64, data []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	cache := v.db.CacheWrap()
	if value != 0 {
		if _, err := debit(cache, v.balances, v.pool, value); err != nil {
			cache.Discard()
			return err
		}
		if _, err := credit(cache, v.balances, to, value); err != nil {
			cache.Discard()
			return err
		}
	}
	key, err := v.seq.NextVal(cache)
	if err != nil {
		cache.Discard()
		return errors.Wrap(err, "sequence")
	}
	rec := &TransferRecord{Recipient: to, Value: value, Data: data}
	if err := v.transfers.Put(cache, key, rec); err != nil {
		cache.Discard()
		return errors.Wrap(err, "history")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "commit")
	}
	return nil
}

// OnReceive registers a receiver that is called after each committed
// transfer to given address.
func (v *Vault) OnReceive(addr custody.Address, r Receiver) {
	v.hooksMu.Lock()
	defer v.hooksMu.Unlock()
	key := string(addr)
	v.hooks[key] = append(v.hooks[key], r)
}

// Balance returns the value held by given address. Unknown addresses hold
// nothing.
func (v *Vault) Balance(addr custody.Address) (uint64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	b, err := load(v.db, v.balances, addr)
	if err != nil {
		return 0, err
	}
	return b.Amount, nil
}

// PoolBalance returns the value held by the pool.
func (v *Vault) PoolBalance() (uint64, error) {
	return v.Balance(v.pool)
}

// Transfers returns the history of all committed transfers, oldest first.
func (v *Vault) Transfers() ([]TransferRecord, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	keys, err := v.transfers.Keys(v.db)
	if err != nil {
		return nil, err
	}
	res := make([]TransferRecord, 0, len(keys))
	for _, k := range keys {
		var rec TransferRecord
		if err := v.transfers.One(v.db, k, &rec); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, nil
}

// load returns the balance of given address, zero if not stored.
func load(db store.ReadOnlyKVStore, b orm.ModelBucket, addr custody.Address) (*Balance, error) {
	var bal Balance
	switch err := b.One(db, addr, &bal); {
	case err == nil:
		return &bal, nil
	case errors.ErrNotFound.Is(err):
		return &Balance{}, nil
	default:
		return nil, errors.Wrapf(err, "balance of %s", addr)
	}
}

func credit(db store.KVStore, b orm.ModelBucket, addr custody.Address, amount uint64) (uint64, error) {
	bal, err := load(db, b, addr)
	if err != nil {
		return 0, err
	}
	if err := bal.Add(amount); err != nil {
		return 0, errors.Wrapf(err, "credit %s", addr)
	}
	if err := b.Put(db, addr, bal); err != nil {
		return 0, err
	}
	return bal.Amount, nil
}

func debit(db store.KVStore, b orm.ModelBucket, addr custody.Address, amount uint64) (uint64, error) {
	bal, err := load(db, b, addr)
	if err != nil {
		return 0, err
	}
	if err := bal.Subtract(amount); err != nil {
		return 0, errors.Wrapf(err, "debit %s", addr)
	}
	if err := b.Put(db, addr, bal); err != nil {
		return 0, err
	}
	return bal.Amount, nil
}
