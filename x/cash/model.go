package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	balanceBucket  = "cash"
	transferBucket = "transfers"
)

// Balance is the amount of value held by a single address.
type Balance struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ orm.Model = (*Balance)(nil)

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

// Validate always succeeds. Any amount, including zero, is a valid balance.
func (m *Balance) Validate() error {
	return nil
}

// Add increases the balance by given amount.
func (m *Balance) Add(amount uint64) error {
	sum := m.Amount + amount
	if sum < m.Amount {
		return errors.Wrapf(errors.ErrOverflow, "%d + %d", m.Amount, amount)
	}
	m.Amount = sum
	return nil
}

// Subtract decreases the balance by given amount. Balance cannot go below
// zero.
func (m *Balance) Subtract(amount uint64) error {
	if amount > m.Amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %d < %d", m.Amount, amount)
	}
	m.Amount -= amount
	return nil
}

// TransferRecord is a history entry of a value transfer out of the pool.
type TransferRecord struct {
	Recipient []byte `protobuf:"bytes,1,opt,name=recipient,proto3" json:"recipient,omitempty"`
	Value     uint64 `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
	Data      []byte `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
}

var _ orm.Model = (*TransferRecord)(nil)

func (m *TransferRecord) Reset()         { *m = TransferRecord{} }
func (m *TransferRecord) String() string { return proto.CompactTextString(m) }
func (*TransferRecord) ProtoMessage()    {}

func (m *TransferRecord) Validate() error {
	if err := custody.Address(m.Recipient).Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}

// NewBalanceBucket returns a bucket for storing balances, keyed by address.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket(balanceBucket, &Balance{})
}

// NewTransferBucket returns a bucket for storing the transfer history,
// keyed by a sequence.
func NewTransferBucket() orm.ModelBucket {
	return orm.NewModelBucket(transferBucket, &TransferRecord{})
}

// PoolCondition returns the condition that owns the value of the custody
// pool with given name. No key can sign for it, value leaves the pool only
// through Vault.Transfer.
func PoolCondition(name string) custody.Condition {
	return custody.NewCondition("cash", "pool", []byte(name))
}
