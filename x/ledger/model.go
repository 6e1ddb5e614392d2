package ledger

import (
	"github.com/iov-one/custody"
)

// Transaction is a proposed transfer of value from the custody pool.
type Transaction struct {
	To            custody.Address
	Value         uint64
	Data          []byte
	Executed      bool
	Confirmations uint32
}

// Copy returns a deep copy of the transaction.
func (t *Transaction) Copy() *Transaction {
	var data []byte
	if len(t.Data) != 0 {
		data = append([]byte(nil), t.Data...)
	}
	return &Transaction{
		To:            t.To.Clone(),
		Value:         t.Value,
		Data:          data,
		Executed:      t.Executed,
		Confirmations: t.Confirmations,
	}
}

// entry is a single registry slot. It keeps the transaction together with
// the per owner confirmation flags, indexed by owner position.
type entry struct {
	tx        Transaction
	confirmed []bool
}

func newEntry(tx Transaction, owners int) *entry {
	return &entry{
		tx:        tx,
		confirmed: make([]bool, owners),
	}
}

// setConfirmation is the only place where the confirmation flags or the
// confirmation counter are modified. The counter always equals the number of
// set flags.
func (e *entry) setConfirmation(owner int, confirmed bool) {
	if e.confirmed[owner] == confirmed {
		return
	}
	e.confirmed[owner] = confirmed
	if confirmed {
		e.tx.Confirmations++
	} else {
		e.tx.Confirmations--
	}
}
