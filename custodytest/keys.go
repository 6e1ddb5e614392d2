package custodytest

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
)

// NewKey returns a fresh random identity key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a fresh random identity.
func NewCondition() custody.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the address of a fresh random identity.
func NewAddress() custody.Address {
	return NewCondition().Address()
}
