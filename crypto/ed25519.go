package crypto

import (
	"encoding/hex"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we derive from keys
const ExtensionName = "sigs"

// PrivateKey is an ed25519 private key identifying a custody party.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes long", ed25519.SeedSize)
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// PrivKeyEd25519FromHex decodes a hex encoded seed into a private key.
func PrivKeyEd25519FromHex(seed string) (*PrivateKey, error) {
	raw, err := hex.DecodeString(seed)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "seed is not hex encoded")
	}
	return PrivKeyEd25519FromSeed(raw)
}

// Seed returns the seed this key can be restored from.
func (p *PrivateKey) Seed() []byte {
	return p.key.Seed()
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := p.key.Public().(ed25519.PublicKey)
	return &PublicKey{key: pub}
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	key ed25519.PublicKey
}

// Condition encodes the public key into a custody condition
func (p *PublicKey) Condition() custody.Condition {
	return custody.NewCondition(ExtensionName, "ed25519", p.key)
}

// Address returns the identity of the key owner.
func (p *PublicKey) Address() custody.Address {
	return p.Condition().Address()
}
