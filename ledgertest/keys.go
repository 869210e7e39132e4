package ledgertest

import (
	"crypto/rand"

	"github.com/realchain/ledger"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a new random ed25519 private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return priv
}

// NewCondition returns the signer condition of a new random key.
func NewCondition() ledger.Condition {
	pub := NewKey().Public().(ed25519.PublicKey)
	return ledger.NewCondition("sigs", "ed25519", pub)
}
