package server

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/x/signer"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

const (
	flagSeed = "seed"
	flagPath = "derivation"
	flagHRP  = "hrp"
)

// KeysCmd prints the signer condition and the address of an ed25519 key.
// The key is created from a hex encoded seed, optionally derived using a
// bip44 path. Without a seed a random key is generated.
func KeysCmd(out io.Writer, args []string) error {
	keysFlags := flag.NewFlagSet("keys", flag.ContinueOnError)
	seedHex := keysFlags.String(flagSeed, "", "hex encoded seed, random if empty")
	path := keysFlags.String(flagPath, "", "bip44 derivation path, for example \"m/44'/234'/0'\"")
	hrp := keysFlags.String(flagHRP, "rlt", "human readable part of the bech32 address")
	if err := keysFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	key, err := deriveKey(*seedHex, *path)
	if err != nil {
		return err
	}
	cond := signer.KeyCondition(key.Public().(ed25519.PublicKey))
	addr := cond.Address()
	b32, err := addr.Bech32(*hrp)
	if err != nil {
		return errors.Wrap(err, "bech32")
	}

	fmt.Fprintf(out, "seed:      %s\n", hex.EncodeToString(key.Seed()))
	fmt.Fprintf(out, "condition: %s\n", cond)
	fmt.Fprintf(out, "address:   %s\n", addr)
	fmt.Fprintf(out, "bech32:    %s\n", b32)
	return nil
}

// deriveKey returns the private key for given seed and path. With an
// empty path the seed is used as the ed25519 seed directly.
func deriveKey(seedHex, path string) (ed25519.PrivateKey, error) {
	if seedHex == "" {
		if path != "" {
			return nil, errors.Wrap(errors.ErrInput, "derivation requires a seed")
		}
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
		return priv, nil
	}

	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode seed: %s", err)
	}
	if path == "" {
		if len(seed) != ed25519.SeedSize {
			return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
		}
		return ed25519.NewKeyFromSeed(seed), nil
	}

	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot derive key using path=%q: %s", path, err)
	}
	return ed25519.NewKeyFromSeed(k.Key), nil
}
