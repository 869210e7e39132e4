package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/realchain/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = "d34c1970ae90acf3405f2d99dcaca16d0c7db379f4beafcfdf667b9d69ce350d27f5fb440509dfa79ec883a0510bc9a9614c3d44188881f0c5e402898b4bf3c9"

func TestKeysDerivation(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, KeysCmd(&a, []string{"-seed", testSeed, "-derivation", "m/44'/234'/0'"}))
	require.NoError(t, KeysCmd(&b, []string{"-seed", testSeed, "-derivation", "m/44'/234'/0'"}))
	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), "condition: sigs/ed25519/")
	assert.Contains(t, a.String(), "bech32:    rlt1")

	var other bytes.Buffer
	require.NoError(t, KeysCmd(&other, []string{"-seed", testSeed, "-derivation", "m/44'/234'/1'"}))
	assert.NotEqual(t, a.String(), other.String())
}

func TestKeysFromSeed(t *testing.T) {
	seed := testSeed[:64]
	var out bytes.Buffer
	require.NoError(t, KeysCmd(&out, []string{"-seed", seed}))
	assert.True(t, strings.HasPrefix(out.String(), "seed:      "+seed+"\n"), out.String())
}

func TestKeysRandom(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, KeysCmd(&a, nil))
	require.NoError(t, KeysCmd(&b, nil))
	assert.NotEqual(t, a.String(), b.String())
}

func TestKeysErrors(t *testing.T) {
	cases := map[string][]string{
		"not hex":           {"-seed", "zz"},
		"short seed":        {"-seed", "abcd"},
		"path without seed": {"-derivation", "m/44'/234'/0'"},
		"invalid path":      {"-seed", testSeed, "-derivation", "44/x"},
		"unknown flag":      {"-unknown"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			err := KeysCmd(&out, args)
			assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
		})
	}
}
