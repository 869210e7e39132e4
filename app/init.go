package app

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/store/iavl"
	"github.com/realchain/ledger/x/cash"
	"github.com/realchain/ledger/x/signer"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

// DBName is the name of the state database created in the home directory.
const DBName = "escrowd.db"

// genesisSupply is the amount given to the development account.
const genesisSupply = 123456789

// GenInitOptions produces the genesis options for a development chain with
// one rich account. Accepted arguments are
//   [ticker] [address]
// When no address is given a new key is generated and its seed printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "RLT"
	if len(args) > 0 {
		ticker = args[0]
		if !coin.IsCC(ticker) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", ticker)
		}
	}

	var addr ledger.Address
	if len(args) > 1 {
		a, err := ledger.ParseAddress(args[1])
		if err != nil {
			return nil, errors.Wrap(err, "address")
		}
		addr = a
	} else {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
		addr = signer.KeyCondition(pub).Address()
		fmt.Printf("generated key seed: %s\n", hex.EncodeToString(priv.Seed()))
	}

	opts := map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Address: addr, Coins: []coin.Coin{coin.NewCoin(genesisSupply, ticker)}},
		},
		"conf": map[string]interface{}{
			cash.ConfPkg: cash.Configuration{
				CollectorAddress: addr,
				MinimalFee:       coin.NewCoin(0, ticker),
			},
		},
	}
	raw, err := json.MarshalIndent(opts, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenerateApp creates the application persisting its state in the home
// directory. An empty home keeps all state in memory.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	var db iavl.CommitStore
	if home == "" {
		db = iavl.NewMemCommitStore()
	} else {
		s, err := iavl.NewCommitStore(home, DBName)
		if err != nil {
			return nil, err
		}
		db = s
	}

	return New(db, Options{
		Logger:     logger,
		Registerer: prometheus.DefaultRegisterer,
		Debug:      debug,
	})
}
