package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"path/filepath"
	"time"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// GenesisFile is the name of the genesis document inside of the home
	// directory.
	GenesisFile = "genesis.json"

	appStateKey = "app_state"
	flagChainID = "chain-id"
)

// GenOptions can parse command-line arguments to generate the app_state
// of the genesis file. This is application specific.
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd writes the default daemon configuration, unless one exists, and
// sets the app_state of the genesis file. A new genesis file is created if
// none is found in the home directory.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	chainID := initFlags.String(flagChainID, "escrow-devnet", "chain id of a newly created genesis file")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if !ledger.IsValidChainID(*chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", *chainID)
	}

	if fileExists(filepath.Join(home, ConfigFile)) {
		logger.Info("Found configuration", "home", home)
	} else {
		if err := WriteConfig(home, DefaultConfig()); err != nil {
			return errors.Wrap(err, "write configuration")
		}
		logger.Info("Generated configuration", "home", home)
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return errors.Wrap(err, "app_state")
	}

	genFile := filepath.Join(home, GenesisFile)
	if fileExists(genFile) {
		logger.Info("Found genesis file", "path", genFile)
		return addGenesisOptions(genFile, options)
	}
	doc := GenesisDoc{}
	if err := doc.set("chain_id", *chainID); err != nil {
		return err
	}
	if err := doc.set("genesis_time", time.Now().UTC()); err != nil {
		return err
	}
	doc[appStateKey] = options
	logger.Info("Generated genesis file", "path", genFile, "chain_id", *chainID)
	return doc.save(genFile)
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func (d GenesisDoc) set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "%s: %s", key, err)
	}
	d[key] = raw
	return nil
}

func (d GenesisDoc) save(filename string) error {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(filename, out, 0600); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func loadGenesis(filename string) (GenesisDoc, error) {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "cannot read genesis file: %s", err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot JSON deserialize genesis: %s", err)
	}
	return doc, nil
}

func addGenesisOptions(filename string, options json.RawMessage) error {
	doc, err := loadGenesis(filename)
	if err != nil {
		return err
	}
	doc[appStateKey] = options
	return doc.save(filename)
}
