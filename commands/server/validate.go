package server

import (
	"encoding/json"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/store"
)

// ValidateGenesis loads the app_state of every given genesis file into a
// throw away store. The first file that cannot be loaded fails the check.
func ValidateGenesis(ini ledger.Initializer, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no genesis file given")
	}
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini ledger.Initializer, genesisPath string) error {
	doc, err := loadGenesis(genesisPath)
	if err != nil {
		return err
	}
	raw, ok := doc[appStateKey]
	if !ok {
		return errors.Wrap(errors.ErrEmpty, "app_state missing")
	}
	var state ledger.Options
	if err := json.Unmarshal(raw, &state); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot JSON deserialize app_state: %s", err)
	}

	// Use in memory store because we want to discard the result.
	if err := ini.FromGenesis(state, store.MemStore()); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
