package cash

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/codec"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/gconf"
)

// ConfPkg is the gconf package name the configuration is stored under.
const ConfPkg = "cash"

// Configuration holds the fee settings of the cash extension.
type Configuration struct {
	// CollectorAddress receives all collected fees.
	CollectorAddress ledger.Address `json:"collector_address"`
	// MinimalFee is charged on every settlement. A zero value disables
	// the fee.
	MinimalFee coin.Coin `json:"minimal_fee"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// Validate requires a collector address and a non negative fee.
func (c *Configuration) Validate() error {
	if len(c.CollectorAddress) == 0 {
		return errors.Wrap(errors.ErrEmpty, "collector address missing")
	}
	if err := c.CollectorAddress.Validate(); err != nil {
		return errors.Wrap(err, "collector address")
	}
	if !c.MinimalFee.IsZero() {
		if err := c.MinimalFee.Validate(); err != nil {
			return errors.Wrap(err, "minimal fee")
		}
		if !c.MinimalFee.IsNonNegative() {
			return errors.Wrap(errors.ErrAmount, "minimal fee cannot be negative")
		}
	}
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, c)
}

// LoadConfiguration returns the configuration stored in the database.
func LoadConfiguration(db ledger.ReadOnlyKVStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, ConfPkg, &conf); err != nil {
		return conf, errors.Wrap(err, "load cash configuration")
	}
	return conf, nil
}

// SaveConfiguration validates and stores given configuration.
func SaveConfiguration(db ledger.KVStore, conf Configuration) error {
	return gconf.Save(db, ConfPkg, &conf)
}
