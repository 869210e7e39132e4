package gconf

import (
	"sort"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
)

// Initializer loads the configuration of every registered package from the
// genesis file. Packages are registered with their empty configuration
// object.
type Initializer struct {
	confs map[string]Configuration
}

var _ ledger.Initializer = (*Initializer)(nil)

// NewInitializer returns an initializer that loads configuration for given
// packages.
func NewInitializer(confs map[string]Configuration) *Initializer {
	return &Initializer{confs: confs}
}

// FromGenesis saves the configuration of every registered package, in name
// order. A missing "conf" section is accepted only when no package is
// registered.
func (i *Initializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	pkgs := make([]string, 0, len(i.confs))
	for pkg := range i.confs {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)
	for _, pkg := range pkgs {
		if err := InitConfig(db, opts, pkg, i.confs[pkg]); err != nil {
			return errors.Wrapf(err, "package %s", pkg)
		}
	}
	return nil
}
