package app

import (
	"encoding/json"
	"testing"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/ledgertest"
	"github.com/realchain/ledger/store"
	"github.com/realchain/ledger/x/cash"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tendermint/tendermint/libs/log"
)

func TestGenInitOptions(t *testing.T) {
	Convey("Given generated genesis options", t, func() {
		addr := ledgertest.NewCondition().Address()

		Convey("Explicit ticker and address fund that account", func() {
			raw, err := GenInitOptions([]string{"ESC", addr.String()})
			So(err, ShouldBeNil)

			var opts ledger.Options
			So(json.Unmarshal(raw, &opts), ShouldBeNil)

			db := store.MemStore()
			So(Initializers().FromGenesis(opts, db), ShouldBeNil)

			ctrl := cash.NewController(cash.NewBucket())
			balance, err := ctrl.Balance(db, addr)
			So(err, ShouldBeNil)
			So(balance.Balance("ESC"), ShouldResemble, coin.NewCoin(genesisSupply, "ESC"))

			conf, err := cash.LoadConfiguration(db)
			So(err, ShouldBeNil)
			So(conf.CollectorAddress, ShouldResemble, addr)
			So(conf.MinimalFee.IsZero(), ShouldBeTrue)
		})

		Convey("Without an address a new account is created", func() {
			raw, err := GenInitOptions(nil)
			So(err, ShouldBeNil)

			var opts ledger.Options
			So(json.Unmarshal(raw, &opts), ShouldBeNil)
			So(Initializers().FromGenesis(opts, store.MemStore()), ShouldBeNil)

			var accounts []cash.GenesisAccount
			So(opts.ReadOptions("cash", &accounts), ShouldBeNil)
			So(accounts, ShouldHaveLength, 1)
			So(accounts[0].Coins, ShouldResemble, []coin.Coin{coin.NewCoin(genesisSupply, "RLT")})
		})

		Convey("Invalid ticker is rejected", func() {
			_, err := GenInitOptions([]string{"rlt"})
			So(errors.ErrCurrency.Is(err), ShouldBeTrue)
		})

		Convey("Invalid address is rejected", func() {
			_, err := GenInitOptions([]string{"RLT", "not-hex"})
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})
	})
}

func TestGenerateInMemoryApp(t *testing.T) {
	Convey("An application without home directory keeps state in memory", t, func() {
		app, err := GenerateApp("", log.NewNopLogger(), false)
		So(err, ShouldBeNil)
		So(app, ShouldNotBeNil)
	})
}
