package cash

import (
	"encoding/json"
	"testing"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	Convey("Given a genesis with cash accounts", t, func() {
		db := store.MemStore()
		ctrl := NewController(NewBucket())
		var ini Initializer

		Convey("No cash section creates no wallets", func() {
			So(ini.FromGenesis(ledger.Options{}, db), ShouldBeNil)
		})

		Convey("Accounts are created with their coins", func() {
			const genesis = `{
				"cash": [
					{
						"address": "C30A2424104F542576EF01FECA2FF558F5EAA61A",
						"coins": ["50 RLT", {"ticker": "ABC", "amount": 7}]
					}
				]
			}`
			var opts ledger.Options
			So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)
			So(ini.FromGenesis(opts, db), ShouldBeNil)

			addr, err := ledger.ParseAddress("C30A2424104F542576EF01FECA2FF558F5EAA61A")
			So(err, ShouldBeNil)
			coins, err := ctrl.Balance(db, addr)
			So(err, ShouldBeNil)
			So(coins.Equals(coin.Coins{coin.NewCoin(7, "ABC"), coin.NewCoin(50, "RLT")}), ShouldBeTrue)
		})

		Convey("An invalid address is rejected", func() {
			opts := ledger.Options{"cash": json.RawMessage(`[{"address": "1234", "coins": []}]`)}
			So(ini.FromGenesis(opts, db), ShouldNotBeNil)
		})
	})
}
