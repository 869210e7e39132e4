package gconf

import (
	"encoding/json"
	"testing"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesisInitializer(t *testing.T) {
	Convey("Given a genesis file with a conf section", t, func() {
		const genesis = `
			{
				"conf": {
					"my": {
						"number": 321,
						"addr": "d2a1f84143a9754057e42db6d6c9f986fe0ff673",
						"fee": "4 RLT"
					}
				}
			}
		`
		var opts ledger.Options
		So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)
		db := store.MemStore()

		Convey("Registered packages are loaded and saved", func() {
			ini := NewInitializer(map[string]Configuration{"my": &myConfig{}})
			So(ini.FromGenesis(opts, db), ShouldBeNil)

			var got myConfig
			So(Load(db, "my", &got), ShouldBeNil)
			So(got.Number, ShouldEqual, 321)
			So(got.Fee.Equals(coin.NewCoin(4, "RLT")), ShouldBeTrue)

			want, err := ledger.ParseAddress("d2a1f84143a9754057e42db6d6c9f986fe0ff673")
			So(err, ShouldBeNil)
			So(got.Addr.Equals(want), ShouldBeTrue)
		})

		Convey("A package without configuration fails", func() {
			ini := NewInitializer(map[string]Configuration{
				"my":    &myConfig{},
				"other": &myConfig{},
			})
			err := ini.FromGenesis(opts, db)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})

		Convey("Nothing to load is not an error", func() {
			ini := NewInitializer(nil)
			So(ini.FromGenesis(ledger.Options{}, db), ShouldBeNil)
		})
	})
}
