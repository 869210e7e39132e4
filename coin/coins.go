package coin

import (
	"sort"
	"strings"

	"github.com/realchain/ledger/errors"
)

// Coins represents a set of coins of different currencies. A normalized set
// is ordered by ticker, holds each ticker at most once and no zero values.
type Coins []Coin

// CombineCoins creates a normalized Coins containing all given coins.
func CombineCoins(cs ...Coin) (Coins, error) {
	var (
		res Coins
		err error
	)
	for _, c := range cs {
		res, err = res.Add(c)
		if err != nil {
			return nil, err
		}
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// Clone returns a copy that can be safely modified.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	copy(res, cs)
	return res
}

// Add returns a new set with the holdings increased by c.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}

	res := cs.Clone()
	has, i := res.findCoin(c.ID())
	if has != nil {
		sum, err := has.Add(c)
		if err != nil {
			return nil, err
		}
		if sum.IsZero() {
			return append(res[:i], res[i+1:]...), nil
		}
		res[i] = sum
		return res, nil
	}

	res = append(res, Coin{})
	copy(res[i+1:], res[i:])
	res[i] = c
	return res, nil
}

// Subtract returns a new set with the holdings decreased by c.
// The resulting Coins may have negative amounts.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Contains returns true if there is at least that much coin in the set.
func (cs Coins) Contains(c Coin) bool {
	has, _ := cs.findCoin(c.ID())
	if has == nil {
		return false
	}
	return has.IsGTE(c)
}

// Balance returns the amount held of given ticker, zero if none.
func (cs Coins) Balance(ticker string) Coin {
	has, _ := cs.findCoin(ticker)
	if has == nil {
		return Coin{Ticker: ticker}
	}
	return *has
}

// findCoin returns a coin and index that have this currency code.
//
// If there was no match, then result is nil, and index is where it should be
// inserted.
func (cs Coins) findCoin(id string) (*Coin, int) {
	for i := range cs {
		switch strings.Compare(id, cs[i].ID()) {
		case -1:
			return nil, i
		case 0:
			return &cs[i], i
		}
	}
	return nil, len(cs)
}

// IsEmpty returns if nothing is in the set.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsNonNegative returns true if all coins are positive, but also accepts an
// empty set.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets contain same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(o[i]) {
			return false
		}
	}
	return true
}

// Validate requires that all coins are in alphabetical order, that each coin
// is valid in it's own right and no zero amounts are present.
func (cs Coins) Validate() error {
	var err error
	last := ""
	for _, c := range cs {
		err = errors.Append(err, errors.Wrap(c.Validate(), "coin"))
		if c.IsZero() {
			err = errors.Append(err, errors.Wrap(errors.ErrState, "zero coins"))
		}
		if c.Ticker <= last && last != "" {
			err = errors.Append(err, errors.Wrap(errors.ErrState, "not sorted"))
		}
		last = c.Ticker
	}
	return err
}

// NormalizeCoins merges coins of the same currency, drops zero values and
// orders the result by ticker.
func NormalizeCoins(cs Coins) (Coins, error) {
	set := make(map[string]Coin)
	for _, c := range cs {
		sum, err := set[c.Ticker].Add(c)
		if err != nil {
			return nil, errors.Wrap(err, "cannot sum coins")
		}
		set[c.Ticker] = sum
	}
	res := make(Coins, 0, len(set))
	for _, c := range set {
		if c.IsZero() {
			continue
		}
		res = append(res, c)
	}
	if len(res) == 0 {
		return nil, nil
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Ticker < res[j].Ticker
	})
	return res, nil
}
