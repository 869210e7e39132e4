package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
)

// ResultSet contains a list of keys or values returned by a query.
type ResultSet struct {
	Results [][]byte
}

// resultSetMessage is the protobuf wire representation of a ResultSet.
type resultSetMessage struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *resultSetMessage) Reset()         { *m = resultSetMessage{} }
func (m *resultSetMessage) String() string { return proto.CompactTextString(m) }
func (*resultSetMessage) ProtoMessage()    {}

// Marshal encodes the set as a protobuf message.
func (rs *ResultSet) Marshal() ([]byte, error) {
	raw, err := proto.Marshal(&resultSetMessage{Results: rs.Results})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "result set: %s", err)
	}
	return raw, nil
}

// Unmarshal decodes a protobuf encoded set.
func (rs *ResultSet) Unmarshal(raw []byte) error {
	var m resultSetMessage
	if err := proto.Unmarshal(raw, &m); err != nil {
		return errors.Wrapf(errors.ErrType, "result set: %s", err)
	}
	rs.Results = m.Results
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []ledger.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []ledger.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]ledger.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrState, "mismatched result set size")
	}
	mods := make([]ledger.Model, len(kref))
	for i := range mods {
		mods[i] = ledger.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o ledger.Persistent) error {
	// get the resultset
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}

	// no results, do nothing
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
