package ledger

import (
	"testing"

	"github.com/realchain/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type demoMsg struct {
	Num  int
	Text string
}

func (demoMsg) Path() string { return "demo" }
func (m demoMsg) Marshal() ([]byte, error) { return []byte(m.Text), nil }
func (*demoMsg) Unmarshal(bz []byte) error { return nil }
func (m demoMsg) Validate() error {
	if m.Num < 0 {
		return errors.Wrap(errors.ErrMsg, "negative num")
	}
	return nil
}

var _ Msg = (*demoMsg)(nil)

type otherMsg struct{ demoMsg }

func (otherMsg) Path() string { return "other" }

type demoTx struct {
	msg Msg
	err error
}

func (t demoTx) GetMsg() (Msg, error) { return t.msg, t.err }
func (t demoTx) Marshal() ([]byte, error) { return nil, nil }
func (*demoTx) Unmarshal(bz []byte) error { return nil }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    func() interface{}
		wantErr *errors.Error
		want    interface{}
	}{
		"load into a value": {
			tx:   &demoTx{msg: &demoMsg{Num: 1, Text: "a"}},
			dest: func() interface{} { return &demoMsg{} },
			want: &demoMsg{Num: 1, Text: "a"},
		},
		"load into a pointer": {
			tx:   &demoTx{msg: &demoMsg{Num: 2}},
			dest: func() interface{} { var m *demoMsg; return &m },
		},
		"message of a different type": {
			tx:      &demoTx{msg: &otherMsg{}},
			dest:    func() interface{} { return &demoMsg{} },
			wantErr: errors.ErrType,
		},
		"invalid message": {
			tx:      &demoTx{msg: &demoMsg{Num: -1}},
			dest:    func() interface{} { return &demoMsg{} },
			wantErr: errors.ErrMsg,
		},
		"no message": {
			tx:      &demoTx{},
			dest:    func() interface{} { return &demoMsg{} },
			wantErr: errors.ErrMsg,
		},
		"message cannot be read": {
			tx:      &demoTx{err: errors.ErrNotFound},
			dest:    func() interface{} { return &demoMsg{} },
			wantErr: errors.ErrNotFound,
		},
		"destination not a pointer": {
			tx:      &demoTx{msg: &demoMsg{}},
			dest:    func() interface{} { return demoMsg{} },
			wantErr: errors.ErrHuman,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dest := tc.dest()
			err := LoadMsg(tc.tx, dest)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.want != nil {
				assert.Equal(t, tc.want, dest)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "demo", GetPath(&demoTx{msg: &demoMsg{}}))
	assert.Equal(t, "(missing)", GetPath(&demoTx{}))
	assert.Equal(t, "(missing)", GetPath(&demoTx{err: errors.ErrMsg}))
}

func TestQueryRouter(t *testing.T) {
	r := NewQueryRouter()
	h := &countingQuery{}
	r.RegisterAll(func(qr QueryRouter) { qr.Register("/demo", h) })

	require.Equal(t, h, r.Handler("/demo"))
	assert.Nil(t, r.Handler("/missing"))
	assert.Panics(t, func() { r.Register("/demo", h) })
}

type countingQuery struct{ calls int }

func (q *countingQuery) Query(ReadOnlyKVStore, string, []byte) ([]Model, error) {
	q.calls++
	return nil, nil
}
