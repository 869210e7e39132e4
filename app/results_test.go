package app

import (
	"testing"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSet(t *testing.T) {
	models := []ledger.Model{
		ledger.Pair([]byte("alice"), []byte("one")),
		ledger.Pair([]byte("bob"), []byte("two")),
	}

	keys, err := ResultsFromKeys(models).Marshal()
	require.NoError(t, err)
	values, err := ResultsFromValues(models).Marshal()
	require.NoError(t, err)

	var k, v ResultSet
	require.NoError(t, k.Unmarshal(keys))
	require.NoError(t, v.Unmarshal(values))
	joined, err := JoinResults(&k, &v)
	require.NoError(t, err)
	assert.Equal(t, models, joined)

	_, err = JoinResults(&k, &ResultSet{})
	assert.True(t, errors.ErrState.Is(err))

	var rs ResultSet
	err = rs.Unmarshal([]byte{0xff, 0xff})
	assert.True(t, errors.ErrType.Is(err))
}

func TestEmptyResultSet(t *testing.T) {
	raw, err := ResultsFromValues(nil).Marshal()
	require.NoError(t, err)

	var rs ResultSet
	require.NoError(t, rs.Unmarshal(raw))
	assert.Empty(t, rs.Results)
}
