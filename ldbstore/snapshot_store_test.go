package ldbstore

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/timpalpant/go-deepstack"
	"github.com/timpalpant/go-deepstack/lookahead"
	"github.com/timpalpant/go-deepstack/tree"
)

func buildSnapshot(t *testing.T, root tree.Root) (string, *lookahead.Snapshot) {
	params := deepstack.DefaultParams()
	node, err := tree.NewBuilder(params).Build(root)
	require.NoError(t, err)

	la, err := lookahead.NewBuilder(params, nil).Build(node)
	require.NoError(t, err)
	return lookahead.Key(node), la.Snapshot()
}

func TestSnapshotStore(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "ldbstore-test-")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	store, err := New(tmpDir, &opt.Options{})
	require.NoError(t, err)

	key1, snap1 := buildSnapshot(t, tree.Root{Street: 2, Player: deepstack.P1, Bets: [2]float32{300, 300}})
	key2, snap2 := buildSnapshot(t, tree.Root{Street: 2, Player: deepstack.P2, Bets: [2]float32{500, 100}})
	require.NotEqual(t, key1, key2)

	require.NoError(t, store.Put(key1, snap1))
	require.NoError(t, store.Put(key2, snap2))

	got, err := store.Get(key1)
	require.NoError(t, err)
	assert.True(t, snap1.Equal(got))
	assert.False(t, snap2.Equal(got))

	_, err = store.Get("missing")
	assert.Equal(t, lookahead.ErrSnapshotNotFound, errors.Cause(err))

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{key1, key2}, keys)

	// Snapshots survive reopening the database.
	require.NoError(t, store.Close())
	store, err = New(tmpDir, &opt.Options{})
	require.NoError(t, err)
	defer store.Close()

	got, err = store.Get(key2)
	require.NoError(t, err)
	assert.True(t, snap2.Equal(got))
}
