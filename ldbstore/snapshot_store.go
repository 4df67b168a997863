package ldbstore

import (
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/timpalpant/go-deepstack/lookahead"
)

const keyPrefix = "lookahead/"

// SnapshotStore keeps lookahead snapshots in a LevelDB database.
// SnapshotStore implements lookahead.SnapshotStore.
type SnapshotStore struct {
	path string
	db   *leveldb.DB
}

// New opens (or creates) a SnapshotStore backed by a LevelDB database
// at the given path.
func New(path string, opts *opt.Options) (*SnapshotStore, error) {
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %v", path)
	}

	return &SnapshotStore{
		path: path,
		db:   db,
	}, nil
}

// Close implements io.Closer.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Put implements lookahead.SnapshotStore.
func (s *SnapshotStore) Put(key string, snapshot *lookahead.Snapshot) error {
	value, err := snapshot.MarshalBinary()
	if err != nil {
		return err
	}

	glog.V(2).Infof("Storing %d byte snapshot for %v in %v", len(value), key, s.path)
	return s.db.Put([]byte(keyPrefix+key), value, nil)
}

// Get implements lookahead.SnapshotStore.
func (s *SnapshotStore) Get(key string) (*lookahead.Snapshot, error) {
	value, err := s.db.Get([]byte(keyPrefix+key), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.Wrap(lookahead.ErrSnapshotNotFound, key)
	} else if err != nil {
		return nil, err
	}

	snapshot := &lookahead.Snapshot{}
	if err := snapshot.UnmarshalBinary(value); err != nil {
		return nil, errors.Wrap(err, key)
	}

	return snapshot, nil
}

// Keys returns the keys of all stored snapshots in sorted order.
func (s *SnapshotStore) Keys() ([]string, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(keyPrefix)), nil)
	var keys []string
	for iter.Next() {
		keys = append(keys, strings.TrimPrefix(string(iter.Key()), keyPrefix))
	}

	iter.Release()
	return keys, iter.Error()
}
