package rdbstore

import (
	"bytes"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	rocksdb "github.com/tecbot/gorocksdb"

	"github.com/timpalpant/go-deepstack/lookahead"
)

var keyPrefix = []byte("lookahead/")

// SnapshotStore keeps lookahead snapshots in a RocksDB database.
// SnapshotStore implements lookahead.SnapshotStore.
type SnapshotStore struct {
	params Params
	db     *rocksdb.DB
}

// New opens (or creates) a SnapshotStore backed by a RocksDB database.
// The store takes ownership of params and destroys its options on Close.
func New(params Params) (*SnapshotStore, error) {
	db, err := rocksdb.OpenDb(params.Options, params.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %v", params.Path)
	}

	return &SnapshotStore{
		params: params,
		db:     db,
	}, nil
}

// Close implements io.Closer.
func (s *SnapshotStore) Close() error {
	s.db.Close()
	s.params.Close()
	return nil
}

func makeKey(key string) []byte {
	return append(append([]byte(nil), keyPrefix...), key...)
}

// Put implements lookahead.SnapshotStore.
func (s *SnapshotStore) Put(key string, snapshot *lookahead.Snapshot) error {
	value, err := snapshot.MarshalBinary()
	if err != nil {
		return err
	}

	glog.V(2).Infof("Storing %d byte snapshot for %v in %v", len(value), key, s.params.Path)
	return s.db.Put(s.params.WriteOptions, makeKey(key), value)
}

// Get implements lookahead.SnapshotStore.
func (s *SnapshotStore) Get(key string) (*lookahead.Snapshot, error) {
	result, err := s.db.Get(s.params.ReadOptions, makeKey(key))
	if err != nil {
		return nil, err
	}
	defer result.Free()

	if !result.Exists() {
		return nil, errors.Wrap(lookahead.ErrSnapshotNotFound, key)
	}

	snapshot := &lookahead.Snapshot{}
	if err := snapshot.UnmarshalBinary(result.Data()); err != nil {
		return nil, errors.Wrap(err, key)
	}

	return snapshot, nil
}

// Keys returns the keys of all stored snapshots in sorted order.
func (s *SnapshotStore) Keys() ([]string, error) {
	it := s.db.NewIterator(s.params.ReadOptions)
	defer it.Close()

	var keys []string
	for it.Seek(keyPrefix); it.ValidForPrefix(keyPrefix); it.Next() {
		key := it.Key()
		keys = append(keys, string(bytes.TrimPrefix(key.Data(), keyPrefix)))
		key.Free()
	}

	return keys, it.Err()
}
