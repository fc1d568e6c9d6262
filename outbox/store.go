// ABOUTME: BadgerDB-backed store for queued side-effect records
// ABOUTME: Keys are kind-prefixed so listings can iterate one kind at a time
package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("outbox object not found")

// Store persists outbox records in a local BadgerDB.
type Store struct {
	db *badger.DB
}

// OpenStore opens (or creates) the outbox database at path. An empty path
// opens an in-memory store, used by tests.
func OpenStore(path string) (*Store, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open outbox store: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func key(kind string, id uuid.UUID) []byte {
	return []byte(kind + "/" + id.String())
}

// Put writes an object under its kind-prefixed key.
func (s *Store) Put(obj *BaseObject) error {
	if obj == nil || obj.Kind == "" {
		return errors.New("invalid outbox object")
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(obj.Kind, obj.ID), data)
	})
}

// Get retrieves one object by kind and id.
func (s *Store) Get(kind string, id uuid.UUID) (*BaseObject, error) {
	var obj BaseObject

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(kind, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrObjectNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &obj)
		})
	})
	if err != nil {
		return nil, err
	}

	return &obj, nil
}

// List returns every object of one kind, oldest first.
func (s *Store) List(kind string) ([]*BaseObject, error) {
	var objects []*BaseObject

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(kind + "/")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var obj BaseObject
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &obj)
			})
			if err != nil {
				return err
			}
			objects = append(objects, &obj)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].CreatedAt.Before(objects[j].CreatedAt)
	})

	return objects, nil
}

// Delete removes one object.
func (s *Store) Delete(kind string, id uuid.UUID) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(kind, id))
	})
}
