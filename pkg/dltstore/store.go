// Package dltstore deduplicates recurring corruption signatures across
// repeated parse runs over a rotating log directory. Adapted from the
// teacher's pkg/storage/dtc.go, which does the same for J1587/J1939 DTC
// codes keyed spn:fmi - here the key is ecu:cause.
package dltstore

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketKey = "corruption_signatures"

// Store wraps a bbolt database tracking which ecu:cause corruption
// signatures have already been reported.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the bbolt database at path and ensures its
// bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketKey))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func key(ecu, cause string) []byte {
	return []byte(fmt.Sprintf("%s:%s", ecu, cause))
}

// Seen records one occurrence of the ecu:cause signature at offset, and
// reports whether it was previously unseen. A first-seen signature is
// stored with its offset and a count of 1; subsequent calls bump the
// count and leave the recorded offset untouched.
func (s *Store) Seen(ecu, cause string, offset uint64) (isNew bool, err error) {
	k := key(ecu, cause)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketKey))
		existing := b.Get(k)
		if existing == nil {
			isNew = true
			return b.Put(k, encodeEntry(offset, 1))
		}
		off, count := decodeEntry(existing)
		return b.Put(k, encodeEntry(off, count+1))
	})
	return isNew, err
}

// Count returns how many times the ecu:cause signature has been recorded,
// 0 if it has never been seen.
func (s *Store) Count(ecu, cause string) (uint32, error) {
	var count uint32
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketKey))
		v := b.Get(key(ecu, cause))
		if v == nil {
			return nil
		}
		_, count = decodeEntry(v)
		return nil
	})
	return count, err
}

// ClearAll drops every recorded signature, recreating an empty bucket.
func (s *Store) ClearAll() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketKey)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketKey))
		return err
	})
}

// encodeEntry/decodeEntry pack {offset, count} into a fixed 12-byte value:
// first-seen offset (8 bytes) + occurrence count (4 bytes), big-endian.
func encodeEntry(offset uint64, count uint32) []byte {
	b := make([]byte, 12)
	for i := 0; i < 8; i++ {
		b[7-i] = byte(offset >> (8 * i))
	}
	for i := 0; i < 4; i++ {
		b[11-i] = byte(count >> (8 * i))
	}
	return b
}

func decodeEntry(b []byte) (offset uint64, count uint32) {
	for i := 0; i < 8 && i < len(b); i++ {
		offset = offset<<8 | uint64(b[i])
	}
	for i := 8; i < 12 && i < len(b); i++ {
		count = count<<8 | uint32(b[i])
	}
	return offset, count
}
