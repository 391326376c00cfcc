// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package manifest records export progress in a bbolt database so an
// interrupted export can resume without rewriting finished frames.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

// DefaultName is the manifest file name used when an export directory is
// given without an explicit manifest path.
const DefaultName = ".frameplay.db"

var framesBucket = []byte("frames")

// ErrClosed is returned when a closed store is used.
var ErrClosed = errors.New("manifest: store is closed")

// Status is the outcome of exporting one frame.
type Status string

// Frame outcomes.
const (
	StatusWritten Status = "written"
	StatusFailed  Status = "failed"
)

// Record describes one exported frame, keyed by its file name.
type Record struct {
	Name    string    `json:"name"`
	Frame   int       `json:"frame"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Size    int64     `json:"size"`
	Status  Status    `json:"status"`
	Err     string    `json:"err,omitempty"`
	Updated time.Time `json:"updated"`
}

// Store is an open manifest database.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the manifest at path. It fails after one second if
// another process holds the file.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(framesBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("manifest: init: %w", err)
	}
	return &Store{db: db}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

// Put stores r, replacing any record with the same name. A zero Updated time
// is set to now.
func (s *Store) Put(r Record) error {
	if r.Updated.IsZero() {
		r.Updated = time.Now()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("manifest: encode %s: %w", r.Name, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(framesBucket).Put([]byte(r.Name), data)
	})
	return s.wrap("put "+r.Name, err)
}

// Get returns the record stored under name.
func (s *Store) Get(name string) (Record, bool, error) {
	var (
		r     Record
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(framesBucket).Get([]byte(name))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &r)
	})
	if err != nil {
		return Record{}, false, s.wrap("get "+name, err)
	}
	return r, found, nil
}

// Records returns every record ordered by frame index.
func (s *Store) Records() ([]Record, error) {
	var out []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(framesBucket).ForEach(func(_, v []byte) error {
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			out = append(out, r)
			return nil
		})
	})
	if err != nil {
		return nil, s.wrap("list", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Frame < out[j].Frame })
	return out, nil
}

// Reset removes every record.
func (s *Store) Reset() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(framesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(framesBucket)
		return err
	})
	return s.wrap("reset", err)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return ErrClosed
	}
	return fmt.Errorf("manifest: %s: %w", op, err)
}
