package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/gaswelder/minisql"
)

// stateFile keeps the store in a JSON snapshot on disk.
type stateFile struct {
	path   string
	client string
}

// load reads the store from the file. A missing file or an empty path
// yields an empty store.
func (f *stateFile) load() (*minisql.Store, error) {
	if f.path == "" {
		return minisql.NewStore(), nil
	}
	r, err := os.Open(f.path)
	if os.IsNotExist(err) {
		return minisql.NewStore(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to open state file")
	}
	defer r.Close()

	snap, err := minisql.ReadSnapshot(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", f.path)
	}
	store, err := minisql.Restore(snap)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid state in %s", f.path)
	}
	return store, nil
}

// save replaces the file with a snapshot of the store.
func (f *stateFile) save(store *minisql.Store) error {
	if f.path == "" {
		return nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".minisql-*.json")
	if err != nil {
		return errors.Wrap(err, "failed to create state file")
	}
	defer os.Remove(tmp.Name())

	if err := minisql.WriteSnapshot(tmp, store.Snapshot(f.client)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to write state file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), f.path), "failed to replace state file")
}
