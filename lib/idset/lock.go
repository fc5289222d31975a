// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || linux

package idset

import (
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sys/unix"
)

// Lock takes an exclusive advisory lock for the set file at path and
// returns the function that releases it. The lock is held on a sibling
// ".lock" file because Save replaces path by rename, which would
// orphan a lock held on the set file itself. Lock blocks until the
// lock is available.
func Lock(path string) (func() error, error) {
	lockPath := path + ".lock"
	fd, err := unix.Open(lockPath, unix.O_CREAT|unix.O_RDWR|unix.O_CLOEXEC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file %s: %w", lockPath, err)
	}
	for {
		err = unix.Flock(fd, unix.LOCK_EX)
		if !errors.Is(err, unix.EINTR) {
			break
		}
	}
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}

	return func() error {
		// Closing the descriptor releases the flock.
		if err := unix.Close(fd); err != nil {
			return fmt.Errorf("unlocking %s: %w", path, err)
		}
		return nil
	}, nil
}

// Update runs a locked read-modify-write cycle on the set file at
// path. fn receives the loaded set, or nil when the file does not
// exist, and returns the set to save. Returning a nil set leaves the
// file untouched. Concurrent Updates of the same path serialize, so
// none of their changes are lost.
func Update(path string, compression Compression, fn func(*Set) (*Set, error)) (err error) {
	unlock, err := Lock(path)
	if err != nil {
		return err
	}
	defer func() {
		if unlockErr := unlock(); err == nil {
			err = unlockErr
		}
	}()

	set, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		set, err = nil, nil
	}
	if err != nil {
		return err
	}

	updated, err := fn(set)
	if err != nil || updated == nil {
		return err
	}
	return Save(path, updated, compression)
}
