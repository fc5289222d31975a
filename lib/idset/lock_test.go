// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || linux

package idset

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func TestUpdateCreatesAndModifies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.buidset")

	err := Update(path, CompressionLZ4, func(set *Set) (*Set, error) {
		if set != nil {
			t.Errorf("missing file loaded as %d members, want nil", set.Len())
		}
		set = New(testLayout)
		_, err := set.Add(makeID(t, 2, 0))
		return set, err
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = Update(path, CompressionLZ4, func(set *Set) (*Set, error) {
		if set == nil || !set.Contains(makeID(t, 2, 0)) {
			t.Fatal("second Update did not see the first one's member")
		}
		set.Add(makeID(t, 1, 0))
		return set, nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 {
		t.Errorf("Len() = %d, want 2", loaded.Len())
	}
}

func TestUpdateNilResultLeavesFileAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "untouched.buidset")
	if err := Update(path, CompressionNone, func(*Set) (*Set, error) { return nil, nil }); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("set file created although fn returned nil")
	}

	failure := errors.New("refused")
	err := Update(path, CompressionNone, func(*Set) (*Set, error) { return New(testLayout), failure })
	if !errors.Is(err, failure) {
		t.Errorf("Update error = %v, want %v", err, failure)
	}
	if _, err := Load(path); err == nil {
		t.Error("set file created although fn failed")
	}
}

func TestConcurrentUpdatesKeepEveryMember(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contended.buidset")

	const writers = 16
	var wait sync.WaitGroup
	errs := make(chan error, writers)
	for i := range writers {
		wait.Add(1)
		go func() {
			defer wait.Done()
			id := testLayout.MustParse([]byte{'t', byte(i), 0, 0})
			errs <- Update(path, CompressionZstd, func(set *Set) (*Set, error) {
				if set == nil {
					set = New(testLayout)
				}
				_, err := set.Add(id)
				return set, err
			})
		}()
	}
	wait.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != writers {
		t.Errorf("Len() = %d after %d concurrent updates, want %d", loaded.Len(), writers, writers)
	}
}
