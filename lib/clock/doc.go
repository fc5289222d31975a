// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts the time source used to stamp identifier
// suffixes.
//
// Production code injects [Real]; tests inject [Fake] so minted
// identifiers carry predictable timestamps. Code that stamps
// identifiers should take a Clock rather than calling time.Now.
package clock
