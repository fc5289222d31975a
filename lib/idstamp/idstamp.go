// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package idstamp packs timestamps into identifier suffixes.
//
// A stamp is the number of ticks since the Unix epoch at the chosen
// [Precision], written as a big-endian unsigned integer that fills the
// whole suffix (1 to 8 bytes). Big-endian keeps identifiers whose
// prefix and content tie sorted by time, and keeps the stamp readable
// in hex dumps. Times before the epoch and tick counts that do not fit
// the suffix are rejected with [ErrOutOfRange] rather than wrapped.
package idstamp

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Precision is the tick size of a stamp.
type Precision uint8

const (
	// Milliseconds is the default: 6 bytes cover the years up to 10889.
	Milliseconds Precision = iota
	Seconds
	Microseconds
	Nanoseconds
)

// maxUnixSeconds is the largest Unix second time.Unix can represent
// without overflowing its internal year-1 based offset.
const maxUnixSeconds = math.MaxInt64 - 62135596800

// ErrOutOfRange is returned when a time cannot be represented in the
// suffix, or a suffix decodes to a time outside time.Time's range.
var ErrOutOfRange = errors.New("idstamp: time out of range")

// ticksPerSecond returns the number of ticks in one second.
func (p Precision) ticksPerSecond() uint64 {
	switch p {
	case Seconds:
		return 1
	case Microseconds:
		return 1_000_000
	case Nanoseconds:
		return 1_000_000_000
	default:
		return 1_000
	}
}

// Unit returns the duration of one tick.
func (p Precision) Unit() time.Duration {
	return time.Second / time.Duration(p.ticksPerSecond())
}

func (p Precision) String() string {
	switch p {
	case Seconds:
		return "s"
	case Milliseconds:
		return "ms"
	case Microseconds:
		return "us"
	case Nanoseconds:
		return "ns"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// ParsePrecision parses "s", "ms", "us" or "ns" (or the spelled-out
// unit names).
func ParsePrecision(name string) (Precision, error) {
	switch strings.ToLower(name) {
	case "s", "sec", "seconds":
		return Seconds, nil
	case "ms", "millis", "milliseconds":
		return Milliseconds, nil
	case "us", "µs", "micros", "microseconds":
		return Microseconds, nil
	case "ns", "nanos", "nanoseconds":
		return Nanoseconds, nil
	default:
		return 0, fmt.Errorf("unknown stamp precision %q (want s, ms, us or ns)", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Precision) MarshalText() ([]byte, error) {
	if p > Nanoseconds {
		return nil, fmt.Errorf("unknown stamp precision %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Precision) UnmarshalText(data []byte) error {
	parsed, err := ParsePrecision(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Put writes the stamp of t into dst, using all of dst.
func Put(dst []byte, t time.Time, precision Precision) error {
	if len(dst) == 0 || len(dst) > 8 {
		return fmt.Errorf("idstamp: suffix of %d bytes cannot hold a stamp (want 1 to 8)", len(dst))
	}
	ticks, err := toTicks(t, precision)
	if err != nil {
		return err
	}
	if len(dst) < 8 && ticks>>(8*len(dst)) != 0 {
		return fmt.Errorf("%w: %s needs more than %d bytes at %s precision",
			ErrOutOfRange, t.UTC().Format(time.RFC3339Nano), len(dst), precision)
	}
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = byte(ticks)
		ticks >>= 8
	}
	return nil
}

// Get decodes a stamp written by Put. The returned time is in UTC.
func Get(src []byte, precision Precision) (time.Time, error) {
	if len(src) == 0 || len(src) > 8 {
		return time.Time{}, fmt.Errorf("idstamp: suffix of %d bytes cannot hold a stamp (want 1 to 8)", len(src))
	}
	var ticks uint64
	for _, b := range src {
		ticks = ticks<<8 | uint64(b)
	}
	return fromTicks(ticks, precision)
}

func toTicks(t time.Time, precision Precision) (uint64, error) {
	seconds := t.Unix()
	if seconds < 0 {
		return 0, fmt.Errorf("%w: %s is before the Unix epoch", ErrOutOfRange, t.UTC().Format(time.RFC3339))
	}
	perSecond := precision.ticksPerSecond()
	sub := uint64(t.Nanosecond()) / (1_000_000_000 / perSecond)
	if uint64(seconds) > (math.MaxUint64-sub)/perSecond {
		return 0, fmt.Errorf("%w: %s overflows a 64-bit %s stamp", ErrOutOfRange, t.UTC().Format(time.RFC3339), precision)
	}
	return uint64(seconds)*perSecond + sub, nil
}

func fromTicks(ticks uint64, precision Precision) (time.Time, error) {
	perSecond := precision.ticksPerSecond()
	seconds := ticks / perSecond
	if seconds > maxUnixSeconds {
		return time.Time{}, fmt.Errorf("%w: %d ticks", ErrOutOfRange, ticks)
	}
	nanos := (ticks % perSecond) * (1_000_000_000 / perSecond)
	return time.Unix(int64(seconds), int64(nanos)).UTC(), nil
}
