// Copyright (c) 2026, The rectalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xerrors exposes the standard library errors package's behavior
// by name, plus one domain-specific error type for caller misuse detected
// at Allocator/Guard drop time. It adds no behavior of its own beyond the
// LeakError type below.
package xerrors

import (
	"errors"
	"fmt"
)

// As finds the first error in err's tree that matches target, and if one is
// found, sets target to that error value and returns true. Otherwise, it
// returns false. See the standard library errors.As for the full contract.
func As(err error, target any) bool { return errors.As(err, target) }

// Is reports whether any error in err's tree matches target. See the
// standard library errors.Is for the full contract.
func Is(err, target error) bool { return errors.Is(err, target) }

// Join returns an error that wraps the given errors, discarding nil values.
func Join(errs ...error) error { return errors.Join(errs...) }

// New returns an error that formats as the given text.
func New(text string) error { return errors.New(text) }

// Unwrap returns the result of calling the Unwrap method on err, if any.
func Unwrap(err error) error { return errors.Unwrap(err) }

// LeakError reports that an Allocator was dropped (via Guard) while cells
// it had handed out were never returned (spec §4.5, §7).
type LeakError struct {
	CanvasArea    uint64
	RemainingArea uint64
}

func (e *LeakError) Error() string {
	return fmt.Sprintf("rectalloc: leak detected: %d of %d canvas cells still allocated at close",
		e.CanvasArea-e.RemainingArea, e.CanvasArea)
}
