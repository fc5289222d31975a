// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError reports a non-zero exit status that is an answer rather
// than a failure, such as "buid set has" finding no member. main exits
// with Code and prints nothing; the command has already written
// whatever output it intended.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this method to tell
// a deliberate status apart from an error to display.
func (e *ExitError) ExitCode() int {
	return e.Code
}
