package main

import "errors"

// Process exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitInputRead  = 2
	exitMissingSOC = 3
	exitReference  = 4
	exitWrite      = 5
)

// exitError tags err with the process exit code for its failure stage.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withExit(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCode maps a command error to the process exit code. Untagged errors
// (flags, config) exit with exitFailure.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}
