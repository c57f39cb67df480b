package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess  = 0
	ExitRejected = 1 // the matrix failed validation
	ExitError    = 2 // configuration or runtime error
)

// RejectedError reports a matrix the engine refused to evaluate.
type RejectedError struct {
	Err error
}

func (e *RejectedError) Error() string { return "evaluation rejected: " + e.Err.Error() }

func (e *RejectedError) Unwrap() error { return e.Err }

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var rejected *RejectedError
		if errors.As(err, &rejected) {
			os.Exit(ExitRejected)
		}
		os.Exit(ExitError)
	}
}
