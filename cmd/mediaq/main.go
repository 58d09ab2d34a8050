// Package main provides the mediaq CLI for evaluating CSS media queries and
// checking the @media rules of stylesheets.
package main

import (
	"errors"
	"fmt"
	"os"
)

// exitError ends the process with code. The command has already reported
// the outcome, so nothing more is printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
