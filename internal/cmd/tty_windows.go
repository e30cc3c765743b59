//go:build windows

package cmd

import (
	"errors"
	"os"
)

var errNoTTY = errors.New("the interactive UI needs a Unix terminal; use 'movie-explorer search' instead")

func openTTY() (*os.File, error) {
	return nil, errNoTTY
}

func checkTerminal() error {
	return errNoTTY
}
