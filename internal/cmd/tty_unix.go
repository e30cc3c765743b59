//go:build !windows

package cmd

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// minTermWidth is the narrowest terminal the interactive UI accepts.
const minTermWidth = 40

// openTTY opens the controlling terminal for the interactive UI.
func openTTY() (*os.File, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("no TTY available: %w", err)
	}
	return f, nil
}

// checkTerminal verifies TERM, the TTY and its width before the UI starts.
func checkTerminal() error {
	if err := checkTERM(); err != nil {
		return err
	}

	tty, err := openTTY()
	if err != nil {
		return err
	}
	defer tty.Close()

	ws, err := unix.IoctlGetWinsize(int(tty.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return fmt.Errorf("cannot get terminal size: %w", err)
	}
	return checkWidth(int(ws.Col))
}

// checkTERM verifies that the TERM environment variable is not "dumb".
func checkTERM() error {
	if os.Getenv("TERM") == "dumb" {
		return fmt.Errorf("TERM=dumb is not supported")
	}
	return nil
}

func checkWidth(cols int) error {
	if cols < minTermWidth {
		return fmt.Errorf("terminal too narrow (%d columns, need at least %d)", cols, minTermWidth)
	}
	return nil
}
