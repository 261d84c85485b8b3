// Package host implements the interpreter's external collaborators
// (spec §1's "out of scope, only consumed interfaces are fixed"):
// stdout, the filesystem, raw-mode terminal input, screen clearing,
// and process exit. Grounded on golang.org/x/term, already part of
// the teacher's dependency set for this purpose.
package host

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// Host is everything a builtin needs from the outside world. The
// evaluator depends only on this interface, not on package os
// directly, so tests can substitute a fake.
type Host interface {
	Print(data []byte) error
	ReadFile(name string) ([]byte, error)
	GetChar() (byte, error)
	Clear() error
	Exit(code int)
}

// Terminal is the real Host, backed by the controlling terminal and
// the local filesystem.
type Terminal struct{}

// New returns the default, OS-backed Host.
func New() Host { return Terminal{} }

func (Terminal) Print(data []byte) error {
	_, err := os.Stdout.Write(data)
	return err
}

func (Terminal) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// GetChar reads one byte from stdin in raw, unechoed mode. Ctrl-C
// (byte value 3) restores the terminal before re-raising SIGINT on
// this process, matching the reference's re-raise-on-interrupt rule.
func (Terminal) GetChar() (byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		buf := make([]byte, 1)
		if _, err := os.Stdin.Read(buf); err != nil {
			return 0, err
		}
		return buf[0], nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, err
	}
	defer term.Restore(fd, state)

	buf := make([]byte, 1)
	if _, err := os.Stdin.Read(buf); err != nil {
		return 0, err
	}
	if buf[0] == 3 {
		term.Restore(fd, state)
		proc, _ := os.FindProcess(os.Getpid())
		signal.Reset(syscall.SIGINT)
		proc.Signal(syscall.SIGINT)
	}
	return buf[0], nil
}

// Clear shells out to the `clear` binary when stdout is a terminal. When
// it isn't (output redirected to a file or pipe), there is no screen to
// clear, so it's a no-op rather than emitting the command's escape
// sequence into the redirected stream.
func (Terminal) Clear() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil
	}
	cmd := exec.Command("clear")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func (Terminal) Exit(code int) {
	os.Exit(code)
}
