// Package errors defines application errors and exit code mapping.
package errors

import sterrors "errors"

var (
	// ErrUsage indicates a command usage failure.
	ErrUsage = sterrors.New("usage error")
	// ErrOpen indicates an input could not be opened.
	ErrOpen = sterrors.New("open failed")
	// ErrRead indicates an input failed mid-stream.
	ErrRead = sterrors.New("read failed")
	// ErrWrite indicates standard output could not be written.
	ErrWrite = sterrors.New("write failed")
	// ErrChecksum indicates check mode found mismatched, unreadable or
	// unverifiable entries. The details are already on stdout and stderr.
	ErrChecksum = sterrors.New("checksum verification failed")
)

// Reported reports whether err has already been described to the user.
func Reported(err error) bool {
	return sterrors.Is(err, ErrChecksum)
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if sterrors.Is(err, ErrUsage) {
		return 2
	}

	return 1
}
