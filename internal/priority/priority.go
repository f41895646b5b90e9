// Package priority reads and adjusts the scheduling niceness of the current process.
package priority

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Niceness bounds accepted by setpriority(2).
const (
	MinNice = -20
	MaxNice = 19
)

// ErrAdjust is returned when the niceness cannot be read or changed.
var ErrAdjust = errors.New("adjust scheduling priority")

// Adjuster changes the niceness of the running process.
type Adjuster interface {
	// Nice adds inc to the niceness, clamped to [MinNice, MaxNice], and returns
	// the resulting niceness. Nice(0) only reports the current value.
	Nice(inc int) (int, error)
}

// Process adjusts the niceness of the calling process.
type Process struct{}

// Nice implements Adjuster.
func (Process) Nice(inc int) (int, error) {
	current, err := getNice()
	if err != nil {
		return 0, err
	}
	if inc == 0 {
		return current, nil
	}

	target := clamp(current + inc)
	if err := setNice(target); err != nil {
		return 0, fmt.Errorf("%w: setpriority(%d): %w", ErrAdjust, target, err)
	}
	return getNice()
}

func getNice() (int, error) {
	prio, err := unix.Getpriority(unix.PRIO_PROCESS, os.Getpid())
	if err != nil {
		return 0, fmt.Errorf("%w: getpriority: %w", ErrAdjust, err)
	}
	return kernelToNice(prio), nil
}

func clamp(nice int) int {
	return min(max(nice, MinNice), MaxNice)
}
