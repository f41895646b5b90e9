package priority

import (
	"errors"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// The raw getpriority syscall on Linux returns 20-nice so the result is never negative.
func kernelToNice(prio int) int {
	return 20 - prio
}

// setNice applies nice to every thread of the process. On Linux PRIO_PROCESS
// addresses a single thread, and the Go runtime already runs several.
func setNice(nice int) error {
	tasks, err := os.ReadDir("/proc/self/task")
	if err != nil {
		return unix.Setpriority(unix.PRIO_PROCESS, 0, nice)
	}
	for _, task := range tasks {
		tid, err := strconv.Atoi(task.Name())
		if err != nil {
			continue
		}
		// Threads may exit between listing and adjusting.
		if err := unix.Setpriority(unix.PRIO_PROCESS, tid, nice); err != nil && !errors.Is(err, unix.ESRCH) {
			return err
		}
	}
	return nil
}
