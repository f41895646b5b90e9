//go:build unix && !linux

package priority

import "golang.org/x/sys/unix"

func kernelToNice(prio int) int {
	return prio
}

func setNice(nice int) error {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, nice)
}
