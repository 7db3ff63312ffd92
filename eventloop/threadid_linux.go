//go:build linux

package eventloop

import (
	"golang.org/x/sys/unix"
)

// currentThreadID returns the kernel task ID of the calling OS thread.
func currentThreadID() uint64 {
	return uint64(unix.Gettid())
}
