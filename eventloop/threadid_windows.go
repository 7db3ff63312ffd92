//go:build windows

package eventloop

import (
	"golang.org/x/sys/windows"
)

// currentThreadID returns the ID of the calling OS thread.
func currentThreadID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
