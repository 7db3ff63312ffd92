//go:build !linux && !windows

package eventloop

// currentThreadID returns 0; this platform exposes no cheap thread ID.
func currentThreadID() uint64 {
	return 0
}
