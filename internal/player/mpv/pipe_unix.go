//go:build !windows

package mpv

// isPipeReady is never used off Windows; sockets are polled by path
func isPipeReady(string) bool {
	return false
}
