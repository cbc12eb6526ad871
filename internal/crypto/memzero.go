package crypto

import "runtime"

// Wipe zeroes each buffer in bufs. This is best-effort: Go gives no
// guarantee that copies made by the runtime are cleared too.
//
//go:noinline
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		for i := range b {
			b[i] = 0
		}
	}
	runtime.KeepAlive(bufs)
}
