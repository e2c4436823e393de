package crypto

import (
	"runtime"

	"crowdfund/internal/domain"
)

// Wipe zeroes the provided buffer. This is best-effort and aims to
// reduce the chance of the compiler eliding the write.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}

// WipeKeys zeroes every key in keys.
func WipeKeys(keys []domain.PrivateKey) {
	for i := range keys {
		Wipe(keys[i][:])
	}
}
