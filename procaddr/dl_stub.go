// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !linux && !freebsd && !darwin

package procaddr

// Process resolves nothing on platforms without dlopen-style lookup.
// Supply a platform loader through Chain instead.
func Process() Loader {
	return LoaderFunc(func(string) (uintptr, bool) { return 0, false })
}

// Library resolves nothing on platforms without dlopen-style lookup.
func Library(...string) Loader {
	return LoaderFunc(func(string) (uintptr, bool) { return 0, false })
}
