// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build linux || freebsd || darwin

package procaddr

import (
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

// Process returns a loader that resolves symbols already present in the
// running process image, the way an application linked against libepoxy or
// libGL exports them. This is the first loader in the default chain.
func Process() Loader {
	return LoaderFunc(func(symbol string) (uintptr, bool) {
		defer func() {
			// purego.Dlsym panics on some platforms instead of returning an
			// error; a miss here must stay a miss, not a crash.
			_ = recover()
		}()
		addr, err := purego.Dlsym(purego.RTLD_DEFAULT, symbol)
		if err != nil || addr == 0 {
			return 0, false
		}
		return addr, true
	})
}

// Library returns a loader backed by the first of the named shared libraries
// that can be opened. Each name is probed as given and with the conventional
// platform suffixes appended, mirroring how dynamic-library lookup treats
// bare names. If no candidate opens the loader resolves nothing.
//
// The library handle is opened lazily on first lookup and kept for the
// process lifetime; GL function addresses are immutable once loaded.
func Library(names ...string) Loader {
	var (
		once   sync.Once
		handle uintptr
	)
	open := func() {
		for _, name := range names {
			for _, candidate := range libraryCandidates(name) {
				h, err := purego.Dlopen(candidate, purego.RTLD_NOW|purego.RTLD_GLOBAL)
				if err == nil && h != 0 {
					handle = h
					return
				}
			}
		}
	}
	return LoaderFunc(func(symbol string) (uintptr, bool) {
		once.Do(open)
		if handle == 0 {
			return 0, false
		}
		addr, err := purego.Dlsym(handle, symbol)
		if err != nil || addr == 0 {
			return 0, false
		}
		return addr, true
	})
}

// libraryCandidates expands a bare library name into platform spellings.
func libraryCandidates(name string) []string {
	if runtime.GOOS == "darwin" {
		return []string{name, name + ".dylib"}
	}
	return []string{name, name + ".so", name + ".so.0"}
}
