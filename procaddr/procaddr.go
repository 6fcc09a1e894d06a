// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package procaddr resolves OpenGL entry points to function addresses.
//
// A Loader knows one place to look for a symbol: the running process image,
// or a shared library probed by name. Loaders are combined with Chain, which
// tries each in order and returns the first hit. The resulting Func is what
// the gl package (and any GL binding that accepts a getProcAddress callback)
// consumes.
//
// Resolution failure is not fatal: a Func returns 0 for unknown symbols and
// the caller decides what to do with a null entry point. Calling through a
// null entry point at render time is the caller's risk, exactly as it is with
// every getProcAddress-style API.
package procaddr

import "log/slog"

// Loader resolves a single symbol name to a function address.
// The second return value reports whether the symbol was found.
type Loader interface {
	Lookup(symbol string) (uintptr, bool)
}

// Func is the getProcAddress form consumed by GL bindings: it returns the
// address for a symbol, or 0 if no loader could resolve it.
type Func func(symbol string) uintptr

// LoaderFunc adapts an ordinary function to the Loader interface.
type LoaderFunc func(symbol string) (uintptr, bool)

// Lookup calls f.
func (f LoaderFunc) Lookup(symbol string) (uintptr, bool) { return f(symbol) }

// Chain combines loaders into a single Func. Loaders are consulted strictly
// left to right and the first successful lookup wins; later loaders are not
// consulted for that symbol. If every loader misses, the Func returns 0.
func Chain(loaders ...Loader) Func {
	return func(symbol string) uintptr {
		for _, l := range loaders {
			if addr, ok := l.Lookup(symbol); ok {
				return addr
			}
		}
		return 0
	}
}

// Debug wraps a loader so that every resolution attempt and its outcome is
// logged at debug level. The production chain stays silent; wrap with Debug
// only when diagnosing missing-symbol problems.
func Debug(l Loader, logger *slog.Logger) Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return LoaderFunc(func(symbol string) (uintptr, bool) {
		addr, ok := l.Lookup(symbol)
		if ok {
			logger.Debug("resolved symbol", "symbol", symbol, "addr", addr)
		} else {
			logger.Debug("symbol not found", "symbol", symbol)
		}
		return addr, ok
	})
}

// epoxyLibraries is the ordered list of shared-library name variants probed
// for GL entry points when the process image does not already export them.
// libepoxy dispatches to the real GL driver, so resolving through it gives
// the same pointers the toolkit itself uses.
var epoxyLibraries = []string{"libepoxy-0", "libepoxy0", "libepoxy"}

// Default returns the canonical loader chain: symbols already linked into the
// current process image first, then the libepoxy name variants.
func Default() Func {
	return Chain(Process(), Library(epoxyLibraries...))
}

// DefaultDebug is Default with every resolution attempt logged to logger.
func DefaultDebug(logger *slog.Logger) Func {
	return Chain(
		Debug(Process(), logger),
		Debug(Library(epoxyLibraries...), logger),
	)
}
