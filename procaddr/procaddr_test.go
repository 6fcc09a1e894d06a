// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package procaddr

import (
	"log/slog"
	"testing"
)

// fixed returns a loader that resolves exactly the given symbols and counts
// how often it was consulted.
func fixed(addrs map[string]uintptr, calls *int) Loader {
	return LoaderFunc(func(symbol string) (uintptr, bool) {
		if calls != nil {
			*calls++
		}
		addr, ok := addrs[symbol]
		return addr, ok
	})
}

func TestChainShortCircuit(t *testing.T) {
	var firstCalls, secondCalls int
	first := fixed(map[string]uintptr{"glFlush": 0x1000}, &firstCalls)
	second := fixed(map[string]uintptr{"glFlush": 0x2000}, &secondCalls)

	lookup := Chain(first, second)

	if got := lookup("glFlush"); got != 0x1000 {
		t.Errorf("lookup(glFlush) = %#x, want %#x", got, 0x1000)
	}
	if firstCalls != 1 {
		t.Errorf("first loader consulted %d times, want 1", firstCalls)
	}
	if secondCalls != 0 {
		t.Errorf("second loader consulted %d times, want 0 (short-circuit)", secondCalls)
	}
}

func TestChainFallsThrough(t *testing.T) {
	first := fixed(nil, nil)
	second := fixed(map[string]uintptr{"glBlitFramebuffer": 0xBEEF}, nil)

	lookup := Chain(first, second)

	if got := lookup("glBlitFramebuffer"); got != 0xBEEF {
		t.Errorf("lookup(glBlitFramebuffer) = %#x, want %#x", got, 0xBEEF)
	}
}

func TestChainMissReturnsZero(t *testing.T) {
	lookup := Chain(fixed(nil, nil), fixed(nil, nil))

	// Absent everywhere: must return 0, must not panic.
	if got := lookup("glNoSuchEntryPoint"); got != 0 {
		t.Errorf("lookup(absent) = %#x, want 0", got)
	}
}

func TestChainEmpty(t *testing.T) {
	lookup := Chain()
	if got := lookup("glFlush"); got != 0 {
		t.Errorf("empty chain returned %#x, want 0", got)
	}
}

func TestDebugPreservesResult(t *testing.T) {
	base := fixed(map[string]uintptr{"glGetIntegerv": 0x42}, nil)
	wrapped := Debug(base, slog.Default())

	addr, ok := wrapped.Lookup("glGetIntegerv")
	if !ok || addr != 0x42 {
		t.Errorf("Lookup = (%#x, %v), want (0x42, true)", addr, ok)
	}
	if _, ok := wrapped.Lookup("glMissing"); ok {
		t.Error("Lookup reported a hit for an absent symbol")
	}
}

func TestDebugNilLogger(t *testing.T) {
	wrapped := Debug(fixed(nil, nil), nil)
	if _, ok := wrapped.Lookup("glMissing"); ok {
		t.Error("Lookup reported a hit for an absent symbol")
	}
}
