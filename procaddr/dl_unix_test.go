// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build linux || freebsd || darwin

package procaddr

import "testing"

func TestLibraryCandidates(t *testing.T) {
	got := libraryCandidates("libepoxy")
	if len(got) < 2 {
		t.Fatalf("libraryCandidates returned %v, want the bare name plus suffixed variants", got)
	}
	if got[0] != "libepoxy" {
		t.Errorf("first candidate = %q, want bare name first", got[0])
	}
}

func TestLibraryMissingResolvesNothing(t *testing.T) {
	l := Library("libglarea-no-such-library")
	if _, ok := l.Lookup("glFlush"); ok {
		t.Error("Lookup reported a hit through a library that cannot be opened")
	}
}
