// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !linux && !freebsd && !darwin

package gl

import "github.com/gogpu/glarea/procaddr"

// Load reports ErrUnsupported: no dynamic GL loader exists for this platform.
// Construct with an explicit API implementation instead.
func Load(lookup procaddr.Func) (API, error) {
	if lookup == nil {
		return nil, ErrNilLookup
	}
	return nil, ErrUnsupported
}
