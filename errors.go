// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glarea

import "errors"

var (
	// ErrNilCallback is returned by RenderFrame when no callback is given.
	ErrNilCallback = errors.New("glarea: nil render callback")

	// ErrInvalidViewport is returned when a widget size is not positive.
	ErrInvalidViewport = errors.New("glarea: viewport dimensions must be positive")
)
