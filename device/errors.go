// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import "errors"

var (
	// ErrInvalidSize is returned when a texture or target dimension is not
	// positive.
	ErrInvalidSize = errors.New("device: invalid size")

	// ErrUnsupportedFormat is returned for texture formats this device
	// cannot express in GL.
	ErrUnsupportedFormat = errors.New("device: unsupported texture format")

	// ErrFramebufferIncomplete is returned when a render-target view's
	// framebuffer does not pass the GL completeness check.
	ErrFramebufferIncomplete = errors.New("device: framebuffer incomplete")

	// ErrShaderCompile is returned when a shader stage fails to compile.
	ErrShaderCompile = errors.New("device: shader compilation failed")

	// ErrProgramLink is returned when a pipeline's program fails to link.
	ErrProgramLink = errors.New("device: program link failed")

	// ErrEmptyBuffer is returned when a buffer is created with no data.
	ErrEmptyBuffer = errors.New("device: empty buffer data")
)
