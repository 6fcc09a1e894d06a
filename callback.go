// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glarea

import "github.com/gogpu/glarea/device"

// CallbackStatus tells the frame orchestrator how to continue after a
// callback returns.
type CallbackStatus int

const (
	// Continue proceeds with the remaining frame stages.
	Continue CallbackStatus = iota

	// Skip ends the callback's stage early. Returned from Render it skips
	// the postprocess pass and blits the primary color target directly;
	// returned from Postprocess it tells the orchestrator the callback
	// flushed (or chose not to flush) on its own.
	Skip
)

// String returns a human-readable name for the status.
func (s CallbackStatus) String() string {
	switch s {
	case Continue:
		return "continue"
	case Skip:
		return "skip"
	default:
		return "invalid"
	}
}

// RenderCallback renders the application's frame into the off-screen
// targets. Implementations record commands on the context's encoder and
// flush before returning; the targets passed in stay valid until the next
// resize.
type RenderCallback interface {
	Render(ctx *device.Context, vp Viewport, color *device.RenderTargetView, depth *device.DepthStencilView) (CallbackStatus, error)
}

// PostprocessCallback replaces the built-in postprocess pass. A callback
// implementing it receives the rendered frame as a shader resource and the
// single-sample target the blit-back will read from. Callbacks that only
// need the standard resolve-and-encode pass should not implement it.
type PostprocessCallback interface {
	Postprocess(ctx *device.Context, post *PostprocessResources, vp Viewport, src *device.ShaderResourceView, dst *device.RenderTargetView) (CallbackStatus, error)
}

// ResizeCallback is notified after the off-screen targets have been
// reallocated for a new widget size, so the callback can rebuild its own
// size-dependent resources (camera aspect ratio, dependent buffers).
type ResizeCallback interface {
	Resize(ctx *device.Context, vp Viewport) error
}
