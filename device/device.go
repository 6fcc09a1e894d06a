// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"

	"github.com/gogpu/glarea/gl"
)

// AAMode selects the antialiasing mode for off-screen render targets.
type AAMode int

const (
	// AANone renders into single-sample targets.
	AANone AAMode = iota

	// AAMSAA4x renders into 4x multisampled targets; the postprocess stage
	// resolves the samples when blitting to a single-sample target.
	AAMSAA4x
)

// Samples returns the sample count for the mode.
func (m AAMode) Samples() int {
	if m == AAMSAA4x {
		return 4
	}
	return 1
}

// String returns a human-readable name for the mode.
func (m AAMode) String() string {
	switch m {
	case AANone:
		return "none"
	case AAMSAA4x:
		return "msaa4x"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Device owns the GL function table and the deferred-release queue.
//
// Resources released mid-frame (for example the previous render targets
// after a resize) are not deleted immediately: deletion is queued and runs
// in Cleanup, after the frame's commands have been flushed. This keeps a
// released-but-still-referenced handle valid for the remainder of the frame.
type Device struct {
	api   gl.API
	trash []func(gl.API)
}

// NewDevice wraps a resolved GL function table.
func NewDevice(api gl.API) *Device {
	return &Device{api: api}
}

// API returns the underlying GL function table.
func (d *Device) API() gl.API { return d.api }

// queueRelease schedules a deletion for the next Cleanup.
func (d *Device) queueRelease(fn func(gl.API)) {
	d.trash = append(d.trash, fn)
}

// Cleanup runs deferred resource deletions and resets the mutable pipeline
// bindings the encoder may have left behind. It runs once per frame,
// unconditionally, even when the frame's callback failed.
func (d *Device) Cleanup() {
	for _, fn := range d.trash {
		fn(d.api)
	}
	d.trash = d.trash[:0]
	d.api.UseProgram(0)
	d.api.BindVertexArray(0)
}

// Context bundles the device, factory and encoder handed to render
// callbacks, together with the antialiasing mode the off-screen targets
// were allocated with.
type Context struct {
	Device  *Device
	Factory *Factory
	Encoder *Encoder
	AA      AAMode
}

// NewContext bootstraps a device context over the given GL function table.
func NewContext(api gl.API, aa AAMode) *Context {
	dev := NewDevice(api)
	return &Context{
		Device:  dev,
		Factory: &Factory{dev: dev},
		Encoder: &Encoder{api: api},
		AA:      aa,
	}
}

// Flush submits the encoder's recorded commands to the GL context.
func (c *Context) Flush() {
	c.Encoder.Flush()
}
