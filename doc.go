// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glarea bridges a retained-mode GPU device abstraction and the
// OpenGL-backed drawing surface of a GUI toolkit widget, such as a GTK
// GLArea.
//
// Toolkits of that kind hand the application a GL context whose draw
// framebuffer is already bound to an internal, toolkit-owned target. A
// rendering stack built on its own device and command encoder will clobber
// those bindings. glarea resolves the conflict with an explicit handshake:
// it snapshots the widget's framebuffer and renderbuffer names before
// rendering, lets the application render into off-screen targets through a
// device/factory/encoder API, runs an optional postprocess pass (MSAA
// resolve and gamma encode), and finally blits the finished frame back onto
// the widget's framebuffer with the captured names re-attached.
//
// # Quick start
//
//	ctx, err := glarea.New(device.AAMSAA4x, 800, 600)
//	if err != nil {
//	    // no usable GL loader, or target allocation failed
//	}
//
//	// Inside the widget's render signal, with its GL context current:
//	err = ctx.RenderFrame(myCallback)
//
//	// Inside the widget's resize signal:
//	err = ctx.Resize(newWidth, newHeight)
//
// The application implements RenderCallback; PostprocessCallback and
// ResizeCallback are optional refinements picked up by type assertion.
//
// All operations must run on the thread owning the widget's GL context,
// with that context current. The package takes no locks in the frame path.
package glarea
