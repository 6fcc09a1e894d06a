// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glarea

import (
	"log/slog"

	"github.com/gogpu/glarea/gl"
	"github.com/gogpu/glarea/procaddr"
)

// Option configures a Context during creation.
//
// Example:
//
//	// Default loader chain, sRGB encode on:
//	ctx, err := glarea.New(device.AANone, 800, 600)
//
//	// Injected proc resolver (e.g. the toolkit's own):
//	ctx, err := glarea.New(device.AANone, 800, 600, glarea.WithProcAddr(resolver))
type Option func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	procAddr procaddr.Func
	api      gl.API
	srgb     bool
	logger   *slog.Logger
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		srgb: true, // gamma encode in the postprocess shader
	}
}

// WithProcAddr sets the proc address resolver used to load the GL function
// table, replacing the default libepoxy chain. Use this when the host
// toolkit exposes its own resolver.
func WithProcAddr(f procaddr.Func) Option {
	return func(o *contextOptions) {
		o.procAddr = f
	}
}

// WithAPI injects a ready GL function table, bypassing loading entirely.
// Tests use this to run the frame pipeline against a fake.
func WithAPI(api gl.API) Option {
	return func(o *contextOptions) {
		o.api = api
	}
}

// WithSRGBEncode controls whether the built-in postprocess pass applies the
// linear-to-sRGB transfer curve. Default is true; disable it when the
// callback renders already-encoded colors.
func WithSRGBEncode(enabled bool) Option {
	return func(o *contextOptions) {
		o.srgb = enabled
	}
}

// WithLogger sets the package logger as a convenience for single-Context
// applications. Equivalent to calling SetLogger before New.
func WithLogger(l *slog.Logger) Option {
	return func(o *contextOptions) {
		o.logger = l
	}
}
