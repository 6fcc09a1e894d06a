// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glarea

import "github.com/gogpu/glarea/device"

// Viewport describes the current rendering dimensions. Width and Height are
// the allocated off-screen target dimensions; TargetWidth and TargetHeight
// are the widget's client-area size. The two pairs differ only by the
// supersampling factor of the AA mode, which is currently 1 for every mode,
// so they coincide.
type Viewport struct {
	Width        int
	Height       int
	TargetWidth  int
	TargetHeight int
	AA           device.AAMode
}

// supersamplingFactor returns the off-screen scale for an AA mode. MSAA
// multiplies sample storage, not viewport dimensions, so every mode maps
// to 1. The hook exists so that a true supersampling mode can widen the
// off-screen targets without touching any call site.
func supersamplingFactor(aa device.AAMode) int {
	return 1
}

// newViewport derives off-screen dimensions from the widget size and AA
// mode.
func newViewport(aa device.AAMode, targetWidth, targetHeight int) Viewport {
	f := supersamplingFactor(aa)
	return Viewport{
		Width:        targetWidth * f,
		Height:       targetHeight * f,
		TargetWidth:  targetWidth,
		TargetHeight: targetHeight,
		AA:           aa,
	}
}

// AspectRatio returns width over height of the off-screen targets.
func (v Viewport) AspectRatio() float32 {
	return float32(v.Width) / float32(v.Height)
}
