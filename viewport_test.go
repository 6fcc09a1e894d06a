// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glarea

import (
	"strings"
	"testing"

	"github.com/gogpu/glarea/device"
)

func TestNewViewportDimensions(t *testing.T) {
	tests := []struct {
		name string
		aa   device.AAMode
		w, h int
	}{
		{"no aa", device.AANone, 800, 600},
		{"msaa does not scale dimensions", device.AAMSAA4x, 400, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := newViewport(tt.aa, tt.w, tt.h)
			if vp.Width != tt.w || vp.Height != tt.h {
				t.Errorf("off-screen dims = %dx%d, want %dx%d", vp.Width, vp.Height, tt.w, tt.h)
			}
			if vp.TargetWidth != tt.w || vp.TargetHeight != tt.h {
				t.Errorf("target dims = %dx%d, want %dx%d", vp.TargetWidth, vp.TargetHeight, tt.w, tt.h)
			}
			if vp.AA != tt.aa {
				t.Errorf("AA = %v, want %v", vp.AA, tt.aa)
			}
		})
	}
}

func TestViewportAspectRatio(t *testing.T) {
	vp := newViewport(device.AANone, 800, 600)
	if got, want := vp.AspectRatio(), float32(800)/float32(600); got != want {
		t.Errorf("AspectRatio() = %v, want %v", got, want)
	}
}

func TestPixelShaderSelection(t *testing.T) {
	tests := []struct {
		name     string
		aa       device.AAMode
		srgb     bool
		wantMS   bool
		wantSRGB bool
	}{
		{"single sample srgb", device.AANone, true, false, true},
		{"single sample linear", device.AANone, false, false, false},
		{"msaa srgb", device.AAMSAA4x, true, true, true},
		{"msaa linear", device.AAMSAA4x, false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := pixelShaderSource(tt.aa, tt.srgb)
			if got := strings.Contains(src, "sampler2DMS"); got != tt.wantMS {
				t.Errorf("multisample sampler present = %v, want %v", got, tt.wantMS)
			}
			if got := strings.Contains(src, "to_sRGB"); got != tt.wantSRGB {
				t.Errorf("sRGB encode present = %v, want %v", got, tt.wantSRGB)
			}
		})
	}
}
