// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glarea

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glarea/device"
)

// RenderTargetSet bundles the off-screen targets a frame renders into:
// a color texture viewed both as a render target and as a shader resource
// (so the postprocess pass can sample it), and a matching depth/stencil
// texture.
//
// The set is owned by the Context and replaced wholesale on resize; the
// views stay valid for the lifetime of the set.
type RenderTargetSet struct {
	ColorTexture *device.Texture
	ColorSource  *device.ShaderResourceView
	ColorTarget  *device.RenderTargetView
	DepthTexture *device.Texture
	DepthTarget  *device.DepthStencilView
}

// Width returns the pixel width of the set's targets.
func (s *RenderTargetSet) Width() int { return s.ColorTexture.Width() }

// Height returns the pixel height of the set's targets.
func (s *RenderTargetSet) Height() int { return s.ColorTexture.Height() }

// Release schedules every resource in the set for deferred deletion. The
// depth view owns no GL object of its own; releasing its texture is enough.
func (s *RenderTargetSet) Release() {
	s.ColorTarget.Release()
	s.ColorTexture.Release()
	s.DepthTexture.Release()
}

// AllocateTargets creates a full render target set with the sample count of
// the given AA mode. On error nothing is retained; partially created
// resources are queued for the next device cleanup.
func AllocateTargets(f *device.Factory, aa device.AAMode, width, height int) (*RenderTargetSet, error) {
	colorTex, err := f.CreateTexture(&gputypes.TextureDescriptor{
		Label:         "glarea color target",
		Size:          gputypes.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   uint32(aa.Samples()),
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("glarea: color target: %w", err)
	}

	colorSrc, err := f.ViewAsShaderResource(colorTex)
	if err != nil {
		colorTex.Release()
		return nil, fmt.Errorf("glarea: color source view: %w", err)
	}
	colorTarget, err := f.ViewAsRenderTarget(colorTex)
	if err != nil {
		colorTex.Release()
		return nil, fmt.Errorf("glarea: color target view: %w", err)
	}

	depthTex, err := f.CreateTexture(&gputypes.TextureDescriptor{
		Label:         "glarea depth target",
		Size:          gputypes.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   uint32(aa.Samples()),
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth24PlusStencil8,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		colorTarget.Release()
		colorTex.Release()
		return nil, fmt.Errorf("glarea: depth target: %w", err)
	}
	depthTarget, err := f.ViewAsDepthStencil(depthTex)
	if err != nil {
		colorTarget.Release()
		colorTex.Release()
		depthTex.Release()
		return nil, fmt.Errorf("glarea: depth target view: %w", err)
	}

	return &RenderTargetSet{
		ColorTexture: colorTex,
		ColorSource:  colorSrc,
		ColorTarget:  colorTarget,
		DepthTexture: depthTex,
		DepthTarget:  depthTarget,
	}, nil
}

// allocatePostprocessTarget creates the single-sample target the blit-back
// reads from. It is always single-sample regardless of the AA mode: the
// final BlitFramebuffer cannot resolve samples and formats at once, so the
// postprocess pass resolves first.
func allocatePostprocessTarget(f *device.Factory, width, height int) (*device.Texture, *device.RenderTargetView, error) {
	tex, err := f.CreateTexture(&gputypes.TextureDescriptor{
		Label:         "glarea postprocess target",
		Size:          gputypes.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("glarea: postprocess target: %w", err)
	}
	rtv, err := f.ViewAsRenderTarget(tex)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("glarea: postprocess target view: %w", err)
	}
	return tex, rtv, nil
}
