// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glarea/gl"
)

// Texture is a GPU-resident 2D texture, possibly multisampled.
type Texture struct {
	dev     *Device
	id      uint32
	target  uint32
	format  gputypes.TextureFormat
	width   int
	height  int
	samples int
}

// ID returns the GL texture name.
func (t *Texture) ID() uint32 { return t.id }

// Target returns the GL texture target (Texture2D or Texture2DMultisample).
func (t *Texture) Target() uint32 { return t.target }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the texture format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Samples returns the sample count (1 for single-sample textures).
func (t *Texture) Samples() int { return t.samples }

// Release schedules deletion of the texture for the next device Cleanup.
func (t *Texture) Release() {
	id := t.id
	if id == 0 {
		return
	}
	t.id = 0
	t.dev.queueRelease(func(api gl.API) {
		api.DeleteTextures(1, &id)
	})
}

// glFormat maps a gputypes format onto GL internal format / pixel format /
// pixel type. Plain (non-sRGB) RGBA8 is used for color on purpose: sRGB
// internal formats misbehave with GLArea-style compositors on some Linux
// drivers, so gamma correction happens in the postprocess shader instead.
func glFormat(format gputypes.TextureFormat) (internal int32, pixel uint32, xtype uint32, err error) {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		return gl.RGBA8, gl.RGBA, gl.UnsignedByte, nil
	case gputypes.TextureFormatDepth24PlusStencil8:
		return gl.Depth24Stencil8, gl.DepthStencil, gl.UnsignedInt24_8, nil
	default:
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// CreateTexture allocates a 2D texture per the descriptor. Size and Format
// are required; SampleCount selects between single-sample and multisampled
// storage (0 is treated as 1).
func (f *Factory) CreateTexture(desc *gputypes.TextureDescriptor) (*Texture, error) {
	w := int(desc.Size.Width)
	h := int(desc.Size.Height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	internal, pixel, xtype, err := glFormat(desc.Format)
	if err != nil {
		return nil, err
	}
	samples := int(desc.SampleCount)
	if samples < 1 {
		samples = 1
	}

	api := f.dev.api
	t := &Texture{
		dev:     f.dev,
		format:  desc.Format,
		width:   w,
		height:  h,
		samples: samples,
	}
	api.GenTextures(1, &t.id)
	if samples > 1 {
		t.target = gl.Texture2DMultisample
		api.BindTexture(t.target, t.id)
		api.TexImage2DMultisample(t.target, int32(samples), uint32(internal), int32(w), int32(h), true)
	} else {
		t.target = gl.Texture2D
		api.BindTexture(t.target, t.id)
		api.TexImage2D(t.target, 0, internal, int32(w), int32(h), 0, pixel, xtype, nil)
		api.TexParameteri(t.target, gl.TextureMinFilter, gl.Nearest)
		api.TexParameteri(t.target, gl.TextureMagFilter, gl.Nearest)
	}
	api.BindTexture(t.target, 0)
	return t, nil
}

// ShaderResourceView exposes a texture for sampling in a shader.
type ShaderResourceView struct {
	tex *Texture
}

// Texture returns the viewed texture.
func (v *ShaderResourceView) Texture() *Texture { return v.tex }

// Width returns the viewed texture's width in pixels.
func (v *ShaderResourceView) Width() int { return v.tex.width }

// Height returns the viewed texture's height in pixels.
func (v *ShaderResourceView) Height() int { return v.tex.height }

// ViewAsShaderResource creates a shader-readable view of the texture.
func (f *Factory) ViewAsShaderResource(t *Texture) (*ShaderResourceView, error) {
	if t == nil || t.id == 0 {
		return nil, fmt.Errorf("%w: released texture", ErrInvalidSize)
	}
	return &ShaderResourceView{tex: t}, nil
}

// RenderTargetView makes a texture drawable as a color attachment. Each view
// owns a framebuffer object with the texture attached at color attachment 0;
// binding the view binds that framebuffer.
type RenderTargetView struct {
	dev *Device
	tex *Texture
	fbo uint32
}

// Texture returns the viewed texture.
func (v *RenderTargetView) Texture() *Texture { return v.tex }

// Width returns the viewed texture's width in pixels.
func (v *RenderTargetView) Width() int { return v.tex.width }

// Height returns the viewed texture's height in pixels.
func (v *RenderTargetView) Height() int { return v.tex.height }

// FramebufferID returns the GL framebuffer name backing the view.
func (v *RenderTargetView) FramebufferID() uint32 { return v.fbo }

// Release schedules deletion of the view's framebuffer for the next Cleanup.
// The viewed texture is released separately.
func (v *RenderTargetView) Release() {
	fbo := v.fbo
	if fbo == 0 {
		return
	}
	v.fbo = 0
	v.dev.queueRelease(func(api gl.API) {
		api.DeleteFramebuffers(1, &fbo)
	})
}

// ViewAsRenderTarget creates a render-target view of the texture, backed by
// a framebuffer with the texture as color attachment 0.
func (f *Factory) ViewAsRenderTarget(t *Texture) (*RenderTargetView, error) {
	if t == nil || t.id == 0 {
		return nil, fmt.Errorf("%w: released texture", ErrInvalidSize)
	}
	api := f.dev.api
	v := &RenderTargetView{dev: f.dev, tex: t}
	api.GenFramebuffers(1, &v.fbo)
	api.BindFramebuffer(gl.Framebuffer, v.fbo)
	api.FramebufferTexture2D(gl.Framebuffer, gl.ColorAttachment0, t.target, t.id, 0)
	status := api.CheckFramebufferStatus(gl.Framebuffer)
	api.BindFramebuffer(gl.Framebuffer, 0)
	if status != gl.FramebufferComplete {
		api.DeleteFramebuffers(1, &v.fbo)
		return nil, fmt.Errorf("%w: status 0x%X", ErrFramebufferIncomplete, status)
	}
	return v, nil
}

// DepthStencilView exposes a depth/stencil texture for attachment alongside
// a render-target view. The encoder attaches it to the color view's
// framebuffer when a command uses both.
type DepthStencilView struct {
	tex *Texture
}

// Texture returns the viewed texture.
func (v *DepthStencilView) Texture() *Texture { return v.tex }

// Width returns the viewed texture's width in pixels.
func (v *DepthStencilView) Width() int { return v.tex.width }

// Height returns the viewed texture's height in pixels.
func (v *DepthStencilView) Height() int { return v.tex.height }

// ViewAsDepthStencil creates a depth/stencil view of the texture.
func (f *Factory) ViewAsDepthStencil(t *Texture) (*DepthStencilView, error) {
	if t == nil || t.id == 0 {
		return nil, fmt.Errorf("%w: released texture", ErrInvalidSize)
	}
	return &DepthStencilView{tex: t}, nil
}
