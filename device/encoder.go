// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glarea/gl"
)

// Encoder records GPU commands and replays them against the current GL
// context on Flush. Recording keeps the render callback free to issue
// commands in any order while binding churn happens in one place.
type Encoder struct {
	api      gl.API
	commands []func(gl.API)
}

func (e *Encoder) record(cmd func(gl.API)) {
	e.commands = append(e.commands, cmd)
}

// Clear records a clear of the render target's color attachment.
func (e *Encoder) Clear(rtv *RenderTargetView, color gputypes.Color) {
	fbo := rtv.fbo
	w, h := int32(rtv.tex.width), int32(rtv.tex.height)
	e.record(func(api gl.API) {
		api.BindFramebuffer(gl.DrawFramebuffer, fbo)
		api.Viewport(0, 0, w, h)
		api.ClearColor(float32(color.R), float32(color.G), float32(color.B), float32(color.A))
		api.Clear(gl.ColorBufferBit)
	})
}

// ClearDepthStencil records a clear of the depth/stencil attachment. The
// view is attached to the render target's framebuffer on first use.
func (e *Encoder) ClearDepthStencil(rtv *RenderTargetView, dsv *DepthStencilView, depth float32, stencil int32) {
	fbo := rtv.fbo
	tex := dsv.tex
	e.record(func(api gl.API) {
		api.BindFramebuffer(gl.DrawFramebuffer, fbo)
		api.FramebufferTexture2D(gl.DrawFramebuffer, gl.DepthStencilAttachment, tex.target, tex.id, 0)
		api.ClearDepthf(depth)
		api.ClearStencil(stencil)
		api.Clear(gl.DepthBufferBit | gl.StencilBufferBit)
	})
}

/// DrawCommand is one recorded draw: a pipeline, its buffers, and at most one
// sampled texture on unit 0.
type DrawCommand struct {
	Pipeline *PipelineState
	Target   *RenderTargetView
	Vertices *Buffer
	Indices  *Buffer

	// Texture and Sampler feed texture unit 0 when the pipeline declared a
	// sampler uniform. Both nil for pipelines that sample nothing.
	Texture *ShaderResourceView
	Sampler *Sampler

	// DepthTest enables depth testing for this draw. The replay sets the
	// capability either way, so one draw cannot inherit another's state.
	DepthTest bool
}

// Draw records an indexed draw into the command's render target.
func (e *Encoder) Draw(cmd DrawCommand) {
	p := cmd.Pipeline
	fbo := cmd.Target.fbo
	w, h := int32(cmd.Target.tex.width), int32(cmd.Target.tex.height)
	count := int32(cmd.Indices.count)
	vbo, ibo := cmd.Vertices.id, cmd.Indices.id
	var texID, texTarget, samplerID uint32
	if cmd.Texture != nil {
		texID, texTarget = cmd.Texture.tex.id, cmd.Texture.tex.target
	}
	if cmd.Sampler != nil {
		samplerID = cmd.Sampler.id
	}
	depth := cmd.DepthTest
	e.record(func(api gl.API) {
		api.BindFramebuffer(gl.DrawFramebuffer, fbo)
		api.Viewport(0, 0, w, h)
		if depth {
			api.Enable(gl.DepthTest)
		} else {
			api.Disable(gl.DepthTest)
		}
		api.UseProgram(p.program)
		api.BindVertexArray(p.vao)
		api.BindBuffer(gl.ArrayBuffer, vbo)
		for _, a := range p.attributes {
			api.VertexAttribPointer(a.Index, a.Size, gl.Float, false, a.Stride, a.Offset)
			api.EnableVertexAttribArray(a.Index)
		}
		api.BindBuffer(gl.ElementArrayBuffer, ibo)
		if texID != 0 {
			api.ActiveTexture(gl.Texture0)
			api.BindTexture(texTarget, texID)
			api.BindSampler(0, samplerID)
			if p.samplerLoc >= 0 {
				api.Uniform1i(p.samplerLoc, 0)
			}
		}
		api.DrawElements(gl.Triangles, count, gl.UnsignedShort, 0)
	})
}

// Flush replays all recorded commands in order and resets the encoder for
// the next frame.
func (e *Encoder) Flush() {
	for _, cmd := range e.commands {
		cmd(e.api)
	}
	e.commands = e.commands[:0]
}

// Reset drops all recorded commands without replaying them. An aborted
// frame calls this so its commands cannot leak into the next frame.
func (e *Encoder) Reset() {
	e.commands = e.commands[:0]
}
