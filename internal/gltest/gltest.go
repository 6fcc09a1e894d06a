// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gltest provides a recording fake of the gl.API interface for
// tests that need a frame pipeline without a live GL context.
//
// The fake tracks name allocation, framebuffer attachments and a uniform
// color per texture and renderbuffer. Clears, draws and blits move that
// color around: a clear paints the draw framebuffer's color attachment, a
// draw copies the color of the texture bound on unit 0 into the draw
// framebuffer (the fullscreen postprocess pass reduces to exactly that),
// and a blit copies from the read attachment to the draw attachment. Tests
// can then assert which color ended up on the widget's renderbuffer.
package gltest

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/glarea/gl"
)

// Color is an RGBA value carried through the fake's simulation.
type Color [4]float32

type fakeTexture struct {
	target  uint32
	width   int32
	height  int32
	samples int32
	color   Color
}

type fakeFBO struct {
	colorTexture      uint32
	colorRenderbuffer uint32
}

// API is a fake gl.API. The zero value is not usable; call New.
type API struct {
	// Calls records every entry point invocation in order, formatted with
	// the arguments that matter for sequencing assertions.
	Calls []string

	// ExternalFramebuffer and ExternalRenderbuffer are what the binding
	// snapshot queries report, standing in for the widget's GL state.
	ExternalFramebuffer  uint32
	ExternalRenderbuffer uint32

	// CompileFail and LinkFail force shader compilation or program linking
	// to report failure with the given info log.
	CompileFail string
	LinkFail    string

	// StatusOverride, when nonzero, is what CheckFramebufferStatus reports
	// instead of completeness.
	StatusOverride uint32

	// FlushCount counts Flush calls.
	FlushCount int

	nextName      uint32
	textures      map[uint32]*fakeTexture
	framebuffers  map[uint32]*fakeFBO
	renderbuffers map[uint32]Color
	liveSamplers  map[uint32]bool
	liveBuffers   map[uint32]bool
	liveVAOs      map[uint32]bool
	livePrograms  map[uint32]bool
	liveShaders   map[uint32]bool

	readFBO     uint32
	drawFBO     uint32
	activeUnit  uint32
	unitTexture map[uint32]uint32
	boundVAO    uint32
	usedProgram uint32
	clearColor  Color
}

var _ gl.API = (*API)(nil)

// New returns a fake whose snapshot queries report the given widget
// framebuffer and renderbuffer names. Both names are pre-registered: the
// framebuffer with no color attachment, the renderbuffer holding black.
func New(externalFBO, externalRB uint32) *API {
	a := &API{
		ExternalFramebuffer:  externalFBO,
		ExternalRenderbuffer: externalRB,
		nextName:             100,
		textures:               map[uint32]*fakeTexture{},
		framebuffers:           map[uint32]*fakeFBO{externalFBO: {}},
		renderbuffers:          map[uint32]Color{externalRB: {}},
		liveSamplers:           map[uint32]bool{},
		liveBuffers:            map[uint32]bool{},
		liveVAOs:               map[uint32]bool{},
		livePrograms:           map[uint32]bool{},
		liveShaders:            map[uint32]bool{},
		unitTexture:            map[uint32]uint32{},
	}
	a.drawFBO = externalFBO
	return a
}

// BindWidgetFramebuffer rebinds the widget's framebuffer as the draw target,
// the way the toolkit does before emitting each render signal. Call it before
// driving a frame; resource creation may have left another binding behind.
func (a *API) BindWidgetFramebuffer() {
	a.readFBO = a.ExternalFramebuffer
	a.drawFBO = a.ExternalFramebuffer
}

func (a *API) call(format string, args ...any) {
	a.Calls = append(a.Calls, fmt.Sprintf(format, args...))
}

func (a *API) gen() uint32 {
	a.nextName++
	return a.nextName
}

// CallIndex returns the index of the first recorded call equal to s, or -1.
func (a *API) CallIndex(s string) int {
	for i, c := range a.Calls {
		if c == s {
			return i
		}
	}
	return -1
}

// RenderbufferColor returns the simulated color of a renderbuffer.
func (a *API) RenderbufferColor(name uint32) Color {
	return a.renderbuffers[name]
}

// TextureColor returns the simulated color of a texture.
func (a *API) TextureColor(name uint32) Color {
	if t := a.textures[name]; t != nil {
		return t.color
	}
	return Color{}
}

// LiveTextures returns the number of textures generated and not yet deleted.
func (a *API) LiveTextures() int { return len(a.textures) }

// LiveFramebuffers counts framebuffers excluding the widget's own.
func (a *API) LiveFramebuffers() int { return len(a.framebuffers) - 1 }

// LiveSamplers returns the number of samplers generated and not yet deleted.
func (a *API) LiveSamplers() int { return len(a.liveSamplers) }

// LiveBuffers returns the number of buffers generated and not yet deleted.
func (a *API) LiveBuffers() int { return len(a.liveBuffers) }

// LivePrograms returns the number of programs generated and not yet deleted.
func (a *API) LivePrograms() int { return len(a.livePrograms) }

// readColor resolves the color visible through a framebuffer's color
// attachment.
func (a *API) readColor(fbo uint32) Color {
	f := a.framebuffers[fbo]
	if f == nil {
		return Color{}
	}
	if f.colorTexture != 0 {
		return a.TextureColor(f.colorTexture)
	}
	return a.renderbuffers[f.colorRenderbuffer]
}

// writeColor paints a framebuffer's color attachment.
func (a *API) writeColor(fbo uint32, c Color) {
	f := a.framebuffers[fbo]
	if f == nil {
		return
	}
	if f.colorTexture != 0 {
		if t := a.textures[f.colorTexture]; t != nil {
			t.color = c
		}
		return
	}
	if _, ok := a.renderbuffers[f.colorRenderbuffer]; ok {
		a.renderbuffers[f.colorRenderbuffer] = c
	}
}

// State queries.

func (a *API) GetIntegerv(pname uint32, data *int32) {
	a.call("GetIntegerv(0x%X)", pname)
	switch pname {
	case gl.DrawFramebufferBinding:
		// Reports whatever is currently bound. The widget's framebuffer is
		// the initial binding, as it would be inside a render signal.
		*data = int32(a.drawFBO)
	case gl.RenderbufferBinding:
		*data = int32(a.ExternalRenderbuffer)
	default:
		*data = 0
	}
}

func (a *API) GetString(name uint32) string {
	a.call("GetString(0x%X)", name)
	return "gltest"
}

// Framebuffer handshake.

func (a *API) BindFramebuffer(target uint32, framebuffer uint32) {
	a.call("BindFramebuffer(0x%X, %d)", target, framebuffer)
	switch target {
	case gl.ReadFramebuffer:
		a.readFBO = framebuffer
	case gl.DrawFramebuffer:
		a.drawFBO = framebuffer
	case gl.Framebuffer:
		a.readFBO = framebuffer
		a.drawFBO = framebuffer
	}
}

func (a *API) NamedFramebufferRenderbuffer(framebuffer, attachment, renderbuffertarget, renderbuffer uint32) {
	a.call("NamedFramebufferRenderbuffer(%d, 0x%X, %d)", framebuffer, attachment, renderbuffer)
	f := a.framebuffers[framebuffer]
	if f == nil {
		f = &fakeFBO{}
		a.framebuffers[framebuffer] = f
	}
	if attachment == gl.ColorAttachment0 {
		f.colorRenderbuffer = renderbuffer
		f.colorTexture = 0
	}
}

func (a *API) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask uint32, filter uint32) {
	a.call("BlitFramebuffer(%d, %d)", a.readFBO, a.drawFBO)
	if mask&gl.ColorBufferBit != 0 {
		a.writeColor(a.drawFBO, a.readColor(a.readFBO))
	}
}

func (a *API) Flush() {
	a.call("Flush()")
	a.FlushCount++
}

// Framebuffer objects.

func (a *API) GenFramebuffers(n int32, framebuffers *uint32) {
	name := a.gen()
	a.framebuffers[name] = &fakeFBO{}
	*framebuffers = name
	a.call("GenFramebuffers(%d)", name)
}

func (a *API) DeleteFramebuffers(n int32, framebuffers *uint32) {
	a.call("DeleteFramebuffers(%d)", *framebuffers)
	delete(a.framebuffers, *framebuffers)
}

func (a *API) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	a.call("FramebufferTexture2D(0x%X, %d)", attachment, texture)
	fbo := a.drawFBO
	if target == gl.ReadFramebuffer {
		fbo = a.readFBO
	}
	f := a.framebuffers[fbo]
	if f != nil && attachment == gl.ColorAttachment0 {
		f.colorTexture = texture
		f.colorRenderbuffer = 0
	}
}

func (a *API) CheckFramebufferStatus(target uint32) uint32 {
	fbo := a.drawFBO
	if target == gl.ReadFramebuffer {
		fbo = a.readFBO
	}
	a.call("CheckFramebufferStatus(%d)", fbo)
	if a.StatusOverride != 0 {
		return a.StatusOverride
	}
	return gl.FramebufferComplete
}

// Textures.

func (a *API) GenTextures(n int32, textures *uint32) {
	name := a.gen()
	a.textures[name] = &fakeTexture{}
	*textures = name
	a.call("GenTextures(%d)", name)
}

func (a *API) DeleteTextures(n int32, textures *uint32) {
	a.call("DeleteTextures(%d)", *textures)
	delete(a.textures, *textures)
}

func (a *API) BindTexture(target uint32, texture uint32) {
	a.call("BindTexture(0x%X, %d)", target, texture)
	a.unitTexture[a.activeUnit] = texture
	if t := a.textures[texture]; t != nil {
		t.target = target
	}
}

func (a *API) ActiveTexture(texture uint32) {
	a.call("ActiveTexture(0x%X)", texture)
	a.activeUnit = texture - gl.Texture0
}

func (a *API) TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	a.call("TexImage2D(%dx%d)", width, height)
	if t := a.textures[a.unitTexture[a.activeUnit]]; t != nil {
		t.width, t.height, t.samples = width, height, 1
	}
}

func (a *API) TexImage2DMultisample(target uint32, samples int32, internalformat uint32, width, height int32, fixedsamplelocations bool) {
	a.call("TexImage2DMultisample(%dx%d, %d)", width, height, samples)
	if t := a.textures[a.unitTexture[a.activeUnit]]; t != nil {
		t.width, t.height, t.samples = width, height, samples
	}
}

func (a *API) TexParameteri(target, pname uint32, param int32) {
	a.call("TexParameteri(0x%X)", pname)
}

// Samplers.

func (a *API) GenSamplers(n int32, samplers *uint32) {
	name := a.gen()
	a.liveSamplers[name] = true
	*samplers = name
	a.call("GenSamplers(%d)", name)
}

func (a *API) DeleteSamplers(n int32, samplers *uint32) {
	a.call("DeleteSamplers(%d)", *samplers)
	delete(a.liveSamplers, *samplers)
}

func (a *API) BindSampler(unit uint32, sampler uint32) {
	a.call("BindSampler(%d, %d)", unit, sampler)
}

func (a *API) SamplerParameteri(sampler uint32, pname uint32, param int32) {
	a.call("SamplerParameteri(0x%X)", pname)
}

// Buffers and vertex state.

func (a *API) GenBuffers(n int32, buffers *uint32) {
	name := a.gen()
	a.liveBuffers[name] = true
	*buffers = name
	a.call("GenBuffers(%d)", name)
}

func (a *API) DeleteBuffers(n int32, buffers *uint32) {
	a.call("DeleteBuffers(%d)", *buffers)
	delete(a.liveBuffers, *buffers)
}

func (a *API) BindBuffer(target uint32, buffer uint32) {
	a.call("BindBuffer(0x%X, %d)", target, buffer)
}

func (a *API) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	a.call("BufferData(0x%X, %d)", target, size)
}

func (a *API) GenVertexArrays(n int32, arrays *uint32) {
	name := a.gen()
	a.liveVAOs[name] = true
	*arrays = name
	a.call("GenVertexArrays(%d)", name)
}

func (a *API) DeleteVertexArrays(n int32, arrays *uint32) {
	a.call("DeleteVertexArrays(%d)", *arrays)
	delete(a.liveVAOs, *arrays)
}

func (a *API) BindVertexArray(array uint32) {
	a.call("BindVertexArray(%d)", array)
	a.boundVAO = array
}

func (a *API) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	a.call("VertexAttribPointer(%d)", index)
}

func (a *API) EnableVertexAttribArray(index uint32) {
	a.call("EnableVertexAttribArray(%d)", index)
}

// Shaders and programs.

func (a *API) CreateShader(xtype uint32) uint32 {
	name := a.gen()
	a.liveShaders[name] = true
	a.call("CreateShader(0x%X)", xtype)
	return name
}

func (a *API) ShaderSource(shader uint32, source string) {
	a.call("ShaderSource(%d)", shader)
}

func (a *API) CompileShader(shader uint32) {
	a.call("CompileShader(%d)", shader)
}

func (a *API) GetShaderiv(shader uint32, pname uint32, params *int32) {
	if pname == gl.CompileStatus {
		if a.CompileFail != "" {
			*params = 0
		} else {
			*params = 1
		}
	}
}

func (a *API) GetShaderInfoLog(shader uint32) string {
	return a.CompileFail
}

func (a *API) DeleteShader(shader uint32) {
	a.call("DeleteShader(%d)", shader)
	delete(a.liveShaders, shader)
}

func (a *API) CreateProgram() uint32 {
	name := a.gen()
	a.livePrograms[name] = true
	a.call("CreateProgram() = %d", name)
	return name
}

func (a *API) AttachShader(program, shader uint32) {
	a.call("AttachShader(%d, %d)", program, shader)
}

func (a *API) BindAttribLocation(program uint32, index uint32, name string) {
	a.call("BindAttribLocation(%d, %d, %q)", program, index, name)
}

func (a *API) LinkProgram(program uint32) {
	a.call("LinkProgram(%d)", program)
}

func (a *API) GetProgramiv(program uint32, pname uint32, params *int32) {
	if pname == gl.LinkStatus {
		if a.LinkFail != "" {
			*params = 0
		} else {
			*params = 1
		}
	}
}

func (a *API) GetProgramInfoLog(program uint32) string {
	return a.LinkFail
}

func (a *API) UseProgram(program uint32) {
	a.call("UseProgram(%d)", program)
	a.usedProgram = program
}

func (a *API) DeleteProgram(program uint32) {
	a.call("DeleteProgram(%d)", program)
	delete(a.livePrograms, program)
}

func (a *API) GetUniformLocation(program uint32, name string) int32 {
	a.call("GetUniformLocation(%q)", name)
	return 0
}

func (a *API) Uniform1i(location int32, v0 int32) {
	a.call("Uniform1i(%d, %d)", location, v0)
}

// Rasterizer state and drawing.

func (a *API) Viewport(x, y, width, height int32) {
	a.call("Viewport(%d, %d, %d, %d)", x, y, width, height)
}

func (a *API) Enable(cap uint32) {
	a.call("Enable(0x%X)", cap)
}

func (a *API) Disable(cap uint32) {
	a.call("Disable(0x%X)", cap)
}

func (a *API) ClearColor(r, g, b, alpha float32) {
	a.call("ClearColor(%g, %g, %g, %g)", r, g, b, alpha)
	a.clearColor = Color{r, g, b, alpha}
}

func (a *API) ClearDepthf(d float32) {
	a.call("ClearDepthf(%g)", d)
}

func (a *API) ClearStencil(s int32) {
	a.call("ClearStencil(%d)", s)
}

func (a *API) Clear(mask uint32) {
	a.call("Clear(0x%X)", mask)
	if mask&gl.ColorBufferBit != 0 {
		a.writeColor(a.drawFBO, a.clearColor)
	}
}

// DrawElements models the fullscreen pass: the color of the texture bound
// on unit 0 lands on the draw framebuffer's color attachment.
func (a *API) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	a.call("DrawElements(%d)", count)
	if src, ok := a.textures[a.unitTexture[0]]; ok {
		a.writeColor(a.drawFBO, src.color)
	}
}
