// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gl exposes the subset of OpenGL entry points the bridge needs as a
// typed interface, resolved at runtime through a procaddr lookup chain.
//
// The interface exists for two reasons. First, the framebuffer handshake must
// issue raw GL calls below the device abstraction's object model, so those
// calls need a home that is not the device layer. Second, an interface makes
// the whole frame pipeline testable against a recording fake without a live
// GL context.
//
// All methods operate on whichever GL context is current on the calling
// thread; the host toolkit makes its context current before emitting the
// render signal.
package gl

import (
	"errors"
	"unsafe"
)

// Load-time errors.
var (
	// ErrNilLookup is returned by Load when no lookup function is supplied.
	ErrNilLookup = errors.New("gl: nil proc address lookup")

	// ErrUnsupported is returned by Load on platforms without a dynamic
	// OpenGL loader.
	ErrUnsupported = errors.New("gl: no OpenGL loader on this platform")
)

// GL enumerants used by this package. Values are the standard OpenGL ones.
const (
	Texture2D            = 0x0DE1
	Texture2DMultisample = 0x9100

	Framebuffer     = 0x8D40
	ReadFramebuffer = 0x8CA8
	DrawFramebuffer = 0x8CA9
	Renderbuffer    = 0x8D41

	// DrawFramebufferBinding and RenderbufferBinding are the GetIntegerv
	// queries the handshake snapshots before touching any binding.
	DrawFramebufferBinding = 0x8CA6
	RenderbufferBinding    = 0x8CA7

	ColorAttachment0       = 0x8CE0
	DepthStencilAttachment = 0x821A
	FramebufferComplete    = 0x8CD5

	ColorBufferBit   = 0x00004000
	DepthBufferBit   = 0x00000100
	StencilBufferBit = 0x00000400

	Nearest          = 0x2600
	Linear           = 0x2601
	ClampToEdge      = 0x812F
	TextureMinFilter = 0x2801
	TextureMagFilter = 0x2800
	TextureWrapS     = 0x2802
	TextureWrapT     = 0x2803

	RGBA             = 0x1908
	RGBA8            = 0x8058
	UnsignedByte     = 0x1401
	Depth24Stencil8  = 0x88F0
	DepthStencil     = 0x84F9
	UnsignedInt24_8  = 0x84FA
	Float            = 0x1406
	UnsignedShort    = 0x1403

	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	StaticDraw         = 0x88E4

	Triangles = 0x0004

	VertexShader   = 0x8B31
	FragmentShader = 0x8B30
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82
	InfoLogLength  = 0x8B84

	Texture0 = 0x84C0

	DepthTest = 0x0B71

	Vendor   = 0x1F00
	Renderer = 0x1F01
	Version  = 0x1F02
)

// API is the set of OpenGL entry points consumed by the bridge: the binding
// queries and blit used by the framebuffer handshake, plus the resource and
// draw calls backing the device layer.
//
// Implementations wrap a resolved GL function table (see Load) or, in tests,
// a CPU-side simulation.
type API interface {
	// State queries.
	GetIntegerv(pname uint32, data *int32)
	GetString(name uint32) string

	// Framebuffer handshake. NamedFramebufferRenderbuffer re-attaches a
	// renderbuffer to a framebuffer identified by name rather than by
	// binding, so the draw-framebuffer binding is left untouched.
	BindFramebuffer(target uint32, framebuffer uint32)
	NamedFramebufferRenderbuffer(framebuffer, attachment, renderbuffertarget, renderbuffer uint32)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask uint32, filter uint32)
	Flush()

	// Framebuffer objects.
	GenFramebuffers(n int32, framebuffers *uint32)
	DeleteFramebuffers(n int32, framebuffers *uint32)
	FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32)
	CheckFramebufferStatus(target uint32) uint32

	// Textures.
	GenTextures(n int32, textures *uint32)
	DeleteTextures(n int32, textures *uint32)
	BindTexture(target uint32, texture uint32)
	ActiveTexture(texture uint32)
	TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer)
	TexImage2DMultisample(target uint32, samples int32, internalformat uint32, width, height int32, fixedsamplelocations bool)
	TexParameteri(target, pname uint32, param int32)

	// Samplers.
	GenSamplers(n int32, samplers *uint32)
	DeleteSamplers(n int32, samplers *uint32)
	BindSampler(unit uint32, sampler uint32)
	SamplerParameteri(sampler uint32, pname uint32, param int32)

	// Buffers and vertex state.
	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target uint32, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	GenVertexArrays(n int32, arrays *uint32)
	DeleteVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)

	// Shaders and programs.
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	BindAttribLocation(program uint32, index uint32, name string)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v0 int32)

	// Rasterizer state and drawing.
	Viewport(x, y, width, height int32)
	Enable(cap uint32)
	Disable(cap uint32)
	ClearColor(r, g, b, a float32)
	ClearDepthf(d float32)
	ClearStencil(s int32)
	Clear(mask uint32)
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)
}
