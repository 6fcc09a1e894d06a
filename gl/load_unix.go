// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build linux || freebsd || darwin

package gl

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/gogpu/glarea/procaddr"
)

// Functions is the live GL function table produced by Load.
//
// Entry points the lookup chain could not resolve are left nil; calling one
// at render time panics. That mirrors the getProcAddress contract: lookup
// failure is not fatal at load time, the risk is deferred to the first call.
// Missing reports which symbols were left unresolved so the caller can log
// or reject them up front.
type Functions struct {
	missing []string

	getIntegerv                  func(pname uint32, data *int32)
	getString                    func(name uint32) *byte
	bindFramebuffer              func(target, framebuffer uint32)
	namedFramebufferRenderbuffer func(framebuffer, attachment, renderbuffertarget, renderbuffer uint32)
	blitFramebuffer              func(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)
	flush                        func()
	genFramebuffers              func(n int32, framebuffers *uint32)
	deleteFramebuffers           func(n int32, framebuffers *uint32)
	framebufferTexture2D         func(target, attachment, textarget, texture uint32, level int32)
	checkFramebufferStatus       func(target uint32) uint32
	genTextures                  func(n int32, textures *uint32)
	deleteTextures               func(n int32, textures *uint32)
	bindTexture                  func(target, texture uint32)
	activeTexture                func(texture uint32)
	texImage2D                   func(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer)
	texImage2DMultisample        func(target uint32, samples int32, internalformat uint32, width, height int32, fixedsamplelocations bool)
	texParameteri                func(target, pname uint32, param int32)
	genSamplers                  func(n int32, samplers *uint32)
	deleteSamplers               func(n int32, samplers *uint32)
	bindSampler                  func(unit, sampler uint32)
	samplerParameteri            func(sampler uint32, pname uint32, param int32)
	genBuffers                   func(n int32, buffers *uint32)
	deleteBuffers                func(n int32, buffers *uint32)
	bindBuffer                   func(target, buffer uint32)
	bufferData                   func(target uint32, size int, data unsafe.Pointer, usage uint32)
	genVertexArrays              func(n int32, arrays *uint32)
	deleteVertexArrays           func(n int32, arrays *uint32)
	bindVertexArray              func(array uint32)
	vertexAttribPointer          func(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	enableVertexAttribArray      func(index uint32)
	createShader                 func(xtype uint32) uint32
	shaderSource                 func(shader uint32, count int32, sources **byte, lengths *int32)
	compileShader                func(shader uint32)
	getShaderiv                  func(shader uint32, pname uint32, params *int32)
	getShaderInfoLog             func(shader uint32, bufSize int32, length *int32, infoLog *byte)
	deleteShader                 func(shader uint32)
	createProgram                func() uint32
	attachShader                 func(program, shader uint32)
	bindAttribLocation           func(program uint32, index uint32, name string)
	linkProgram                  func(program uint32)
	getProgramiv                 func(program uint32, pname uint32, params *int32)
	getProgramInfoLog            func(program uint32, bufSize int32, length *int32, infoLog *byte)
	useProgram                   func(program uint32)
	deleteProgram                func(program uint32)
	getUniformLocation           func(program uint32, name string) int32
	uniform1i                    func(location, v0 int32)
	viewport                     func(x, y, width, height int32)
	enable                       func(cap uint32)
	disable                      func(cap uint32)
	clearColor                   func(r, g, b, a float32)
	clearDepthf                  func(d float32)
	clearDepth                   func(d float64)
	clearStencil                 func(s int32)
	clear                        func(mask uint32)
	drawElements                 func(mode uint32, count int32, xtype uint32, offset uintptr)
}

// Load resolves the GL entry points this package needs through lookup and
// returns the resulting function table. Unresolved symbols are recorded, not
// fatal; inspect Missing on the returned *Functions to decide whether the
// table is usable for your workload.
func Load(lookup procaddr.Func) (API, error) {
	if lookup == nil {
		return nil, ErrNilLookup
	}
	f := &Functions{}
	register := func(fptr any, name string) {
		addr := lookup(name)
		if addr == 0 {
			f.missing = append(f.missing, name)
			return
		}
		purego.RegisterFunc(fptr, addr)
	}

	register(&f.getIntegerv, "glGetIntegerv")
	register(&f.getString, "glGetString")
	register(&f.bindFramebuffer, "glBindFramebuffer")
	register(&f.namedFramebufferRenderbuffer, "glNamedFramebufferRenderbuffer")
	register(&f.blitFramebuffer, "glBlitFramebuffer")
	register(&f.flush, "glFlush")
	register(&f.genFramebuffers, "glGenFramebuffers")
	register(&f.deleteFramebuffers, "glDeleteFramebuffers")
	register(&f.framebufferTexture2D, "glFramebufferTexture2D")
	register(&f.checkFramebufferStatus, "glCheckFramebufferStatus")
	register(&f.genTextures, "glGenTextures")
	register(&f.deleteTextures, "glDeleteTextures")
	register(&f.bindTexture, "glBindTexture")
	register(&f.activeTexture, "glActiveTexture")
	register(&f.texImage2D, "glTexImage2D")
	register(&f.texImage2DMultisample, "glTexImage2DMultisample")
	register(&f.texParameteri, "glTexParameteri")
	register(&f.genSamplers, "glGenSamplers")
	register(&f.deleteSamplers, "glDeleteSamplers")
	register(&f.bindSampler, "glBindSampler")
	register(&f.samplerParameteri, "glSamplerParameteri")
	register(&f.genBuffers, "glGenBuffers")
	register(&f.deleteBuffers, "glDeleteBuffers")
	register(&f.bindBuffer, "glBindBuffer")
	register(&f.bufferData, "glBufferData")
	register(&f.genVertexArrays, "glGenVertexArrays")
	register(&f.deleteVertexArrays, "glDeleteVertexArrays")
	register(&f.bindVertexArray, "glBindVertexArray")
	register(&f.vertexAttribPointer, "glVertexAttribPointer")
	register(&f.enableVertexAttribArray, "glEnableVertexAttribArray")
	register(&f.createShader, "glCreateShader")
	register(&f.shaderSource, "glShaderSource")
	register(&f.compileShader, "glCompileShader")
	register(&f.getShaderiv, "glGetShaderiv")
	register(&f.getShaderInfoLog, "glGetShaderInfoLog")
	register(&f.deleteShader, "glDeleteShader")
	register(&f.createProgram, "glCreateProgram")
	register(&f.attachShader, "glAttachShader")
	register(&f.bindAttribLocation, "glBindAttribLocation")
	register(&f.linkProgram, "glLinkProgram")
	register(&f.getProgramiv, "glGetProgramiv")
	register(&f.getProgramInfoLog, "glGetProgramInfoLog")
	register(&f.useProgram, "glUseProgram")
	register(&f.deleteProgram, "glDeleteProgram")
	register(&f.getUniformLocation, "glGetUniformLocation")
	register(&f.uniform1i, "glUniform1i")
	register(&f.viewport, "glViewport")
	register(&f.enable, "glEnable")
	register(&f.disable, "glDisable")
	register(&f.clearColor, "glClearColor")
	register(&f.clearDepthf, "glClearDepthf")
	register(&f.clearDepth, "glClearDepth")
	register(&f.clearStencil, "glClearStencil")
	register(&f.clear, "glClear")
	register(&f.drawElements, "glDrawElements")

	return f, nil
}

// Missing lists the symbols the lookup chain could not resolve, in
// registration order. Empty means the full table is live.
func (f *Functions) Missing() []string { return f.missing }

func (f *Functions) GetIntegerv(pname uint32, data *int32) { f.getIntegerv(pname, data) }

func (f *Functions) GetString(name uint32) string {
	if f.getString == nil {
		return ""
	}
	return gostring(f.getString(name))
}

func (f *Functions) BindFramebuffer(target, framebuffer uint32) {
	f.bindFramebuffer(target, framebuffer)
}

func (f *Functions) NamedFramebufferRenderbuffer(framebuffer, attachment, renderbuffertarget, renderbuffer uint32) {
	f.namedFramebufferRenderbuffer(framebuffer, attachment, renderbuffertarget, renderbuffer)
}

func (f *Functions) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	f.blitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (f *Functions) Flush() { f.flush() }

func (f *Functions) GenFramebuffers(n int32, framebuffers *uint32) {
	f.genFramebuffers(n, framebuffers)
}

func (f *Functions) DeleteFramebuffers(n int32, framebuffers *uint32) {
	f.deleteFramebuffers(n, framebuffers)
}

func (f *Functions) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	f.framebufferTexture2D(target, attachment, textarget, texture, level)
}

func (f *Functions) CheckFramebufferStatus(target uint32) uint32 {
	return f.checkFramebufferStatus(target)
}

func (f *Functions) GenTextures(n int32, textures *uint32)    { f.genTextures(n, textures) }
func (f *Functions) DeleteTextures(n int32, textures *uint32) { f.deleteTextures(n, textures) }
func (f *Functions) BindTexture(target, texture uint32)       { f.bindTexture(target, texture) }
func (f *Functions) ActiveTexture(texture uint32)             { f.activeTexture(texture) }

func (f *Functions) TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	f.texImage2D(target, level, internalformat, width, height, border, format, xtype, pixels)
}

func (f *Functions) TexImage2DMultisample(target uint32, samples int32, internalformat uint32, width, height int32, fixedsamplelocations bool) {
	f.texImage2DMultisample(target, samples, internalformat, width, height, fixedsamplelocations)
}

func (f *Functions) TexParameteri(target, pname uint32, param int32) {
	f.texParameteri(target, pname, param)
}

func (f *Functions) GenSamplers(n int32, samplers *uint32)    { f.genSamplers(n, samplers) }
func (f *Functions) DeleteSamplers(n int32, samplers *uint32) { f.deleteSamplers(n, samplers) }
func (f *Functions) BindSampler(unit, sampler uint32)         { f.bindSampler(unit, sampler) }

func (f *Functions) SamplerParameteri(sampler uint32, pname uint32, param int32) {
	f.samplerParameteri(sampler, pname, param)
}

func (f *Functions) GenBuffers(n int32, buffers *uint32)    { f.genBuffers(n, buffers) }
func (f *Functions) DeleteBuffers(n int32, buffers *uint32) { f.deleteBuffers(n, buffers) }
func (f *Functions) BindBuffer(target, buffer uint32)       { f.bindBuffer(target, buffer) }

func (f *Functions) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	f.bufferData(target, size, data, usage)
}

func (f *Functions) GenVertexArrays(n int32, arrays *uint32)    { f.genVertexArrays(n, arrays) }
func (f *Functions) DeleteVertexArrays(n int32, arrays *uint32) { f.deleteVertexArrays(n, arrays) }
func (f *Functions) BindVertexArray(array uint32)               { f.bindVertexArray(array) }

func (f *Functions) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	f.vertexAttribPointer(index, size, xtype, normalized, stride, offset)
}

func (f *Functions) EnableVertexAttribArray(index uint32) { f.enableVertexAttribArray(index) }

func (f *Functions) CreateShader(xtype uint32) uint32 { return f.createShader(xtype) }

func (f *Functions) ShaderSource(shader uint32, source string) {
	src := []byte(source)
	if len(src) == 0 {
		src = []byte{0}
	}
	ptr := &src[0]
	length := int32(len(source))
	f.shaderSource(shader, 1, &ptr, &length)
	runtime.KeepAlive(src)
}

func (f *Functions) CompileShader(shader uint32) { f.compileShader(shader) }

func (f *Functions) GetShaderiv(shader uint32, pname uint32, params *int32) {
	f.getShaderiv(shader, pname, params)
}

func (f *Functions) GetShaderInfoLog(shader uint32) string {
	var n int32
	f.getShaderiv(shader, InfoLogLength, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	var written int32
	f.getShaderInfoLog(shader, n, &written, &buf[0])
	return string(buf[:written])
}

func (f *Functions) DeleteShader(shader uint32)          { f.deleteShader(shader) }
func (f *Functions) CreateProgram() uint32               { return f.createProgram() }
func (f *Functions) AttachShader(program, shader uint32) { f.attachShader(program, shader) }
func (f *Functions) LinkProgram(program uint32)          { f.linkProgram(program) }

func (f *Functions) BindAttribLocation(program uint32, index uint32, name string) {
	f.bindAttribLocation(program, index, name)
}

func (f *Functions) GetProgramiv(program uint32, pname uint32, params *int32) {
	f.getProgramiv(program, pname, params)
}

func (f *Functions) GetProgramInfoLog(program uint32) string {
	var n int32
	f.getProgramiv(program, InfoLogLength, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	var written int32
	f.getProgramInfoLog(program, n, &written, &buf[0])
	return string(buf[:written])
}

func (f *Functions) UseProgram(program uint32)    { f.useProgram(program) }
func (f *Functions) DeleteProgram(program uint32) { f.deleteProgram(program) }

func (f *Functions) GetUniformLocation(program uint32, name string) int32 {
	return f.getUniformLocation(program, name)
}

func (f *Functions) Uniform1i(location, v0 int32) { f.uniform1i(location, v0) }

func (f *Functions) Viewport(x, y, width, height int32) { f.viewport(x, y, width, height) }
func (f *Functions) Enable(cap uint32)                  { f.enable(cap) }
func (f *Functions) Disable(cap uint32)                 { f.disable(cap) }

func (f *Functions) ClearColor(r, g, b, a float32) { f.clearColor(r, g, b, a) }

func (f *Functions) ClearDepthf(d float32) {
	// Desktop GL before 4.1 only exports the double form.
	if f.clearDepthf != nil {
		f.clearDepthf(d)
		return
	}
	f.clearDepth(float64(d))
}

func (f *Functions) ClearStencil(s int32) { f.clearStencil(s) }
func (f *Functions) Clear(mask uint32)    { f.clear(mask) }

func (f *Functions) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	f.drawElements(mode, count, xtype, offset)
}

// gostring copies a null-terminated C string.
func gostring(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var b []byte
	for p := ptr; *p != 0; p = (*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + 1)) {
		b = append(b, *p)
	}
	return string(b)
}

var _ API = (*Functions)(nil)
