// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glarea/gl"
)

// Factory creates device resources. All creation happens immediately against
// the current GL context; only deletion is deferred (see Device.Cleanup).
type Factory struct {
	dev *Device
}

// Device returns the owning device.
func (f *Factory) Device() *Device { return f.dev }

// SamplerDescriptor describes a texture sampler using gputypes filter and
// address vocabulary.
type SamplerDescriptor struct {
	Label        string
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
}

// Sampler is a GL sampler object.
type Sampler struct {
	dev *Device
	id  uint32
}

// ID returns the GL sampler name.
func (s *Sampler) ID() uint32 { return s.id }

// Release schedules deletion of the sampler for the next Cleanup.
func (s *Sampler) Release() {
	id := s.id
	if id == 0 {
		return
	}
	s.id = 0
	s.dev.queueRelease(func(api gl.API) {
		api.DeleteSamplers(1, &id)
	})
}

func glFilter(m gputypes.FilterMode) int32 {
	if m == gputypes.FilterModeLinear {
		return gl.Linear
	}
	return gl.Nearest
}

// Only clamp-to-edge is meaningful for fullscreen blit sources; other modes
// fall back to it rather than failing.
func glAddressMode(gputypes.AddressMode) int32 {
	return gl.ClampToEdge
}

// CreateSampler creates a sampler object per the descriptor.
func (f *Factory) CreateSampler(desc *SamplerDescriptor) (*Sampler, error) {
	api := f.dev.api
	s := &Sampler{dev: f.dev}
	api.GenSamplers(1, &s.id)
	api.SamplerParameteri(s.id, gl.TextureMinFilter, glFilter(desc.MinFilter))
	api.SamplerParameteri(s.id, gl.TextureMagFilter, glFilter(desc.MagFilter))
	api.SamplerParameteri(s.id, gl.TextureWrapS, glAddressMode(desc.AddressModeU))
	api.SamplerParameteri(s.id, gl.TextureWrapT, glAddressMode(desc.AddressModeV))
	return s, nil
}

// Buffer is an immutable GL buffer object.
type Buffer struct {
	dev    *Device
	id     uint32
	target uint32
	count  int
}

// ID returns the GL buffer name.
func (b *Buffer) ID() uint32 { return b.id }

// Count returns the number of elements the buffer was created with.
func (b *Buffer) Count() int { return b.count }

// Release schedules deletion of the buffer for the next Cleanup.
func (b *Buffer) Release() {
	id := b.id
	if id == 0 {
		return
	}
	b.id = 0
	b.dev.queueRelease(func(api gl.API) {
		api.DeleteBuffers(1, &id)
	})
}

// CreateVertexBuffer uploads vertex data into a static buffer.
func (f *Factory) CreateVertexBuffer(data []float32) (*Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyBuffer
	}
	api := f.dev.api
	b := &Buffer{dev: f.dev, target: gl.ArrayBuffer, count: len(data)}
	api.GenBuffers(1, &b.id)
	api.BindBuffer(b.target, b.id)
	api.BufferData(b.target, len(data)*4, unsafe.Pointer(&data[0]), gl.StaticDraw)
	api.BindBuffer(b.target, 0)
	return b, nil
}

// CreateIndexBuffer uploads 16-bit index data into a static buffer.
func (f *Factory) CreateIndexBuffer(data []uint16) (*Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyBuffer
	}
	api := f.dev.api
	b := &Buffer{dev: f.dev, target: gl.ElementArrayBuffer, count: len(data)}
	api.GenBuffers(1, &b.id)
	api.BindBuffer(b.target, b.id)
	api.BufferData(b.target, len(data)*2, unsafe.Pointer(&data[0]), gl.StaticDraw)
	api.BindBuffer(b.target, 0)
	return b, nil
}

// VertexAttribute describes one interleaved vertex attribute of a pipeline.
type VertexAttribute struct {
	// Name is the attribute variable name in the vertex shader.
	Name string

	// Index is the attribute location Name is bound to at link time.
	Index uint32

	// Size is the number of float components.
	Size int32

	// Offset is the byte offset within the interleaved vertex.
	Offset uintptr

	// Stride is the byte size of one interleaved vertex.
	Stride int32
}

// PipelineDescriptor describes a render pipeline: the two shader stages,
// the vertex layout, and the name of the sampler uniform (empty if the
// pixel shader samples nothing).
type PipelineDescriptor struct {
	Label          string
	VertexSource   []byte
	PixelSource    []byte
	Attributes     []VertexAttribute
	SamplerUniform string
}

// PipelineState is a compiled and linked render pipeline.
type PipelineState struct {
	dev        *Device
	program    uint32
	vao        uint32
	attributes []VertexAttribute
	samplerLoc int32
}

// ProgramID returns the GL program name.
func (p *PipelineState) ProgramID() uint32 { return p.program }

// Release schedules deletion of the program and vertex array for the next
// Cleanup.
func (p *PipelineState) Release() {
	program, vao := p.program, p.vao
	if program == 0 {
		return
	}
	p.program = 0
	p.vao = 0
	p.dev.queueRelease(func(api gl.API) {
		api.DeleteProgram(program)
		api.DeleteVertexArrays(1, &vao)
	})
}

// compileStage compiles one shader stage, surfacing the driver's info log
// on failure.
func compileStage(api gl.API, xtype uint32, source []byte) (uint32, error) {
	shader := api.CreateShader(xtype)
	api.ShaderSource(shader, string(source))
	api.CompileShader(shader)
	var status int32
	api.GetShaderiv(shader, gl.CompileStatus, &status)
	if status == 0 {
		log := api.GetShaderInfoLog(shader)
		api.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrShaderCompile, log)
	}
	return shader, nil
}

// CreatePipeline compiles and links a render pipeline from GLSL sources.
// The sources are treated as opaque blobs; any GLSL the driver accepts
// works.
func (f *Factory) CreatePipeline(desc *PipelineDescriptor) (*PipelineState, error) {
	api := f.dev.api

	vs, err := compileStage(api, gl.VertexShader, desc.VertexSource)
	if err != nil {
		return nil, fmt.Errorf("vertex stage: %w", err)
	}
	ps, err := compileStage(api, gl.FragmentShader, desc.PixelSource)
	if err != nil {
		api.DeleteShader(vs)
		return nil, fmt.Errorf("pixel stage: %w", err)
	}

	program := api.CreateProgram()
	api.AttachShader(program, vs)
	api.AttachShader(program, ps)
	// GLSL without layout qualifiers leaves attribute locations up to the
	// driver, so pin each declared attribute before linking.
	for _, a := range desc.Attributes {
		if a.Name != "" {
			api.BindAttribLocation(program, a.Index, a.Name)
		}
	}
	api.LinkProgram(program)
	api.DeleteShader(vs)
	api.DeleteShader(ps)

	var status int32
	api.GetProgramiv(program, gl.LinkStatus, &status)
	if status == 0 {
		log := api.GetProgramInfoLog(program)
		api.DeleteProgram(program)
		return nil, fmt.Errorf("%w: %s", ErrProgramLink, log)
	}

	p := &PipelineState{
		dev:        f.dev,
		program:    program,
		attributes: desc.Attributes,
		samplerLoc: -1,
	}
	api.GenVertexArrays(1, &p.vao)
	if desc.SamplerUniform != "" {
		p.samplerLoc = api.GetUniformLocation(program, desc.SamplerUniform)
	}
	return p, nil
}
