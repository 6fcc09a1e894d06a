// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glarea

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glarea/device"
)

// fullscreenVertices is one oversized triangle covering the whole viewport.
// A single triangle avoids the diagonal seam two clipped triangles can
// produce on some rasterizers. Layout is interleaved position then texcoord.
var fullscreenVertices = []float32{
	-1, -1, 0, 0,
	3, -1, 2, 0,
	-1, 3, 0, 2,
}

var fullscreenIndices = []uint16{0, 1, 2}

// PostprocessResources holds the immutable GPU state of the built-in
// postprocess pass: the fullscreen triangle, a nearest/clamp sampler and
// the pipeline matching the AA mode. Built once at Context construction
// and kept until the Context is released; resize does not touch it.
type PostprocessResources struct {
	sampler  *device.Sampler
	pipeline *device.PipelineState
	vertices *device.Buffer
	indices  *device.Buffer
}

// Pipeline returns the compiled postprocess pipeline, for callbacks that
// implement their own Postprocess but reuse the standard pass.
func (p *PostprocessResources) Pipeline() *device.PipelineState { return p.pipeline }

// Sampler returns the pass's nearest/clamp sampler.
func (p *PostprocessResources) Sampler() *device.Sampler { return p.sampler }

// newPostprocessResources compiles and uploads the pass's GPU state.
func newPostprocessResources(f *device.Factory, aa device.AAMode, srgb bool) (*PostprocessResources, error) {
	sampler, err := f.CreateSampler(&device.SamplerDescriptor{
		Label:        "glarea postprocess sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
	})
	if err != nil {
		return nil, fmt.Errorf("glarea: postprocess sampler: %w", err)
	}

	pipeline, err := f.CreatePipeline(&device.PipelineDescriptor{
		Label:        "glarea postprocess",
		VertexSource: []byte(PostVertexShader),
		PixelSource:  []byte(pixelShaderSource(aa, srgb)),
		Attributes: []device.VertexAttribute{
			{Name: "a_Pos", Index: 0, Size: 2, Offset: 0, Stride: 16},
			{Name: "a_TexCoord", Index: 1, Size: 2, Offset: 8, Stride: 16},
		},
		SamplerUniform: "t_Source",
	})
	if err != nil {
		sampler.Release()
		return nil, fmt.Errorf("glarea: postprocess pipeline: %w", err)
	}

	vertices, err := f.CreateVertexBuffer(fullscreenVertices)
	if err != nil {
		pipeline.Release()
		sampler.Release()
		return nil, fmt.Errorf("glarea: postprocess vertices: %w", err)
	}
	indices, err := f.CreateIndexBuffer(fullscreenIndices)
	if err != nil {
		vertices.Release()
		pipeline.Release()
		sampler.Release()
		return nil, fmt.Errorf("glarea: postprocess indices: %w", err)
	}

	return &PostprocessResources{
		sampler:  sampler,
		pipeline: pipeline,
		vertices: vertices,
		indices:  indices,
	}, nil
}

// Blit records the standard postprocess draw: one fullscreen triangle
// sampling src into dst, resolving samples and gamma encoding per the
// pipeline the resources were built with.
func (p *PostprocessResources) Blit(enc *device.Encoder, src *device.ShaderResourceView, dst *device.RenderTargetView) {
	enc.Draw(device.DrawCommand{
		Pipeline: p.pipeline,
		Target:   dst,
		Vertices: p.vertices,
		Indices:  p.indices,
		Texture:  src,
		Sampler:  p.sampler,
	})
}

// release queues all pass resources for deferred deletion.
func (p *PostprocessResources) release() {
	p.indices.Release()
	p.vertices.Release()
	p.pipeline.Release()
	p.sampler.Release()
}
