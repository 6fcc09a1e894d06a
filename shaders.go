// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glarea

import "github.com/gogpu/glarea/device"

// Postprocess shader sources. The device layer treats them as opaque blobs;
// they are exported so that a custom PostprocessCallback can reuse or extend
// the standard pass.

// PostVertexShader passes the fullscreen geometry through untransformed.
const PostVertexShader = `#version 150 core

in vec2 a_Pos;
in vec2 a_TexCoord;
out vec2 v_TexCoord;

void main() {
	v_TexCoord = a_TexCoord;
	gl_Position = vec4(a_Pos, 0.0, 1.0);
}
`

// srgbEncode converts a linear color to the sRGB transfer curve. Color
// targets are allocated as plain (non-sRGB) RGBA8, so gamma encoding
// happens here rather than in the framebuffer.
const srgbEncode = `
vec4 to_sRGB(vec4 linearRGB)
{
    bvec4 cutoff = lessThan(linearRGB, vec4(0.0031308));
    vec4 higher = vec4(1.055)*pow(linearRGB, vec4(1.0/2.4)) - vec4(0.055);
    vec4 lower = linearRGB * vec4(12.92);

    return mix(higher, lower, cutoff);
}
`

// PostPixelShader samples a single-sample source and gamma encodes it.
const PostPixelShader = `#version 150 core

uniform sampler2D t_Source;

in vec2 v_TexCoord;
out vec4 o_Color;
` + srgbEncode + `
void main() {
	vec4 sampled_color = texture(t_Source, v_TexCoord);
	o_Color = vec4(to_sRGB(sampled_color).rgb, sampled_color.a);
}
`

// PostPixelShaderMSAA4x resolves a 4x multisampled source by fetching and
// averaging all four samples, then gamma encodes the result. The manual
// resolve exists because a sampler2DMS cannot be filtered by texture().
const PostPixelShaderMSAA4x = `#version 150 core

uniform sampler2DMS t_Source;

in vec2 v_TexCoord;
out vec4 o_Color;
` + srgbEncode + `
void main() {
	vec2 d = vec2(textureSize(t_Source));
	ivec2 i = ivec2(d * v_TexCoord);
	vec4 sampled_color = (texelFetch(t_Source, i, 0) + texelFetch(t_Source, i, 1)
			+ texelFetch(t_Source, i, 2) + texelFetch(t_Source, i, 3)) / 4.0;
	o_Color = vec4(to_sRGB(sampled_color).rgb, sampled_color.a);
}
`

// Linear variants used when sRGB encoding is disabled at construction.

const postPixelShaderLinear = `#version 150 core

uniform sampler2D t_Source;

in vec2 v_TexCoord;
out vec4 o_Color;

void main() {
	o_Color = texture(t_Source, v_TexCoord);
}
`

const postPixelShaderMSAA4xLinear = `#version 150 core

uniform sampler2DMS t_Source;

in vec2 v_TexCoord;
out vec4 o_Color;

void main() {
	vec2 d = vec2(textureSize(t_Source));
	ivec2 i = ivec2(d * v_TexCoord);
	o_Color = (texelFetch(t_Source, i, 0) + texelFetch(t_Source, i, 1)
			+ texelFetch(t_Source, i, 2) + texelFetch(t_Source, i, 3)) / 4.0;
}
`

// pixelShaderSource selects the postprocess pixel shader for an AA mode.
func pixelShaderSource(aa device.AAMode, srgb bool) string {
	if aa == device.AAMSAA4x {
		if srgb {
			return PostPixelShaderMSAA4x
		}
		return postPixelShaderMSAA4xLinear
	}
	if srgb {
		return PostPixelShader
	}
	return postPixelShaderLinear
}
