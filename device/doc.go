// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package device is a small retained-mode graphics device over OpenGL.
//
// It mirrors the device/factory/encoder split common to retained GPU APIs:
// the Factory creates resources (textures, views, samplers, buffers,
// pipelines), the Encoder records commands that are executed against the GL
// context on Flush, and the Device performs end-of-frame housekeeping,
// deleting resources released during the frame.
//
// Resource descriptors reuse the gputypes vocabulary (TextureDescriptor,
// TextureFormat, FilterMode, AddressMode, Color) so host applications that
// already speak the gogpu type system can drive this device without a
// translation layer.
//
// Everything in this package assumes a single owner on a single thread with
// a current GL context; there is no internal locking.
package device
