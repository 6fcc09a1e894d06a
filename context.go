// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glarea

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/glarea/device"
	"github.com/gogpu/glarea/gl"
	"github.com/gogpu/glarea/procaddr"
)

// FrameBindingSnapshot captures the GL binding state the widget expects to
// find intact after the render signal returns: the draw framebuffer the
// toolkit bound for this frame and the renderbuffer backing its color
// attachment. Taking the snapshot is the only point in the frame where
// ambient GL state is read; everything downstream works with the captured
// names.
type FrameBindingSnapshot struct {
	Framebuffer  uint32
	Renderbuffer uint32
}

// snapshotBindings reads the widget's current framebuffer and renderbuffer
// bindings. Must run before any rendering command touches the bindings.
func snapshotBindings(api gl.API) FrameBindingSnapshot {
	var fbo, rbo int32
	api.GetIntegerv(gl.DrawFramebufferBinding, &fbo)
	api.GetIntegerv(gl.RenderbufferBinding, &rbo)
	return FrameBindingSnapshot{
		Framebuffer:  uint32(fbo),
		Renderbuffer: uint32(rbo),
	}
}

// Context is the frame orchestrator. It owns the device context, the
// off-screen render targets, the postprocess stage and the viewport, and
// drives the render, postprocess, blit-back and cleanup sequence for each
// frame.
//
// A Context is bound to the GL context that was current when New ran; all
// methods must be called on that context's thread.
type Context struct {
	gfx      *device.Context
	viewport Viewport

	targets    *RenderTargetSet
	postTex    *device.Texture
	postTarget *device.RenderTargetView
	post       *PostprocessResources

	callback RenderCallback
}

// New bootstraps a Context for a widget of the given client-area size.
// The GL function table is loaded through the default libepoxy chain
// unless WithProcAddr or WithAPI overrides it.
func New(aa device.AAMode, widgetWidth, widgetHeight int, opts ...Option) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}
	if widgetWidth <= 0 || widgetHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, widgetWidth, widgetHeight)
	}

	api := o.api
	if api == nil {
		lookup := o.procAddr
		if lookup == nil {
			lookup = procaddr.Default()
		}
		loaded, err := gl.Load(lookup)
		if err != nil {
			return nil, fmt.Errorf("glarea: loading GL: %w", err)
		}
		api = loaded
		Logger().Info("glarea: device bootstrap",
			slog.String("vendor", api.GetString(gl.Vendor)),
			slog.String("renderer", api.GetString(gl.Renderer)),
			slog.String("version", api.GetString(gl.Version)),
			slog.String("aa", aa.String()))
	}

	c := &Context{
		gfx:      device.NewContext(api, aa),
		viewport: newViewport(aa, widgetWidth, widgetHeight),
	}

	targets, err := AllocateTargets(c.gfx.Factory, aa, c.viewport.Width, c.viewport.Height)
	if err != nil {
		return nil, err
	}
	postTex, postTarget, err := allocatePostprocessTarget(c.gfx.Factory, c.viewport.Width, c.viewport.Height)
	if err != nil {
		targets.Release()
		c.gfx.Device.Cleanup()
		return nil, err
	}
	post, err := newPostprocessResources(c.gfx.Factory, aa, o.srgb)
	if err != nil {
		postTarget.Release()
		postTex.Release()
		targets.Release()
		c.gfx.Device.Cleanup()
		return nil, err
	}

	c.targets = targets
	c.postTex = postTex
	c.postTarget = postTarget
	c.post = post
	return c, nil
}

// GfxContext returns the device context handed to callbacks, for
// applications that create resources outside the render signal.
func (c *Context) GfxContext() *device.Context { return c.gfx }

// Device returns the underlying device.
func (c *Context) Device() *device.Device { return c.gfx.Device }

// Factory returns the resource factory.
func (c *Context) Factory() *device.Factory { return c.gfx.Factory }

// Encoder returns the command encoder.
func (c *Context) Encoder() *device.Encoder { return c.gfx.Encoder }

// Size returns the current off-screen target dimensions.
func (c *Context) Size() (width, height int) {
	return c.viewport.Width, c.viewport.Height
}

// Viewport returns the current viewport.
func (c *Context) Viewport() Viewport { return c.viewport }

// RenderFrame runs one frame: it snapshots the widget's bindings, invokes
// the callback against the off-screen targets, runs the postprocess pass,
// blits the finished frame back onto the widget's framebuffer and performs
// device housekeeping.
//
// Cleanup runs exactly once per frame, on the error paths included, and the
// encoder is reset so an aborted frame's commands never replay on the next
// one. The callback becomes the attached callback that Resize will notify.
func (c *Context) RenderFrame(cb RenderCallback) error {
	if cb == nil {
		return ErrNilCallback
	}
	c.callback = cb

	api := c.gfx.Device.API()
	snapshot := snapshotBindings(api)
	defer func() {
		// The encoder must not carry commands across frames. On the
		// normal path Flush already emptied it; after a callback error
		// the recorded commands of the aborted frame are discarded here.
		c.gfx.Encoder.Reset()
		c.gfx.Device.Cleanup()
	}()

	status, err := cb.Render(c.gfx, c.viewport, c.targets.ColorTarget, c.targets.DepthTarget)
	if err != nil {
		return fmt.Errorf("glarea: render callback: %w", err)
	}

	if status == Continue {
		if pcb, ok := cb.(PostprocessCallback); ok {
			if _, err := pcb.Postprocess(c.gfx, c.post, c.viewport, c.targets.ColorSource, c.postTarget); err != nil {
				return fmt.Errorf("glarea: postprocess callback: %w", err)
			}
		} else {
			c.post.Blit(c.gfx.Encoder, c.targets.ColorSource, c.postTarget)
		}
	}
	c.gfx.Flush()

	c.blitBack(api, snapshot)
	return nil
}

// blitBack copies the finished frame onto the widget's framebuffer. The
// source is whatever draw framebuffer the flushed commands left bound: the
// postprocess target after the standard pass, or the primary color target
// when the callback skipped postprocessing.
func (c *Context) blitBack(api gl.API, snapshot FrameBindingSnapshot) {
	var source int32
	api.GetIntegerv(gl.DrawFramebufferBinding, &source)

	api.BindFramebuffer(gl.ReadFramebuffer, uint32(source))
	api.BindFramebuffer(gl.DrawFramebuffer, snapshot.Framebuffer)
	// The toolkit's color attachment must be re-attached: the render pass
	// may have invalidated it when the context switched framebuffers.
	api.NamedFramebufferRenderbuffer(snapshot.Framebuffer, gl.ColorAttachment0, gl.Renderbuffer, snapshot.Renderbuffer)
	w, h := int32(c.viewport.TargetWidth), int32(c.viewport.TargetHeight)
	api.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, gl.ColorBufferBit, gl.Nearest)
	api.Flush()
}

// Resize recomputes the viewport for a new widget size and reallocates the
// off-screen targets when the dimensions actually changed. The previous
// targets stay in place if allocation fails. After a successful swap the
// attached callback's Resize hook, if implemented, is notified.
func (c *Context) Resize(widgetWidth, widgetHeight int) error {
	if widgetWidth <= 0 || widgetHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, widgetWidth, widgetHeight)
	}
	vp := newViewport(c.viewport.AA, widgetWidth, widgetHeight)
	if vp.Width == c.viewport.Width && vp.Height == c.viewport.Height {
		c.viewport = vp
		return nil
	}

	targets, err := AllocateTargets(c.gfx.Factory, c.viewport.AA, vp.Width, vp.Height)
	if err != nil {
		return err
	}
	postTex, postTarget, err := allocatePostprocessTarget(c.gfx.Factory, vp.Width, vp.Height)
	if err != nil {
		targets.Release()
		return err
	}

	Logger().Debug("glarea: targets reallocated",
		slog.Int("width", vp.Width), slog.Int("height", vp.Height))

	c.targets.Release()
	c.postTarget.Release()
	c.postTex.Release()
	c.targets = targets
	c.postTex = postTex
	c.postTarget = postTarget
	c.viewport = vp

	if rcb, ok := c.callback.(ResizeCallback); ok {
		if err := rcb.Resize(c.gfx, c.viewport); err != nil {
			return fmt.Errorf("glarea: resize callback: %w", err)
		}
	}
	return nil
}

// Release queues every context-owned GPU resource for deletion and runs
// the device cleanup immediately. The Context must not be used afterwards.
func (c *Context) Release() {
	c.post.release()
	c.postTarget.Release()
	c.postTex.Release()
	c.targets.Release()
	c.gfx.Device.Cleanup()
}
