// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glarea

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glarea/device"
	"github.com/gogpu/glarea/internal/gltest"
)

// widget framebuffer and renderbuffer names the fake reports, standing in
// for what the toolkit bound before the render signal.
const (
	widgetFBO = 42
	widgetRB  = 7
)

func newTestContext(t *testing.T, aa device.AAMode, w, h int) (*Context, *gltest.API) {
	t.Helper()
	fake := gltest.New(widgetFBO, widgetRB)
	ctx, err := New(aa, w, h, WithAPI(fake))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ctx, fake
}

// renderFrame drives one frame the way the toolkit would: rebind the
// widget's framebuffer, then emit the render signal.
func renderFrame(ctx *Context, fake *gltest.API, cb RenderCallback) error {
	fake.BindWidgetFramebuffer()
	return ctx.RenderFrame(cb)
}

func countPrefix(calls []string, prefix string) int {
	n := 0
	for _, c := range calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// frameCallback clears the color target and reports a fixed status. It
// implements only the required Render hook.
type frameCallback struct {
	color  gputypes.Color
	status CallbackStatus
	err    error
	frames int
}

func (c *frameCallback) Render(ctx *device.Context, vp Viewport, color *device.RenderTargetView, depth *device.DepthStencilView) (CallbackStatus, error) {
	c.frames++
	if c.err != nil {
		return Continue, c.err
	}
	ctx.Encoder.Clear(color, c.color)
	ctx.Flush()
	return c.status, nil
}

// resizeAwareCallback additionally records resize notifications.
type resizeAwareCallback struct {
	frameCallback
	resizes []Viewport
}

func (c *resizeAwareCallback) Resize(ctx *device.Context, vp Viewport) error {
	c.resizes = append(c.resizes, vp)
	return nil
}

// abortingCallback records a red clear but fails before flushing it.
type abortingCallback struct {
	err error
}

func (c *abortingCallback) Render(ctx *device.Context, vp Viewport, color *device.RenderTargetView, depth *device.DepthStencilView) (CallbackStatus, error) {
	ctx.Encoder.Clear(color, gputypes.Color{R: 1, A: 1})
	return Continue, c.err
}

// idleCallback records nothing and skips postprocessing.
type idleCallback struct{}

func (idleCallback) Render(*device.Context, Viewport, *device.RenderTargetView, *device.DepthStencilView) (CallbackStatus, error) {
	return Skip, nil
}

func TestNewValidatesSize(t *testing.T) {
	fake := gltest.New(widgetFBO, widgetRB)
	if _, err := New(device.AANone, 0, 600, WithAPI(fake)); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("New(0, 600) error = %v, want %v", err, ErrInvalidViewport)
	}
	if _, err := New(device.AANone, 800, -1, WithAPI(fake)); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("New(800, -1) error = %v, want %v", err, ErrInvalidViewport)
	}
}

func TestAllocateTargetsReportsRequestedDimensions(t *testing.T) {
	ctx, _ := newTestContext(t, device.AAMSAA4x, 320, 240)

	set := ctx.targets
	if got, want := set.Width(), 320; got != want {
		t.Errorf("Width() = %d, want %d", got, want)
	}
	if got, want := set.Height(), 240; got != want {
		t.Errorf("Height() = %d, want %d", got, want)
	}
	if got := set.ColorTexture.Samples(); got != 4 {
		t.Errorf("color Samples() = %d, want 4", got)
	}
	if got := set.DepthTexture.Samples(); got != 4 {
		t.Errorf("depth Samples() = %d, want 4", got)
	}
	if got, want := set.DepthTexture.Format(), gputypes.TextureFormatDepth24PlusStencil8; got != want {
		t.Errorf("depth Format() = %v, want %v", got, want)
	}
}

func TestRenderFrameNilCallback(t *testing.T) {
	ctx, _ := newTestContext(t, device.AANone, 64, 64)
	if err := ctx.RenderFrame(nil); !errors.Is(err, ErrNilCallback) {
		t.Errorf("RenderFrame(nil) error = %v, want %v", err, ErrNilCallback)
	}
}

func TestRenderFrameRedSkip(t *testing.T) {
	// A callback that clears to red and skips postprocessing must land
	// red on the widget's renderbuffer, sourced from the primary color
	// target with no postprocess draw in between.
	ctx, fake := newTestContext(t, device.AANone, 800, 600)

	cb := &frameCallback{color: gputypes.Color{R: 1, A: 1}, status: Skip}
	if err := renderFrame(ctx, fake, cb); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}

	if got, want := fake.RenderbufferColor(widgetRB), (gltest.Color{1, 0, 0, 1}); got != want {
		t.Errorf("widget renderbuffer = %v, want %v", got, want)
	}
	if n := countPrefix(fake.Calls, "DrawElements"); n != 0 {
		t.Errorf("Skip ran %d postprocess draws, want 0", n)
	}
	if fake.FlushCount == 0 {
		t.Error("frame did not flush")
	}
}

func TestRenderFrameGreenMSAAResolve(t *testing.T) {
	// With MSAA the frame goes through the resolve draw: primary (4x)
	// color is sampled into the single-sample postprocess target, which
	// is then blitted onto the widget's renderbuffer.
	ctx, fake := newTestContext(t, device.AAMSAA4x, 400, 400)

	cb := &frameCallback{color: gputypes.Color{G: 1, A: 1}, status: Continue}
	if err := renderFrame(ctx, fake, cb); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}

	if got, want := fake.RenderbufferColor(widgetRB), (gltest.Color{0, 1, 0, 1}); got != want {
		t.Errorf("widget renderbuffer = %v, want %v", got, want)
	}
	if n := countPrefix(fake.Calls, "DrawElements"); n != 1 {
		t.Errorf("resolve ran %d draws, want 1", n)
	}
	if got, want := fake.TextureColor(ctx.postTex.ID()), (gltest.Color{0, 1, 0, 1}); got != want {
		t.Errorf("postprocess target = %v, want %v", got, want)
	}
}

func TestRenderFrameRestoresWidgetAttachment(t *testing.T) {
	ctx, fake := newTestContext(t, device.AANone, 64, 64)

	cb := &frameCallback{color: gputypes.Color{B: 1, A: 1}, status: Continue}
	if err := renderFrame(ctx, fake, cb); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}

	// The captured snapshot must be re-attached before the blit, and the
	// blit must come after the re-attach.
	attach := fake.CallIndex("NamedFramebufferRenderbuffer(42, 0x8CE0, 7)")
	if attach < 0 {
		t.Fatalf("widget renderbuffer was not re-attached; calls: %v", fake.Calls)
	}
	foundBlit := false
	for i := attach; i < len(fake.Calls); i++ {
		if strings.HasPrefix(fake.Calls[i], "BlitFramebuffer(") {
			foundBlit = true
		}
	}
	if !foundBlit {
		t.Error("no blit after the re-attach")
	}
}

func TestRenderFrameCallbackError(t *testing.T) {
	ctx, fake := newTestContext(t, device.AANone, 64, 64)
	renderErr := errors.New("lost device")

	before := countPrefix(fake.Calls, "UseProgram(0)")
	err := renderFrame(ctx, fake, &frameCallback{err: renderErr})
	if !errors.Is(err, renderErr) {
		t.Fatalf("RenderFrame() error = %v, want %v", err, renderErr)
	}

	// Cleanup exactly once, and neither postprocess nor blit ran.
	if got := countPrefix(fake.Calls, "UseProgram(0)") - before; got != 1 {
		t.Errorf("cleanup ran %d times, want 1", got)
	}
	if n := countPrefix(fake.Calls, "NamedFramebufferRenderbuffer"); n != 0 {
		t.Error("failed frame still re-attached the widget framebuffer")
	}
	if n := countPrefix(fake.Calls, "BlitFramebuffer"); n != 0 {
		t.Error("failed frame still blitted")
	}
}

func TestRenderFrameAbortDiscardsRecordedCommands(t *testing.T) {
	// A callback may record commands and then fail before flushing them.
	// Those commands belong to the aborted frame and must not replay when
	// the next frame flushes.
	ctx, fake := newTestContext(t, device.AANone, 64, 64)
	renderErr := errors.New("lost device")

	if err := renderFrame(ctx, fake, &abortingCallback{err: renderErr}); !errors.Is(err, renderErr) {
		t.Fatalf("RenderFrame() error = %v, want %v", err, renderErr)
	}

	if err := renderFrame(ctx, fake, idleCallback{}); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}

	if got := fake.TextureColor(ctx.targets.ColorTexture.ID()); got != (gltest.Color{}) {
		t.Errorf("color target = %v after an empty frame, want untouched", got)
	}
	if got := fake.RenderbufferColor(widgetRB); got == (gltest.Color{1, 0, 0, 1}) {
		t.Error("widget renderbuffer shows the aborted frame's clear")
	}
}

func TestResizeNoopKeepsHandles(t *testing.T) {
	ctx, fake := newTestContext(t, device.AANone, 400, 400)

	gens := countPrefix(fake.Calls, "GenTextures")
	targets := ctx.targets
	if err := ctx.Resize(400, 400); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if ctx.targets != targets {
		t.Error("identical resize replaced the target set")
	}
	if got := countPrefix(fake.Calls, "GenTextures"); got != gens {
		t.Errorf("identical resize allocated %d textures", got-gens)
	}
}

func TestResizeReallocatesOnceAndNotifies(t *testing.T) {
	ctx, fake := newTestContext(t, device.AAMSAA4x, 400, 400)

	cb := &resizeAwareCallback{frameCallback: frameCallback{color: gputypes.Color{G: 1, A: 1}, status: Continue}}
	if err := renderFrame(ctx, fake, cb); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}

	oldColor := ctx.targets.ColorTexture.ID()
	oldFBO := ctx.targets.ColorTarget.FramebufferID()
	gens := countPrefix(fake.Calls, "GenTextures")

	if err := ctx.Resize(800, 600); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	// One reallocation: primary color, depth, postprocess color.
	if got := countPrefix(fake.Calls, "GenTextures") - gens; got != 3 {
		t.Errorf("resize allocated %d textures, want 3", got)
	}
	if ctx.targets.ColorTexture.ID() == oldColor {
		t.Error("resize kept the old color texture")
	}
	if ctx.targets.ColorTarget.FramebufferID() == oldFBO {
		t.Error("resize kept the old framebuffer")
	}
	if got, want := ctx.Viewport().Width, 800; got != want {
		t.Errorf("Viewport().Width = %d, want %d", got, want)
	}

	if len(cb.resizes) != 1 {
		t.Fatalf("callback notified %d times, want 1", len(cb.resizes))
	}
	if got := cb.resizes[0]; got.Width != 800 || got.Height != 600 {
		t.Errorf("notified viewport = %dx%d, want 800x600", got.Width, got.Height)
	}

	// The next frame must render through the new targets.
	if err := renderFrame(ctx, fake, cb); err != nil {
		t.Fatalf("RenderFrame() after resize error = %v", err)
	}
	if got, want := fake.RenderbufferColor(widgetRB), (gltest.Color{0, 1, 0, 1}); got != want {
		t.Errorf("widget renderbuffer after resize = %v, want %v", got, want)
	}
}

func TestResizeKeepsLastGoodStateOnFailure(t *testing.T) {
	ctx, fake := newTestContext(t, device.AANone, 400, 400)

	targets := ctx.targets
	vp := ctx.Viewport()

	fake.StatusOverride = 0x8CD6 // allocation of the new target view fails
	if err := ctx.Resize(800, 600); err == nil {
		t.Fatal("Resize() succeeded with incomplete framebuffers")
	}
	fake.StatusOverride = 0

	if ctx.targets != targets {
		t.Error("failed resize replaced the target set")
	}
	if got := ctx.Viewport(); got != vp {
		t.Errorf("failed resize changed viewport to %+v", got)
	}
}

func TestReleaseFreesEverything(t *testing.T) {
	ctx, fake := newTestContext(t, device.AANone, 64, 64)

	ctx.Release()

	if got := fake.LiveTextures(); got != 0 {
		t.Errorf("%d textures live after Release", got)
	}
	if got := fake.LiveFramebuffers(); got != 0 {
		t.Errorf("%d framebuffers live after Release", got)
	}
	if got := fake.LiveSamplers(); got != 0 {
		t.Errorf("%d samplers live after Release", got)
	}
	if got := fake.LiveBuffers(); got != 0 {
		t.Errorf("%d buffers live after Release", got)
	}
	if got := fake.LivePrograms(); got != 0 {
		t.Errorf("%d programs live after Release", got)
	}
}
