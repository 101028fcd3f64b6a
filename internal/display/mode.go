package display

import (
	"errors"
	"fmt"
)

// Mode identifies a screen mode. The values match the classic PC mode
// numbers so callers using those conventions map straight through.
type Mode uint8

const (
	ModeText      Mode = 0x03 // 128x37 text cells
	ModeGraphicsA Mode = 0x13 // 320x200, 256 colors, 3x upscale, 32px side margins
	ModeGraphicsB Mode = 0x80 // 256x150, 256 colors, 4x upscale, exact fit
)

const (
	gfxAWidth, gfxAHeight, gfxAScale, gfxAMargin = 320, 200, 3, 32
	gfxBWidth, gfxBHeight, gfxBScale, gfxBMargin = 256, 150, 4, 0
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeGraphicsA:
		return "320x200"
	case ModeGraphicsB:
		return "256x150"
	default:
		return fmt.Sprintf("mode 0x%02X", byte(m))
	}
}

// Graphics reports whether m is one of the graphics modes.
func (m Mode) Graphics() bool { return m == ModeGraphicsA || m == ModeGraphicsB }

// Mode switch failures. Everything else in the display degrades silently;
// only SetMode reports errors.
var (
	ErrUnknownMode    = errors.New("unknown screen mode")
	ErrModeVetoed     = errors.New("mode switch vetoed")
	ErrNoFramebuffer  = errors.New("framebuffer allocation failed")
	ErrGraphicsSwitch = errors.New("direct switch between graphics modes not supported")
)

// fbState bundles a graphics framebuffer with the geometry it was allocated
// for, published as one pointer so the strip renderer can never pair a
// framebuffer with stale dimensions.
type fbState struct {
	pix    []byte
	w, h   int
	scale  int
	margin int
	pool   *pool
}

// pool is a fixed-budget framebuffer source. Each allocation hands out a
// fresh zeroed buffer rather than recycling one, so a strip render holding
// the previous framebuffer keeps reading coherent (if outdated) pixels while
// the garbage collector retires it. The budget still bounds the footprint:
// one framebuffer per pool at a time, or nothing.
type pool struct {
	capacity int
	used     bool
}

func newPool(capacity int) *pool {
	return &pool{capacity: capacity}
}

func (p *pool) alloc(size int) []byte {
	if p.used || size > p.capacity {
		return nil
	}
	p.used = true
	return make([]byte, size)
}

func (p *pool) release() { p.used = false }

// SetMode drives the screen-mode state machine. Requesting the active mode
// is a no-op. A direct switch between the two graphics modes is rejected:
// callers route through text mode so the framebuffer is reallocated for the
// new geometry instead of silently keeping the old one.
func (d *Display) SetMode(target Mode) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	current := Mode(d.mode.Load())
	if target == current {
		return nil
	}

	switch target {
	case ModeText:
		d.leaveGraphics()
		return nil
	case ModeGraphicsA, ModeGraphicsB:
		if current.Graphics() {
			return fmt.Errorf("%w: %v to %v", ErrGraphicsSwitch, current, target)
		}
		return d.enterGraphics(target)
	default:
		return fmt.Errorf("%w: 0x%02X", ErrUnknownMode, byte(target))
	}
}

func (d *Display) enterGraphics(target Mode) error {
	hooks := d.hookSet()
	if hooks.EnterGraphics != nil {
		if err := hooks.EnterGraphics(); err != nil {
			return fmt.Errorf("%w: %w", ErrModeVetoed, err)
		}
	}

	w, h, scale, margin := gfxAWidth, gfxAHeight, gfxAScale, gfxAMargin
	if target == ModeGraphicsB {
		w, h, scale, margin = gfxBWidth, gfxBHeight, gfxBScale, gfxBMargin
	}

	size := w * h
	p := d.fastPool
	pix := p.alloc(size)
	if pix == nil {
		p = d.slowPool
		pix = p.alloc(size)
	}
	if pix == nil {
		// Roll back the enter hook before reporting failure.
		if hooks.ExitGraphics != nil {
			hooks.ExitGraphics()
		}
		return fmt.Errorf("%w: %d bytes for %v", ErrNoFramebuffer, size, target)
	}

	// The fresh buffer is already palette index 0 everywhere. Publish it
	// before the mode flag widens the graphics path, then detach the text
	// buffer so stale text can never render.
	d.fb.Store(&fbState{pix: pix, w: w, h: h, scale: scale, margin: margin, pool: p})
	d.mode.Store(uint32(target))
	d.cells.Store(nil)
	return nil
}

func (d *Display) leaveGraphics() {
	// Narrow the graphics path first, then drop the framebuffer.
	d.mode.Store(uint32(ModeText))
	if fb := d.fb.Swap(nil); fb != nil {
		fb.pool.release()
	}
	hooks := d.hookSet()
	if hooks.ExitGraphics != nil {
		hooks.ExitGraphics()
	}
	if hooks.TextBuffer != nil {
		d.cells.Store(hooks.TextBuffer())
	}
	if hooks.FlushInput != nil {
		hooks.FlushInput()
	}
}

// Mode returns the active screen mode.
func (d *Display) Mode() Mode { return Mode(d.mode.Load()) }

// Framebuffer returns the indexed-color framebuffer, or nil in text mode.
func (d *Display) Framebuffer() []byte {
	if fb := d.fb.Load(); fb != nil {
		return fb.pix
	}
	return nil
}

// FramebufferSize returns the framebuffer dimensions, or (0, 0) in text mode.
func (d *Display) FramebufferSize() (w, h int) {
	if fb := d.fb.Load(); fb != nil {
		return fb.w, fb.h
	}
	return 0, 0
}

// FramebufferState returns the framebuffer and its dimensions as one
// coherent snapshot. Drawing code uses this instead of separate calls so a
// concurrent mode switch cannot pair a buffer with mismatched dimensions.
func (d *Display) FramebufferState() (pix []byte, w, h int) {
	if fb := d.fb.Load(); fb != nil {
		return fb.pix, fb.w, fb.h
	}
	return nil, 0, 0
}
