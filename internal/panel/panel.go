// Package panel simulates the scanout hardware: it requests the display's
// strips in bounce-buffer order, assembles them into a full RGB565 frame and
// fires the vertical-blank event, optionally paced to a refresh rate.
package panel

import (
	"context"
	"sync"
	"time"

	"github.com/rgbpanel/rgbpanel/internal/display"
)

// Panel drives one display and owns the assembled frame.
type Panel struct {
	cfg Config
	d   *display.Display

	mu    sync.Mutex
	frame []uint16 // RGB565, PanelWidth * PanelHeight
}

// New builds a panel over d.
func New(d *display.Display, cfg Config) *Panel {
	cfg.Defaults()
	return &Panel{
		cfg:   cfg,
		d:     d,
		frame: make([]uint16, display.PanelWidth*display.PanelHeight),
	}
}

// StepFrame renders one full frame strip by strip, exactly as the bounce
// buffers would request it, then signals vertical blank.
func (p *Panel) StepFrame() {
	p.mu.Lock()
	for y := 0; y < display.PanelHeight; y += p.cfg.StripLines {
		lines := p.cfg.StripLines
		if y+lines > display.PanelHeight {
			lines = display.PanelHeight - y
		}
		p.d.FillStrip(y, lines, p.frame[y*display.PanelWidth:(y+lines)*display.PanelWidth])
	}
	p.mu.Unlock()
	p.d.SignalVBlank()
}

// Run steps frames at the configured refresh rate until ctx is canceled.
func (p *Panel) Run(ctx context.Context) {
	t := time.NewTicker(time.Second / time.Duration(p.cfg.RefreshHz))
	defer t.Stop()
	for {
		p.StepFrame()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// Frame returns the live frame buffer. It is rewritten by every StepFrame;
// callers that render asynchronously should use FrameRGBA, which copies
// under the panel's lock.
func (p *Panel) Frame() []uint16 { return p.frame }

// FrameRGBA converts the frame to 8-bit RGBA into dst, reallocating it if
// too small, and returns it. The alpha channel is opaque.
func (p *Panel) FrameRGBA(dst []byte) []byte {
	need := len(p.frame) * 4
	if cap(dst) < need {
		dst = make([]byte, need)
	}
	dst = dst[:need]

	p.mu.Lock()
	for i, px := range p.frame {
		dst[i*4+0] = expand5[px>>11]
		dst[i*4+1] = expand6[px>>5&0x3F]
		dst[i*4+2] = expand5[px&0x1F]
		dst[i*4+3] = 0xFF
	}
	p.mu.Unlock()
	return dst
}

// Display returns the display this panel drives.
func (p *Panel) Display() *display.Display { return p.d }

// RGB565 channel expansion tables: the high bits are replicated into the
// low bits so full intensity maps to 255.
var (
	expand5 [32]byte
	expand6 [64]byte
)

func init() {
	for i := range expand5 {
		expand5[i] = byte(i<<3 | i>>2)
	}
	for i := range expand6 {
		expand6[i] = byte(i<<2 | i>>4)
	}
}
