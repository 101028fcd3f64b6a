// Package gfx provides drawing primitives for the indexed-color graphics
// modes. All operations draw into the display's live framebuffer, clip to
// its bounds and silently do nothing in text mode.
package gfx

import (
	"github.com/rgbpanel/rgbpanel/internal/display"
)

// NoTransparency disables color keying in Blit and BlitFlip.
const NoTransparency = -1

// Canvas draws on whatever framebuffer the display currently exposes. Every
// operation re-fetches the framebuffer, so a Canvas stays valid across mode
// switches; between modes it simply has nothing to draw on.
type Canvas struct {
	d *display.Display
}

// New returns a canvas bound to d.
func New(d *display.Display) *Canvas {
	return &Canvas{d: d}
}

// Clear fills the whole framebuffer with one palette index.
func (c *Canvas) Clear(color byte) {
	pix, _, _ := c.d.FramebufferState()
	for i := range pix {
		pix[i] = color
	}
}

// Pixel sets a single pixel. Out-of-bounds coordinates are ignored.
func (c *Canvas) Pixel(x, y int, color byte) {
	pix, w, h := c.d.FramebufferState()
	if pix == nil || x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	pix[y*w+x] = color
}

// HLine draws a horizontal run of length elements starting at (x, y).
func (c *Canvas) HLine(x, y, length int, color byte) {
	pix, w, h := c.d.FramebufferState()
	if pix == nil || y < 0 || y >= h || length <= 0 {
		return
	}
	if x < 0 {
		length += x
		x = 0
	}
	if x+length > w {
		length = w - x
	}
	if length <= 0 {
		return
	}
	row := pix[y*w+x : y*w+x+length]
	for i := range row {
		row[i] = color
	}
}

// VLine draws a vertical run of length elements starting at (x, y).
func (c *Canvas) VLine(x, y, length int, color byte) {
	pix, w, h := c.d.FramebufferState()
	if pix == nil || x < 0 || x >= w || length <= 0 {
		return
	}
	if y < 0 {
		length += y
		y = 0
	}
	if y+length > h {
		length = h - y
	}
	if length <= 0 {
		return
	}
	for i := 0; i < length; i++ {
		pix[(y+i)*w+x] = color
	}
}

// Rect draws a rectangle outline.
func (c *Canvas) Rect(x, y, rw, rh int, color byte) {
	if rw <= 0 || rh <= 0 {
		return
	}
	c.HLine(x, y, rw, color)
	c.HLine(x, y+rh-1, rw, color)
	// Side edges skip the corners the hlines already covered.
	if rh > 2 {
		c.VLine(x, y+1, rh-2, color)
		c.VLine(x+rw-1, y+1, rh-2, color)
	}
}

// FillRect draws a filled rectangle, clipped to the framebuffer.
func (c *Canvas) FillRect(x, y, rw, rh int, color byte) {
	pix, w, h := c.d.FramebufferState()
	if pix == nil || rw <= 0 || rh <= 0 {
		return
	}
	x0, y0 := x, y
	x1, y1 := x+rw, y+rh
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > w {
		x1 = w
	}
	if y1 > h {
		y1 = h
	}
	if x1-x0 <= 0 || y1-y0 <= 0 {
		return
	}
	for row := y0; row < y1; row++ {
		span := pix[row*w+x0 : row*w+x1]
		for i := range span {
			span[i] = color
		}
	}
}

// Blit copies an sw x sh block of 8bpp source pixels to (x, y). stride is
// the source row pitch in bytes (usually sw). Pixels equal to transparent
// are skipped; pass NoTransparency (or any negative value) to copy them
// all. The destination is clipped per pixel, same as the other primitives.
func (c *Canvas) Blit(data []byte, x, y, sw, sh, stride, transparent int) {
	c.blit(data, x, y, sw, sh, stride, transparent, false, false)
}

// BlitFlip is Blit with optional horizontal and/or vertical mirroring.
func (c *Canvas) BlitFlip(data []byte, x, y, sw, sh, stride, transparent int, flipX, flipY bool) {
	c.blit(data, x, y, sw, sh, stride, transparent, flipX, flipY)
}

func (c *Canvas) blit(data []byte, x, y, sw, sh, stride, transparent int, flipX, flipY bool) {
	pix, w, h := c.d.FramebufferState()
	if pix == nil || sw <= 0 || sh <= 0 || stride < 0 {
		return
	}
	// The source must hold every row it claims.
	if len(data) < (sh-1)*stride+sw {
		return
	}

	for sy := 0; sy < sh; sy++ {
		srcY := sy
		if flipY {
			srcY = sh - 1 - sy
		}
		dy := y + sy
		if dy < 0 || dy >= h {
			continue
		}
		srcRow := data[srcY*stride:]
		dstRow := pix[dy*w : dy*w+w]

		for sx := 0; sx < sw; sx++ {
			srcX := sx
			if flipX {
				srcX = sw - 1 - sx
			}
			dx := x + sx
			if dx < 0 || dx >= w {
				continue
			}
			px := srcRow[srcX]
			if transparent < 0 || px != byte(transparent) {
				dstRow[dx] = px
			}
		}
	}
}
