package gfx

import (
	"testing"

	"github.com/rgbpanel/rgbpanel/internal/display"
)

// gfxCanvas returns a canvas over a display in the 256x150 mode.
func gfxCanvas(t *testing.T) (*display.Display, *Canvas) {
	t.Helper()
	d := display.New(display.Config{})
	if err := d.SetMode(display.ModeGraphicsB); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	return d, New(d)
}

// countNonZero tallies the framebuffer pixels that are not palette index 0.
func countNonZero(d *display.Display) int {
	n := 0
	for _, px := range d.Framebuffer() {
		if px != 0 {
			n++
		}
	}
	return n
}

func TestTextModeDrawsNothing(t *testing.T) {
	d := display.New(display.Config{})
	c := New(d)
	// No framebuffer exists in text mode; every call must be a no-op.
	c.Clear(1)
	c.Pixel(0, 0, 1)
	c.HLine(0, 0, 10, 1)
	c.VLine(0, 0, 10, 1)
	c.Rect(0, 0, 4, 4, 1)
	c.FillRect(0, 0, 4, 4, 1)
	c.Blit([]byte{1}, 0, 0, 1, 1, 1, NoTransparency)
	c.BlitFlip([]byte{1}, 0, 0, 1, 1, 1, NoTransparency, true, true)
	if d.Framebuffer() != nil {
		t.Fatalf("framebuffer appeared in text mode")
	}
}

func TestClear(t *testing.T) {
	d, c := gfxCanvas(t)
	c.Clear(7)
	for i, px := range d.Framebuffer() {
		if px != 7 {
			t.Fatalf("pixel %d got %d want 7", i, px)
		}
	}
}

func TestPixelBounds(t *testing.T) {
	d, c := gfxCanvas(t)
	w, h := d.FramebufferSize()

	c.Pixel(0, 0, 1)
	c.Pixel(w-1, h-1, 2)
	c.Pixel(-1, 0, 3)
	c.Pixel(w, 0, 3)
	c.Pixel(0, -1, 3)
	c.Pixel(0, h, 3)

	fb := d.Framebuffer()
	if fb[0] != 1 {
		t.Fatalf("corner (0,0) got %d want 1", fb[0])
	}
	if fb[(h-1)*w+w-1] != 2 {
		t.Fatalf("corner (%d,%d) got %d want 2", w-1, h-1, fb[(h-1)*w+w-1])
	}
	if got := countNonZero(d); got != 2 {
		t.Fatalf("non-zero pixels got %d want 2, out-of-bounds write leaked", got)
	}
}

func TestHLineClipping(t *testing.T) {
	d, c := gfxCanvas(t)
	w, h := d.FramebufferSize()
	fb := d.Framebuffer()

	// Clipped on the left: 20 long from x=-5 leaves 15 pixels.
	c.HLine(-5, 10, 20, 9)
	for x := 0; x < 15; x++ {
		if fb[10*w+x] != 9 {
			t.Fatalf("row 10 x %d got %d want 9", x, fb[10*w+x])
		}
	}
	if fb[10*w+15] != 0 {
		t.Fatalf("row 10 x 15 got %d want 0", fb[10*w+15])
	}

	// Clipped on the right.
	c.HLine(w-6, 11, 20, 9)
	if fb[11*w+w-1] != 9 || fb[11*w+w-6] != 9 {
		t.Fatalf("right-clipped line missing pixels")
	}

	// Entirely outside.
	c.HLine(0, -1, 10, 9)
	c.HLine(0, h, 10, 9)
	c.HLine(w, 12, 10, 9)
	c.HLine(0, 12, 0, 9)
	if got := countNonZero(d); got != 15+6 {
		t.Fatalf("non-zero pixels got %d want %d", got, 15+6)
	}
}

func TestVLineClipping(t *testing.T) {
	d, c := gfxCanvas(t)
	w, h := d.FramebufferSize()
	fb := d.Framebuffer()

	c.VLine(10, -5, 20, 9)
	for y := 0; y < 15; y++ {
		if fb[y*w+10] != 9 {
			t.Fatalf("col 10 y %d got %d want 9", y, fb[y*w+10])
		}
	}
	if fb[15*w+10] != 0 {
		t.Fatalf("col 10 y 15 got %d want 0", fb[15*w+10])
	}

	c.VLine(11, h-3, 20, 9)
	if fb[(h-1)*w+11] != 9 || fb[(h-3)*w+11] != 9 {
		t.Fatalf("bottom-clipped line missing pixels")
	}

	c.VLine(-1, 0, 10, 9)
	c.VLine(w, 0, 10, 9)
	c.VLine(12, 0, 0, 9)
	if got := countNonZero(d); got != 15+3 {
		t.Fatalf("non-zero pixels got %d want %d", got, 15+3)
	}
}

func TestRectOutline(t *testing.T) {
	d, c := gfxCanvas(t)
	w, _ := d.FramebufferSize()
	fb := d.Framebuffer()

	c.Rect(10, 10, 5, 4, 1)

	// Perimeter pixels only: two 5-wide edges plus two 2-high sides.
	if got := countNonZero(d); got != 5+5+2+2 {
		t.Fatalf("outline pixels got %d want 14", got)
	}
	if fb[10*w+12] != 1 || fb[13*w+12] != 1 {
		t.Fatalf("top/bottom edge missing")
	}
	if fb[11*w+10] != 1 || fb[12*w+14] != 1 {
		t.Fatalf("side edge missing")
	}
	if fb[11*w+12] != 0 {
		t.Fatalf("interior pixel set, outline should be hollow")
	}

	// Heights 1 and 2 are edges only.
	c.Clear(0)
	c.Rect(0, 0, 4, 2, 1)
	if got := countNonZero(d); got != 8 {
		t.Fatalf("2-high outline pixels got %d want 8", got)
	}
	c.Clear(0)
	c.Rect(0, 0, 4, 1, 1)
	if got := countNonZero(d); got != 4 {
		t.Fatalf("1-high outline pixels got %d want 4", got)
	}

	c.Clear(0)
	c.Rect(0, 0, 0, 5, 1)
	c.Rect(0, 0, 5, -1, 1)
	if got := countNonZero(d); got != 0 {
		t.Fatalf("degenerate rect drew %d pixels", got)
	}
}

func TestFillRectClipping(t *testing.T) {
	d, c := gfxCanvas(t)
	w, h := d.FramebufferSize()
	fb := d.Framebuffer()

	c.FillRect(-2, -2, 5, 5, 6)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if fb[y*w+x] != 6 {
				t.Fatalf("px (%d,%d) got %d want 6", x, y, fb[y*w+x])
			}
		}
	}
	if got := countNonZero(d); got != 9 {
		t.Fatalf("filled pixels got %d want 9", got)
	}

	c.Clear(0)
	c.FillRect(w-2, h-2, 10, 10, 6)
	if got := countNonZero(d); got != 4 {
		t.Fatalf("corner fill pixels got %d want 4", got)
	}

	c.Clear(0)
	c.FillRect(w, 0, 5, 5, 6)
	c.FillRect(0, 0, -3, 5, 6)
	if got := countNonZero(d); got != 0 {
		t.Fatalf("off-screen fill drew %d pixels", got)
	}
}

func TestBlitCopiesBlock(t *testing.T) {
	d, c := gfxCanvas(t)
	w, _ := d.FramebufferSize()
	fb := d.Framebuffer()

	data := []byte{
		1, 2, 3,
		4, 5, 6,
	}
	c.Blit(data, 10, 20, 3, 2, 3, NoTransparency)

	want := [][3]byte{{1, 2, 3}, {4, 5, 6}}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := fb[(20+y)*w+10+x]; got != want[y][x] {
				t.Fatalf("px (%d,%d) got %d want %d", 10+x, 20+y, got, want[y][x])
			}
		}
	}
}

func TestBlitTransparency(t *testing.T) {
	d, c := gfxCanvas(t)
	w, _ := d.FramebufferSize()
	fb := d.Framebuffer()

	c.FillRect(0, 0, 4, 2, 9)
	data := []byte{
		1, 0, 2,
		0, 3, 0,
	}
	c.Blit(data, 0, 0, 3, 2, 3, 0)

	want := []byte{
		1, 9, 2, 9,
		9, 3, 9, 9,
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if got := fb[y*w+x]; got != want[y*4+x] {
				t.Fatalf("px (%d,%d) got %d want %d", x, y, got, want[y*4+x])
			}
		}
	}

	// Negative key copies everything, zeros included.
	c.Blit(data, 0, 0, 3, 2, 3, NoTransparency)
	if fb[1] != 0 || fb[w] != 0 {
		t.Fatalf("transparent-off blit skipped zero pixels")
	}
}

func TestBlitClipsAtEdges(t *testing.T) {
	d, c := gfxCanvas(t)
	w, h := d.FramebufferSize()
	fb := d.Framebuffer()

	data := []byte{
		1, 2,
		3, 4,
	}
	c.Blit(data, -1, -1, 2, 2, 2, NoTransparency)
	if fb[0] != 4 {
		t.Fatalf("top-left clip got %d want 4", fb[0])
	}
	if got := countNonZero(d); got != 1 {
		t.Fatalf("clipped blit drew %d pixels want 1", got)
	}

	c.Clear(0)
	c.Blit(data, w-1, h-1, 2, 2, 2, NoTransparency)
	if fb[(h-1)*w+w-1] != 1 {
		t.Fatalf("bottom-right clip got %d want 1", fb[(h-1)*w+w-1])
	}
	if got := countNonZero(d); got != 1 {
		t.Fatalf("clipped blit drew %d pixels want 1", got)
	}
}

func TestBlitStrideSkipsPadding(t *testing.T) {
	d, c := gfxCanvas(t)
	w, _ := d.FramebufferSize()
	fb := d.Framebuffer()

	// 2-wide sprite in a 4-byte-pitch atlas row.
	data := []byte{
		1, 2, 0xEE, 0xEE,
		3, 4, 0xEE, 0xEE,
	}
	c.Blit(data, 0, 0, 2, 2, 4, NoTransparency)

	want := []byte{1, 2, 3, 4}
	got := []byte{fb[0], fb[1], fb[w], fb[w+1]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("px %d got %d want %d", i, got[i], want[i])
		}
	}
	if fb[2] == 0xEE {
		t.Fatalf("padding byte leaked into framebuffer")
	}
}

func TestBlitShortSourceIgnored(t *testing.T) {
	d, c := gfxCanvas(t)
	c.Blit([]byte{1, 2, 3}, 0, 0, 2, 2, 2, NoTransparency)
	if got := countNonZero(d); got != 0 {
		t.Fatalf("short source blit drew %d pixels", got)
	}
}

func TestBlitFlip(t *testing.T) {
	d, c := gfxCanvas(t)
	w, _ := d.FramebufferSize()
	fb := d.Framebuffer()

	data := []byte{
		1, 2,
		3, 4,
	}

	c.BlitFlip(data, 0, 0, 2, 2, 2, NoTransparency, true, false)
	if fb[0] != 2 || fb[1] != 1 || fb[w] != 4 || fb[w+1] != 3 {
		t.Fatalf("flip x got %d,%d,%d,%d want 2,1,4,3", fb[0], fb[1], fb[w], fb[w+1])
	}

	c.BlitFlip(data, 0, 0, 2, 2, 2, NoTransparency, false, true)
	if fb[0] != 3 || fb[1] != 4 || fb[w] != 1 || fb[w+1] != 2 {
		t.Fatalf("flip y got %d,%d,%d,%d want 3,4,1,2", fb[0], fb[1], fb[w], fb[w+1])
	}

	c.BlitFlip(data, 0, 0, 2, 2, 2, NoTransparency, true, true)
	if fb[0] != 4 || fb[1] != 3 || fb[w] != 2 || fb[w+1] != 1 {
		t.Fatalf("flip xy got %d,%d,%d,%d want 4,3,2,1", fb[0], fb[1], fb[w], fb[w+1])
	}
}
