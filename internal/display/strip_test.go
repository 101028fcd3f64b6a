package display

import (
	"testing"
)

// stripBuf allocates a destination for n panel lines.
func stripBuf(n int) []uint16 { return make([]uint16, n*PanelWidth) }

// expectGlyphCell checks one rendered cell against the glyph bitmap.
func expectGlyphCell(t *testing.T, d *Display, dst []uint16, col, ch byte, fg, bg uint16) {
	t.Helper()
	g := d.Glyph(ch)
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			want := bg
			if g[y]&(0x80>>x) != 0 {
				want = fg
			}
			got := dst[y*PanelWidth+int(col)*GlyphWidth+x]
			if got != want {
				t.Fatalf("cell %d px (%d,%d) got %04X want %04X", col, x, y, got, want)
			}
		}
	}
}

func TestTextStripRendersGlyph(t *testing.T) {
	d := New(Config{})
	var cells CellBuffer
	cells[0] = Cell{Ch: 'A', Attr: 0x07} // light gray on black
	cells[1] = Cell{Ch: 'B', Attr: 0x1F} // white on blue
	d.BindCellBuffer(&cells)

	dst := stripBuf(GlyphHeight)
	d.FillStrip(0, GlyphHeight, dst)

	pal := DefaultTextPalette()
	expectGlyphCell(t, d, dst, 0, 'A', pal[7], pal[0])
	expectGlyphCell(t, d, dst, 1, 'B', pal[15], pal[1])

	// Cell 2 holds code 0, which is blank, attr 0: solid black.
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if got := dst[y*PanelWidth+2*GlyphWidth+x]; got != 0 {
				t.Fatalf("empty cell px (%d,%d) got %04X want 0000", x, y, got)
			}
		}
	}
}

func TestTextStripBlankGlyphUsesBackground(t *testing.T) {
	d := New(Config{})
	var cells CellBuffer
	cells[0] = Cell{Ch: ' ', Attr: 0x34} // blank glyph, cyan bg
	d.BindCellBuffer(&cells)

	dst := stripBuf(GlyphHeight)
	d.FillStrip(0, GlyphHeight, dst)

	bg := DefaultTextPalette()[3]
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if got := dst[y*PanelWidth+x]; got != bg {
				t.Fatalf("px (%d,%d) got %04X want bg %04X", x, y, got, bg)
			}
		}
	}
}

func TestTextStripMidGlyphStart(t *testing.T) {
	// Strips rarely align with cell boundaries: 12-line strips cross a
	// glyph row at every other request. Render the same cell via two
	// misaligned strips and via one aligned strip; they must agree.
	d := New(Config{})
	var cells CellBuffer
	cells[0] = Cell{Ch: 'W', Attr: 0x07}
	d.BindCellBuffer(&cells)

	whole := stripBuf(GlyphHeight)
	d.FillStrip(0, GlyphHeight, whole)

	top := stripBuf(StripLines)
	bottom := stripBuf(StripLines)
	d.FillStrip(0, StripLines, top)
	d.FillStrip(StripLines, StripLines, bottom)

	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			var got uint16
			if y < StripLines {
				got = top[y*PanelWidth+x]
			} else {
				got = bottom[(y-StripLines)*PanelWidth+x]
			}
			if want := whole[y*PanelWidth+x]; got != want {
				t.Fatalf("px (%d,%d) got %04X want %04X", x, y, got, want)
			}
		}
	}
}

func TestStripWithoutBufferIsBlack(t *testing.T) {
	d := New(Config{})
	dst := stripBuf(StripLines)
	for i := range dst {
		dst[i] = 0xAAAA
	}
	d.FillStrip(0, StripLines, dst)
	for i, px := range dst {
		if px != 0 {
			t.Fatalf("px %d got %04X want 0000 with no cell buffer", i, px)
		}
	}
}

func TestStripBeyondGridIsBlack(t *testing.T) {
	d := New(Config{})
	var cells CellBuffer
	for i := range cells {
		cells[i] = Cell{Ch: 'X', Attr: 0xFF}
	}
	d.BindCellBuffer(&cells)

	// The grid covers lines 0-591; the panel's last strip starts at 588.
	dst := stripBuf(StripLines)
	for i := range dst {
		dst[i] = 0xAAAA
	}
	d.FillStrip(PanelHeight-StripLines, StripLines, dst)
	for y := 0; y < StripLines; y++ {
		px := dst[y*PanelWidth]
		if PanelHeight-StripLines+y < Rows*GlyphHeight {
			if px == 0 {
				t.Fatalf("line %d inside grid rendered black", y)
			}
		} else if px != 0 {
			t.Fatalf("line %d below grid got %04X want 0000", y, px)
		}
	}

	// A request entirely past the panel degrades to a black strip.
	for i := range dst {
		dst[i] = 0xAAAA
	}
	d.FillStrip(PanelHeight, StripLines, dst)
	for i, px := range dst {
		if px != 0 {
			t.Fatalf("px %d got %04X want 0000 past panel", i, px)
		}
	}
}

func TestStripAboveGridIsBlack(t *testing.T) {
	d := New(Config{})
	var cells CellBuffer
	for i := range cells {
		cells[i] = Cell{Ch: 'X', Attr: 0xFF}
	}
	d.BindCellBuffer(&cells)

	// A strip straddling the panel top: lines before line 0 stay black,
	// the rest render from the first glyph row.
	dst := stripBuf(StripLines)
	for i := range dst {
		dst[i] = 0xAAAA
	}
	d.FillStrip(-5, StripLines, dst)
	for y := 0; y < StripLines; y++ {
		px := dst[y*PanelWidth]
		if y < 5 {
			if px != 0 {
				t.Fatalf("line %d above panel got %04X want 0000", y, px)
			}
		} else if px == 0 {
			t.Fatalf("line %d inside grid rendered black", y)
		}
	}

	// A request entirely above the panel degrades to a black strip.
	for i := range dst {
		dst[i] = 0xAAAA
	}
	d.FillStrip(-PanelHeight, StripLines, dst)
	for i, px := range dst {
		if px != 0 {
			t.Fatalf("px %d got %04X want 0000 above panel", i, px)
		}
	}
}

func TestStripShortDestination(t *testing.T) {
	d := New(Config{})
	var cells CellBuffer
	d.BindCellBuffer(&cells)

	// Destination holds fewer lines than requested; the fill must clip to
	// it rather than write past the end.
	dst := stripBuf(4)
	d.FillStrip(0, StripLines, dst)
}

func TestFrameCounterTicksAtTopOfFrame(t *testing.T) {
	d := New(Config{})
	dst := stripBuf(StripLines)

	d.FillStrip(0, StripLines, dst)
	d.FillStrip(StripLines, StripLines, dst)
	d.FillStrip(2*StripLines, StripLines, dst)
	if got := d.FrameCount(); got != 1 {
		t.Fatalf("frame count got %d want 1", got)
	}
	d.FillStrip(0, StripLines, dst)
	if got := d.FrameCount(); got != 2 {
		t.Fatalf("frame count got %d want 2", got)
	}
}

func TestCursorBlinkOverlay(t *testing.T) {
	d := New(Config{})
	var cells CellBuffer
	cells[0] = Cell{Ch: 'A', Attr: 0x07}
	d.BindCellBuffer(&cells)
	d.SetCursor(0, 0)

	pal := DefaultTextPalette()
	fg := pal[7]
	dst := stripBuf(GlyphHeight)

	// Frame counter bit 4 drives the blink phase. 15+1 = 16: visible.
	d.frames.Store(15)
	d.FillStrip(0, GlyphHeight, dst)
	for y := GlyphHeight - 2; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if got := dst[y*PanelWidth+x]; got != fg {
				t.Fatalf("cursor px (%d,%d) got %04X want fg %04X", x, y, got, fg)
			}
		}
	}
	// Rows above the underscore still show the glyph.
	g := d.Glyph('A')
	for x := 0; x < GlyphWidth; x++ {
		want := uint16(0)
		if g[4]&(0x80>>x) != 0 {
			want = fg
		}
		if got := dst[4*PanelWidth+x]; got != want {
			t.Fatalf("glyph px (%d,4) got %04X want %04X", x, got, want)
		}
	}

	// 31+1 = 32: hidden phase, the plain glyph shows through.
	d.frames.Store(31)
	d.FillStrip(0, GlyphHeight, dst)
	expectGlyphCell(t, d, dst, 0, 'A', fg, 0)

	// A hidden cursor never draws, whatever the phase.
	d.HideCursor()
	d.frames.Store(15)
	d.FillStrip(0, GlyphHeight, dst)
	expectGlyphCell(t, d, dst, 0, 'A', fg, 0)
}

func TestCursorOnlyDrawsInItsCell(t *testing.T) {
	d := New(Config{})
	var cells CellBuffer
	cells[0] = Cell{Ch: ' ', Attr: 0x07}
	cells[1] = Cell{Ch: ' ', Attr: 0x07}
	d.BindCellBuffer(&cells)
	d.SetCursor(1, 0)

	dst := stripBuf(GlyphHeight)
	d.frames.Store(15)
	d.FillStrip(0, GlyphHeight, dst)

	fg := DefaultTextPalette()[7]
	y := GlyphHeight - 1
	if got := dst[y*PanelWidth+0]; got != 0 {
		t.Fatalf("cell 0 px got %04X want 0000, cursor is in cell 1", got)
	}
	if got := dst[y*PanelWidth+GlyphWidth]; got != fg {
		t.Fatalf("cell 1 px got %04X want fg %04X", got, fg)
	}
}

func TestGraphicsStripScale3WithMargins(t *testing.T) {
	d := New(Config{})
	if err := d.SetMode(ModeGraphicsA); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	fb := d.Framebuffer()
	fb[0] = 5          // top-left
	fb[319] = 5        // top-right
	fb[1*320+2] = 9    // second row

	dst := stripBuf(StripLines)
	d.FillStrip(0, StripLines, dst)

	c5 := d.PaletteEntry(5)
	c9 := d.PaletteEntry(9)

	// Lines 0-2 replicate source row 0. Margin pixels stay black.
	for _, line := range []int{0, 1, 2} {
		base := line * PanelWidth
		if dst[base+31] != 0 {
			t.Fatalf("line %d left margin got %04X want 0000", line, dst[base+31])
		}
		for i := 0; i < 3; i++ {
			if got := dst[base+32+i]; got != c5 {
				t.Fatalf("line %d px %d got %04X want %04X", line, 32+i, got, c5)
			}
		}
		if got := dst[base+32+3]; got != 0 {
			t.Fatalf("line %d px 35 got %04X want 0000", line, got)
		}
		for i := 0; i < 3; i++ {
			if got := dst[base+32+319*3+i]; got != c5 {
				t.Fatalf("line %d right edge got %04X want %04X", line, got, c5)
			}
		}
		if dst[base+992] != 0 {
			t.Fatalf("line %d right margin got %04X want 0000", line, dst[base+992])
		}
	}

	// Line 3 is source row 1.
	base := 3 * PanelWidth
	if got := dst[base+32+2*3]; got != c9 {
		t.Fatalf("line 3 px got %04X want %04X", got, c9)
	}
	if got := dst[base+32]; got != 0 {
		t.Fatalf("line 3 px 32 got %04X want 0000", got)
	}
}

func TestGraphicsStripScale4ExactFit(t *testing.T) {
	d := New(Config{})
	if err := d.SetMode(ModeGraphicsB); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	fb := d.Framebuffer()
	fb[0] = 1
	fb[255] = 3
	fb[2*256] = 2

	dst := stripBuf(StripLines)
	d.FillStrip(0, StripLines, dst)

	c1 := d.PaletteEntry(1)
	c2 := d.PaletteEntry(2)
	c3 := d.PaletteEntry(3)

	// No margin: source pixel 0 lands on panel pixel 0, pixel 255 fills
	// through the last panel column.
	for i := 0; i < 4; i++ {
		if got := dst[i]; got != c1 {
			t.Fatalf("px %d got %04X want %04X", i, got, c1)
		}
		if got := dst[255*4+i]; got != c3 {
			t.Fatalf("px %d got %04X want %04X", 255*4+i, got, c3)
		}
	}

	// Four panel lines per source row: lines 0-3 are row 0, 4-7 are row 1
	// (all zero), 8-11 are row 2.
	if got := dst[3*PanelWidth]; got != c1 {
		t.Fatalf("line 3 got %04X want %04X", got, c1)
	}
	if got := dst[4*PanelWidth]; got != 0 {
		t.Fatalf("line 4 got %04X want 0000", got)
	}
	if got := dst[8*PanelWidth]; got != c2 {
		t.Fatalf("line 8 got %04X want %04X", got, c2)
	}
}

func TestGraphicsStripAbovePanelIsBlack(t *testing.T) {
	d := New(Config{})
	if err := d.SetMode(ModeGraphicsA); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	fb := d.Framebuffer()
	for i := range fb {
		fb[i] = 5
	}

	// Start two lines above the panel: those lines stay black instead of
	// repeating source row 0, then row 0 shows up from panel line 0.
	dst := stripBuf(StripLines)
	for i := range dst {
		dst[i] = 0xAAAA
	}
	d.FillStrip(-2, StripLines, dst)

	c5 := d.PaletteEntry(5)
	for y := 0; y < StripLines; y++ {
		px := dst[y*PanelWidth+32]
		if y < 2 {
			if px != 0 {
				t.Fatalf("line %d above panel got %04X want 0000", y, px)
			}
		} else if px != c5 {
			t.Fatalf("line %d got %04X want %04X", y, px, c5)
		}
	}
}

func TestGraphicsStripPaletteIsLive(t *testing.T) {
	d := New(Config{})
	if err := d.SetMode(ModeGraphicsB); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	d.Framebuffer()[0] = 42

	dst := stripBuf(1)
	d.FillStrip(0, 1, dst)
	if got := dst[0]; got != d.PaletteEntry(42) {
		t.Fatalf("px got %04X want %04X", got, d.PaletteEntry(42))
	}

	d.SetPaletteEntry(42, 0x07E0)
	d.FillStrip(0, 1, dst)
	if got := dst[0]; got != 0x07E0 {
		t.Fatalf("px after palette change got %04X want 07E0", got)
	}
}
