package display

// FillStrip composites panel lines [yStart, yStart+lines) into dst as RGB565
// pixels, PanelWidth per line. This is the scanout hot path: it answers
// every bounce-buffer refill and must finish before the hardware consumes
// the strip, so it takes no locks, allocates nothing, and never blocks.
// Requests outside the panel or the active grid degrade to black.
func (d *Display) FillStrip(yStart, lines int, dst []uint16) {
	if lines < 0 {
		lines = 0
	}
	if lines*PanelWidth > len(dst) {
		lines = len(dst) / PanelWidth
	}
	// Black first, so anything not rendered below stays blank.
	clear(dst[:lines*PanelWidth])
	if lines == 0 {
		return
	}

	// The frame counter ticks once per top-of-frame request.
	if yStart == 0 {
		d.frames.Add(1)
	}

	if Mode(d.mode.Load()).Graphics() {
		if fb := d.fb.Load(); fb != nil {
			d.fillGraphicsStrip(yStart, lines, dst, fb)
		}
		return
	}
	if cells := d.cells.Load(); cells != nil {
		d.fillTextStrip(yStart, lines, dst, cells)
	}
}

// fillGraphicsStrip upscales framebuffer rows into the strip: nearest
// neighbor, scale x horizontally and vertically, offset by the mode's side
// margin. The margins keep the black from the initial clear.
func (d *Display) fillGraphicsStrip(yStart, lines int, dst []uint16, fb *fbState) {
	pal := d.palette.Load()
	for line := 0; line < lines; line++ {
		y := yStart + line
		srcY := y / fb.scale
		if y < 0 || srcY >= fb.h {
			continue
		}
		src := fb.pix[srcY*fb.w : srcY*fb.w+fb.w]
		out := dst[line*PanelWidth+fb.margin:]

		if fb.scale == 4 {
			// 256x150: 256*4 = 1024, exact fit.
			o := 0
			for _, idx := range src {
				c := pal[idx]
				out[o] = c
				out[o+1] = c
				out[o+2] = c
				out[o+3] = c
				o += 4
			}
		} else {
			// 320x200: 320*3 = 960 plus 32px margins.
			o := 0
			for _, idx := range src {
				c := pal[idx]
				out[o] = c
				out[o+1] = c
				out[o+2] = c
				o += 3
			}
		}
	}
}

// fillTextStrip renders glyph rows from the bound cell buffer. Per cell it
// reads one glyph byte, expands it through the mask table and combines with
// the cell's attribute LUT entry; a zero glyph byte short-circuits to plain
// background. The cursor overlays its cell's last two glyph rows with solid
// foreground while its blink phase is on.
func (d *Display) fillTextStrip(yStart, lines int, dst []uint16, cells *CellBuffer) {
	lut := d.attrLUT.Load()

	packed := d.cursor.Load()
	cursorCol := int(packed >> 16)
	cursorRow := int(packed & 0xFFFF)
	blinkOn := packed != cursorHidden && (d.frames.Load()>>4)&1 == 1

	for line := 0; line < lines; line++ {
		y := yStart + line
		// Gate on y, not textRow: truncating division maps -15..-1 to row 0.
		textRow := y / GlyphHeight
		if y < 0 || textRow >= Rows {
			continue
		}
		glyphY := y % GlyphHeight

		drawCursor := blinkOn && textRow == cursorRow && glyphY >= GlyphHeight-2

		row := cells[textRow*Cols : textRow*Cols+Cols]
		out := dst[line*PanelWidth:]
		o := 0
		for col, cell := range row {
			e := &lut[cell.Attr]
			bg, xor := e[0], e[1]

			var p0, p1, p2, p3 uint32
			if glyph := d.glyphs[cell.Ch][glyphY]; glyph == 0 {
				p0, p1, p2, p3 = bg, bg, bg, bg
			} else {
				m := &d.masks[glyph]
				p0 = xor&m[0] ^ bg
				p1 = xor&m[1] ^ bg
				p2 = xor&m[2] ^ bg
				p3 = xor&m[3] ^ bg
			}
			if drawCursor && col == cursorCol {
				fg := bg ^ xor
				p0, p1, p2, p3 = fg, fg, fg, fg
			}

			// Low half-word is the left pixel of each pair.
			out[o+0], out[o+1] = uint16(p0), uint16(p0>>16)
			out[o+2], out[o+3] = uint16(p1), uint16(p1>>16)
			out[o+4], out[o+5] = uint16(p2), uint16(p2>>16)
			out[o+6], out[o+7] = uint16(p3), uint16(p3>>16)
			o += 8
		}
	}
}
