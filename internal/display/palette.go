package display

// cgaColors is the classic 16-color text palette in RGB565. It doubles as
// the first 16 entries of the default indexed palette.
var cgaColors = [16]uint16{
	0x0000, // 0: black
	0x0015, // 1: blue
	0x0540, // 2: green
	0x0555, // 3: cyan
	0xA800, // 4: red
	0xA815, // 5: magenta
	0xA520, // 6: brown (dark yellow)
	0xAD55, // 7: light gray
	0x52AA, // 8: dark gray
	0x52BF, // 9: light blue
	0x57EA, // 10: light green
	0x57FF, // 11: light cyan
	0xFAAA, // 12: light red
	0xFABF, // 13: light magenta
	0xFFE0, // 14: yellow
	0xFFFF, // 15: white
}

// DefaultTextPalette returns a copy of the built-in 16-color set.
func DefaultTextPalette() [16]uint16 { return cgaColors }

// defaultIndexedPalette builds the deterministic 256-entry default: the
// 16-color set, a 6x6x6 color cube, then a 24-step gray ramp. Existing
// content is authored against these exact values, truncating integer math
// included, so the formulas must not be "improved".
func defaultIndexedPalette() *[256]uint16 {
	var p [256]uint16
	copy(p[:16], cgaColors[:])

	// 6x6x6 color cube for indices 16-231. Channel level 0-5 maps onto the
	// RGB565 channel range.
	idx := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				r5 := uint16(r * 51 * 31 / 255)
				g6 := uint16(g * 51 * 63 / 255)
				b5 := uint16(b * 51 * 31 / 255)
				p[idx] = r5<<11 | g6<<5 | b5
				idx++
			}
		}
	}

	// 24-step grayscale for indices 232-255: gray = 8, 18, ... 238.
	for i := 0; i < 24; i++ {
		gray := 8 + i*10
		g5 := uint16(gray * 31 / 255)
		g6 := uint16(gray * 63 / 255)
		p[232+i] = g5<<11 | g6<<5 | g5
	}
	return &p
}

// DefaultIndexedPalette returns a fresh copy of the 256-entry default.
func DefaultIndexedPalette() [256]uint16 { return *defaultIndexedPalette() }

// SetPalette replaces the whole indexed palette. The strip renderer picks up
// the new table on its next strip.
func (d *Display) SetPalette(pal *[256]uint16) {
	d.palMu.Lock()
	p := *pal
	d.palette.Store(&p)
	d.palMu.Unlock()
}

// SetPaletteEntry replaces one indexed palette entry. Out-of-range indices
// are ignored.
func (d *Display) SetPaletteEntry(index int, rgb565 uint16) {
	if index < 0 || index > 255 {
		return
	}
	d.palMu.Lock()
	p := *d.palette.Load()
	p[index] = rgb565
	d.palette.Store(&p)
	d.palMu.Unlock()
}

// PaletteEntry reads one indexed palette entry. Out-of-range indices read 0.
func (d *Display) PaletteEntry(index int) uint16 {
	if index < 0 || index > 255 {
		return 0
	}
	return d.palette.Load()[index]
}
