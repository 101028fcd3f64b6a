package display

// buildMaskTable expands every possible glyph row byte into four selector
// words, one per pixel pair. Each half-word is all ones where the glyph bit
// is set (foreground) and all zeros where it is clear; the low half-word is
// the left pixel of the pair, matching little-endian pixel order.
func buildMaskTable() [256][4]uint32 {
	sel := [4]uint32{0x00000000, 0xFFFF0000, 0x0000FFFF, 0xFFFFFFFF}
	var t [256][4]uint32
	for b := 0; b < 256; b++ {
		t[b][0] = sel[(b>>6)&0x03]
		t[b][1] = sel[(b>>4)&0x03]
		t[b][2] = sel[(b>>2)&0x03]
		t[b][3] = sel[b&0x03]
	}
	return t
}

// buildAttrLUT derives per-attribute compositing constants from a 16-color
// palette: entry[0] is the background pixel pair, entry[1] the fg^bg pair.
// The strip renderer combines them as (xor & mask) ^ bg, which picks the
// foreground color exactly where mask bits are set with no branch per pixel.
func buildAttrLUT(pal *[16]uint16) *[256][2]uint32 {
	var lut [256][2]uint32
	for attr := 0; attr < 256; attr++ {
		fg := pixelPair(pal[attr&0x0F])
		bg := pixelPair(pal[(attr>>4)&0x0F])
		lut[attr][0] = bg
		lut[attr][1] = fg ^ bg
	}
	return &lut
}

// pixelPair replicates one RGB565 value into both half-words of a pair.
func pixelPair(c uint16) uint32 {
	return uint32(c)<<16 | uint32(c)
}
