package display

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// glyphTable holds one bitmap row byte per glyph line, bit 7 = leftmost
// pixel. Codes below 0x20 stay blank.
type glyphTable [256][GlyphHeight]byte

// buildGlyphTable rasterizes the 8x16 bitmap face once at startup. The face
// ships as Go source, so there is no font asset to load or embed. Codes the
// face has no glyph for render blank, same as the control range.
func buildGlyphTable() glyphTable {
	var t glyphTable

	face := inconsolata.Regular8x16
	img := image.NewAlpha(image.Rect(0, 0, GlyphWidth, GlyphHeight))
	dr := font.Drawer{Dst: img, Src: image.White, Face: face}

	for code := 0x20; code < 0x100; code++ {
		clear(img.Pix)
		// Dot sits on the baseline; this places the glyph box at (0,0).
		dr.Dot = fixed.P(-face.Left, face.Ascent)
		dr.DrawString(string(rune(code)))

		for y := 0; y < GlyphHeight; y++ {
			var bits byte
			for x := 0; x < GlyphWidth; x++ {
				if img.AlphaAt(x, y).A >= 0x80 {
					bits |= 0x80 >> x
				}
			}
			t[code][y] = bits
		}
	}
	return t
}

// Glyph returns the bitmap rows for one character code. Exposed for content
// tools and tests; the strip renderer reads the table directly.
func (d *Display) Glyph(code byte) [GlyphHeight]byte {
	return d.glyphs[code]
}
