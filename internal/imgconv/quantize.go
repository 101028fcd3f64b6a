package imgconv

import "image"

// expand565 widens packed 5/6/5 channels to 8 bits; the high bits are
// replicated into the low bits so full intensity maps to 255.
func expand565(c uint16) (r, g, b int) {
	r5 := int(c >> 11 & 0x1F)
	g6 := int(c >> 5 & 0x3F)
	b5 := int(c & 0x1F)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// Quantize maps every pixel of img to its nearest palette entry by squared
// RGB distance. Ties go to the lower index. The result is row-major, one
// index per pixel.
func Quantize(img image.Image, pal *[256]uint16) []byte {
	var pr, pg, pb [256]int
	for i, c := range pal {
		pr[i], pg[i], pb[i] = expand565(c)
	}

	bounds := img.Bounds()
	out := make([]byte, bounds.Dx()*bounds.Dy())
	// Real images repeat colors constantly; remember matches already made.
	memo := make(map[uint32]byte)
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r, g, b := int(r16>>8), int(g16>>8), int(b16>>8)
			key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
			idx, ok := memo[key]
			if !ok {
				best := 1 << 30
				for i := 0; i < 256; i++ {
					dr, dg, db := r-pr[i], g-pg[i], b-pb[i]
					if d := dr*dr + dg*dg + db*db; d < best {
						best = d
						idx = byte(i)
					}
				}
				memo[key] = idx
			}
			out[n] = idx
			n++
		}
	}
	return out
}
