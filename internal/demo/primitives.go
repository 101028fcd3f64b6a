package demo

import "github.com/rgbpanel/rgbpanel/internal/gfx"

const spriteSize = 16

// DrawPrimitives renders one animation frame of the primitives showcase:
// breathing nested rectangles through the 6x6x6 color cube, a scrolling
// grayscale comb along the bottom edge and a bouncing ball sprite.
func DrawPrimitives(c *gfx.Canvas, w, h, frame int) {
	c.Clear(0)

	inner := h / 2
	if inner <= 0 {
		return
	}
	for i := 0; i < 12; i++ {
		inset := (i*8 + frame) % inner
		c.Rect(inset, inset, w-2*inset, h-2*inset, byte(16+(i*18+frame)%216))
	}

	for x := 0; x < w; x += 8 {
		c.VLine(x, h-24, 16, byte(232+(x/8+frame)%24))
	}

	c.FillRect(4, 4, 40, 10, 0)
	c.Rect(4, 4, 40, 10, 15)

	sprite := BallSprite()
	c.Blit(sprite, bounce(frame*2, w-spriteSize), bounce(frame*3, h-spriteSize),
		spriteSize, spriteSize, spriteSize, 0)
}

// BallSprite returns a 16x16 ball with palette index 0 as the transparent
// surround, a red rim and two blue eyes.
func BallSprite() []byte {
	s := make([]byte, spriteSize*spriteSize)
	for y := 0; y < spriteSize; y++ {
		for x := 0; x < spriteSize; x++ {
			dx, dy := x-8, y-8
			switch d := dx*dx + dy*dy; {
			case d <= 25:
				s[y*spriteSize+x] = 14
			case d <= 36:
				s[y*spriteSize+x] = 4
			}
		}
	}
	s[5*spriteSize+6] = 1
	s[5*spriteSize+10] = 1
	return s
}

// bounce maps a monotonic tick onto a triangle wave in [0, max].
func bounce(t, max int) int {
	if max <= 0 {
		return 0
	}
	p := t % (2 * max)
	if p > max {
		p = 2*max - p
	}
	return p
}
