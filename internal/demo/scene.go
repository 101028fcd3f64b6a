package demo

import (
	"context"
	"image"

	"github.com/fogleman/gg"

	"github.com/rgbpanel/rgbpanel/internal/display"
	"github.com/rgbpanel/rgbpanel/internal/gfx"
	"github.com/rgbpanel/rgbpanel/internal/imgconv"
)

// SceneImage renders the demo's vector scene offscreen: a sunset sky, halo
// rings, a mountain ridge and a perspective floor, titled with the default
// bitmap face.
func SceneImage(w, h int) image.Image {
	dc := gg.NewContext(w, h)
	fw, fh := float64(w), float64(h)

	dc.SetRGB(0.04, 0.03, 0.18)
	dc.Clear()

	dc.SetRGB(0.98, 0.75, 0.22)
	dc.DrawCircle(fw*0.68, fh*0.34, fh*0.17)
	dc.Fill()
	dc.SetRGB(0.98, 0.45, 0.28)
	dc.SetLineWidth(2)
	for i := 1; i <= 3; i++ {
		dc.DrawCircle(fw*0.68, fh*0.34, fh*0.17+float64(i*6))
		dc.Stroke()
	}

	dc.SetRGB(0.10, 0.32, 0.22)
	dc.MoveTo(0, fh)
	dc.LineTo(0, fh*0.72)
	dc.LineTo(fw*0.28, fh*0.44)
	dc.LineTo(fw*0.52, fh*0.74)
	dc.LineTo(fw*0.78, fh*0.50)
	dc.LineTo(fw, fh*0.78)
	dc.LineTo(fw, fh)
	dc.ClosePath()
	dc.Fill()

	dc.SetRGB(0.85, 0.30, 0.60)
	dc.SetLineWidth(1)
	for i := 0; i < 6; i++ {
		y := fh*0.82 + float64(i*i)*fh*0.004
		dc.DrawLine(0, y, fw, y)
		dc.Stroke()
	}

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored("RGB565 PANEL", fw/2, fh*0.12, 0.5, 0.5)
	return dc.Image()
}

// scenePhase blits the quantized vector scene and cycles the color cube
// while holding it on screen.
func (dm *Demo) scenePhase(ctx context.Context) error {
	if err := dm.d.SetMode(display.ModeGraphicsA); err != nil {
		return err
	}
	w, h := dm.d.FramebufferSize()

	base := display.DefaultIndexedPalette()
	dm.d.SetPalette(&base)
	idx := imgconv.Quantize(SceneImage(w, h), &base)
	dm.gfx.Blit(idx, 0, 0, w, h, w, gfx.NoTransparency)

	for frame := 0; frame < dm.cfg.PhaseFrames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := 0; i < 216; i++ {
			dm.d.SetPaletteEntry(16+i, base[16+(i+frame)%216])
		}
		dm.d.WaitVSync()
	}

	dm.d.SetPalette(&base)
	return dm.d.SetMode(display.ModeText)
}
