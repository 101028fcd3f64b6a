package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rgbpanel/rgbpanel/internal/display"
	"github.com/rgbpanel/rgbpanel/internal/panel"
	"github.com/rgbpanel/rgbpanel/internal/term"
)

type ebitenApp struct {
	cfg  Config
	p    *panel.Panel
	term *term.Terminal
	ctx  context.Context
	tex  *ebiten.Image
	rgba []byte

	paused   bool
	showHelp bool
}

func newEbitenApp(cfg Config, p *panel.Panel, t *term.Terminal) *ebitenApp {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(display.PanelWidth*cfg.Scale, display.PanelHeight*cfg.Scale)
	ebiten.SetTPS(cfg.RefreshHz)
	return &ebitenApp{cfg: cfg, p: p, term: t}
}

func (a *ebitenApp) Run(ctx context.Context) error {
	a.ctx = ctx
	return ebiten.RunGame(a)
}

func (a *ebitenApp) Update() error {
	select {
	case <-a.ctx.Done():
		return ebiten.Termination
	default:
	}

	// Typed text goes straight to the console; app controls live on the
	// function keys so they never collide with input.
	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 0x80 {
			a.term.PushKey(byte(r))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.term.PushKey('\n')
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.term.PushKey(0x08)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.term.PushKey('\t')
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.showHelp = !a.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		_ = a.saveScreenshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if !a.paused {
		a.p.StepFrame()
	}
	return nil
}

func (a *ebitenApp) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(display.PanelWidth, display.PanelHeight)
	}
	a.rgba = a.p.FrameRGBA(a.rgba)
	a.tex.WritePixels(a.rgba)
	screen.DrawImage(a.tex, nil)

	if a.showHelp {
		overlay := ebiten.NewImage(280, 104)
		overlay.Fill(color.RGBA{0, 0, 0, 160})
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(8, 8)
		screen.DrawImage(overlay, op)
		lines := []string{
			"rgbpanel:",
			"  type to write to the console",
			"  F1  toggle this help",
			"  F2  pause the scanout",
			"  F12 screenshot",
			"  Esc quit",
		}
		for i, s := range lines {
			ebitenutil.DebugPrintAt(screen, s, 16, 16+i*14)
		}
	}
}

func (a *ebitenApp) Layout(outW, outH int) (int, int) {
	return display.PanelWidth, display.PanelHeight
}

func (a *ebitenApp) saveScreenshot() error {
	img := &image.RGBA{
		Pix:    a.p.FrameRGBA(nil),
		Stride: 4 * display.PanelWidth,
		Rect:   image.Rect(0, 0, display.PanelWidth, display.PanelHeight),
	}
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("screenshot_%s.png", ts)
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
