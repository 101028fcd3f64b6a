package ui

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/rgbpanel/rgbpanel/internal/display"
	"github.com/rgbpanel/rgbpanel/internal/panel"
	"github.com/rgbpanel/rgbpanel/internal/term"
)

type sdlApp struct {
	cfg  Config
	p    *panel.Panel
	term *term.Terminal
}

func newSDLApp(cfg Config, p *panel.Panel, t *term.Terminal) *sdlApp {
	return &sdlApp{cfg: cfg, p: p, term: t}
}

// Run owns the SDL window for its whole lifetime. SDL wants setup, event
// loop and teardown on a single OS thread.
func (a *sdlApp) Run(ctx context.Context) error {
	runtime.LockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("init sdl: %w", err)
	}
	defer sdl.Quit()

	win, err := sdl.CreateWindow(a.cfg.Title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(display.PanelWidth*a.cfg.Scale), int32(display.PanelHeight*a.cfg.Scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()

	ren, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer ren.Destroy()

	if err := ren.SetLogicalSize(display.PanelWidth, display.PanelHeight); err != nil {
		log.Printf("sdl: logical size: %v", err)
	}
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	// The streaming texture shares the panel's pixel format, so each frame
	// uploads without conversion.
	tex, err := ren.CreateTexture(sdl.PIXELFORMAT_RGB565, sdl.TEXTUREACCESS_STREAMING,
		int32(display.PanelWidth), int32(display.PanelHeight))
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	defer tex.Destroy()

	sdl.StartTextInput()
	defer sdl.StopTextInput()

	const pitch = display.PanelWidth * 2
	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.RefreshHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch event.GetType() {
			case sdl.QUIT:
				return nil
			case sdl.TEXTINPUT:
				text := event.(*sdl.TextInputEvent).Text
				for _, b := range text {
					if b == 0 {
						break
					}
					if b < 0x80 {
						a.term.PushKey(b)
					}
				}
			case sdl.KEYDOWN:
				switch event.(*sdl.KeyboardEvent).Keysym.Sym {
				case sdl.K_RETURN:
					a.term.PushKey('\n')
				case sdl.K_BACKSPACE:
					a.term.PushKey(0x08)
				case sdl.K_TAB:
					a.term.PushKey('\t')
				case sdl.K_ESCAPE:
					return nil
				}
			}
		}

		a.p.StepFrame()
		frame := a.p.Frame()
		if err := tex.Update(nil, unsafe.Pointer(&frame[0]), pitch); err != nil {
			log.Printf("sdl: texture update: %v", err)
			continue
		}
		ren.Clear()
		ren.Copy(tex, nil, nil)
		ren.Present()
	}
}
