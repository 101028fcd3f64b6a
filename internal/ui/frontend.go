package ui

import (
	"context"
	"fmt"

	"github.com/rgbpanel/rgbpanel/internal/panel"
	"github.com/rgbpanel/rgbpanel/internal/term"
)

// Frontend presents panel frames to the user and feeds keystrokes back into
// the terminal. Run blocks until the user quits or ctx is cancelled; a nil
// return means a clean shutdown.
type Frontend interface {
	Run(ctx context.Context) error
}

// New picks a frontend by name: a native window (ebiten), an SDL2 window
// (sdl) or an in-terminal preview (tty).
func New(name string, cfg Config, p *panel.Panel, t *term.Terminal) (Frontend, error) {
	cfg.Defaults()
	switch name {
	case "ebiten":
		return newEbitenApp(cfg, p, t), nil
	case "sdl":
		return newSDLApp(cfg, p, t), nil
	case "tty":
		return newTTYApp(cfg, p, t), nil
	}
	return nil, fmt.Errorf("unknown frontend %q (want ebiten, sdl or tty)", name)
}
