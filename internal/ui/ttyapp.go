package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	xterm "golang.org/x/term"

	"github.com/rgbpanel/rgbpanel/internal/display"
	"github.com/rgbpanel/rgbpanel/internal/panel"
	"github.com/rgbpanel/rgbpanel/internal/term"
)

// ttyApp previews the panel inside the invoking terminal with truecolor
// half blocks. It is advisory: the frame is nearest-sampled to whatever
// size the terminal happens to have.
type ttyApp struct {
	cfg  Config
	p    *panel.Panel
	term *term.Terminal
}

func newTTYApp(cfg Config, p *panel.Panel, t *term.Terminal) *ttyApp {
	return &ttyApp{cfg: cfg, p: p, term: t}
}

func (a *ttyApp) Run(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	oldState, err := xterm.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer xterm.Restore(fd, oldState)

	if err := syscall.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("nonblocking stdin: %w", err)
	}
	defer syscall.SetNonblock(fd, false)

	// Alternate screen with the hardware cursor parked.
	os.Stdout.WriteString("\x1b[?1049h\x1b[?25l")
	defer os.Stdout.WriteString("\x1b[0m\x1b[?25h\x1b[?1049l")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.readKeys(ctx, cancel, fd)
	go a.p.Run(ctx)

	// The preview repaints slower than the panel scans out; FrameRGBA
	// copies under the panel lock so the sample is always a whole frame.
	ticker := time.NewTicker(time.Second / 10)
	defer ticker.Stop()

	var rgba []byte
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		rgba = a.p.FrameRGBA(rgba)
		a.paint(rgba)
	}
}

// readKeys feeds raw stdin into the console key queue. Ctrl-C ends the run.
func (a *ttyApp) readKeys(ctx context.Context, cancel context.CancelFunc, fd int) {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := syscall.Read(fd, buf)
		if n > 0 {
			b := buf[0]
			switch b {
			case 0x03:
				cancel()
				return
			case '\r':
				b = '\n'
			case 0x7F:
				b = 0x08
			}
			a.term.PushKey(b)
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
		if n == 0 {
			time.Sleep(5 * time.Millisecond)
		}
	}
}

// paint renders the frame as half blocks, two panel samples per cell.
func (a *ttyApp) paint(rgba []byte) {
	cols, rows, err := xterm.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 1 {
		return
	}
	rows-- // keep a status line

	var b strings.Builder
	b.Grow(cols * rows * 40)
	b.WriteString("\x1b[H")
	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			x := tx * display.PanelWidth / cols
			topY := ty * 2 * display.PanelHeight / (rows * 2)
			botY := (ty*2 + 1) * display.PanelHeight / (rows * 2)
			tr, tg, tb := sampleRGBA(rgba, x, topY)
			br, bg, bb := sampleRGBA(rgba, x, botY)
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				tr, tg, tb, br, bg, bb)
		}
		b.WriteString("\x1b[0m\r\n")
	}
	b.WriteString(a.cfg.Title + " tty preview, Ctrl-C quits")
	os.Stdout.WriteString(b.String())
}

func sampleRGBA(rgba []byte, x, y int) (r, g, b byte) {
	off := (y*display.PanelWidth + x) * 4
	return rgba[off], rgba[off+1], rgba[off+2]
}
