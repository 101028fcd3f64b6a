package main

import (
	"context"
	"flag"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rgbpanel/rgbpanel/internal/demo"
	"github.com/rgbpanel/rgbpanel/internal/display"
	"github.com/rgbpanel/rgbpanel/internal/gfx"
	"github.com/rgbpanel/rgbpanel/internal/imgconv"
	"github.com/rgbpanel/rgbpanel/internal/panel"
	"github.com/rgbpanel/rgbpanel/internal/term"
	"github.com/rgbpanel/rgbpanel/internal/ui"
)

type CLIFlags struct {
	Frontend string
	Scale    int
	Title    string
	Refresh  int
	Script   string
	Image    string

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	Expect   string // expected frame CRC32 hex (e.g., "1a2b3c4d")
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.Frontend, "frontend", "ebiten", "frontend: ebiten, sdl or tty")
	flag.IntVar(&f.Scale, "scale", 1, "window scale")
	flag.StringVar(&f.Title, "title", "rgbpanel", "window title")
	flag.IntVar(&f.Refresh, "hz", 50, "refresh rate")
	flag.StringVar(&f.Script, "script", "", "Lua drawing script for the demo's script phase")
	flag.StringVar(&f.Image, "image", "", "show a .fb image instead of the demo loop")

	// headless options
	flag.BoolVar(&f.Headless, "headless", false, "render without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to render in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last frame to PNG at path")
	flag.StringVar(&f.Expect, "expect", "", "assert frame CRC32 (hex)")
	flag.Parse()
	return f
}

func runHeadless(p *panel.Panel, frames int, pngPath, expectCRC string) error {
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		p.StepFrame()
	}
	dur := time.Since(start)

	rgba := p.FrameRGBA(nil)
	crc := crc32.ChecksumIEEE(rgba)
	fps := float64(frames) / dur.Seconds()

	log.Printf("headless: frames=%d elapsed=%s fps=%.2f frame_crc32=%08x",
		frames, dur.Truncate(time.Millisecond), fps, crc)

	if pngPath != "" {
		if err := saveFramePNG(rgba, display.PanelWidth, display.PanelHeight, pngPath); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", pngPath)
	}

	if expectCRC != "" {
		// normalize expected hex (allow with/without 0x, upper/lowercase)
		want := strings.TrimPrefix(strings.ToLower(expectCRC), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func saveFramePNG(pix []byte, w, h int, path string) error {
	img := &image.RGBA{
		Pix:    make([]byte, len(pix)),
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	copy(img.Pix, pix)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// showImage decodes a .fb file and blits it centered into 320x200 graphics.
func showImage(d *display.Display, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	h, pix, err := imgconv.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := d.SetMode(display.ModeGraphicsA); err != nil {
		return err
	}
	w, fh := d.FramebufferSize()
	if h.Width > w || h.Height > fh {
		return fmt.Errorf("image %dx%d does not fit the %dx%d graphics mode",
			h.Width, h.Height, w, fh)
	}

	c := gfx.New(d)
	c.Clear(0)
	c.Blit(pix, (w-h.Width)/2, (fh-h.Height)/2, h.Width, h.Height, h.Width, gfx.NoTransparency)
	return nil
}

func main() {
	f := parseFlags()

	d := display.New(display.Config{})
	trm := term.New(d)

	pcfg := panel.Config{RefreshHz: f.Refresh}
	pcfg.Defaults()
	p := panel.New(d, pcfg)

	if f.Headless {
		if f.Image != "" {
			if err := showImage(d, f.Image); err != nil {
				log.Fatalf("show image: %v", err)
			}
		} else {
			demo.TextShowcase(trm)
		}
		if err := runHeadless(p, f.Frames, f.PNGOut, f.Expect); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if f.Image != "" {
		if err := showImage(d, f.Image); err != nil {
			log.Fatalf("show image: %v", err)
		}
	} else {
		dm := demo.New(demo.Config{Script: f.Script}, d, trm)
		go func() {
			if err := dm.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("demo: %v", err)
			}
		}()
	}

	uiCfg := ui.Config{Title: f.Title, Scale: f.Scale, RefreshHz: f.Refresh}
	fe, err := ui.New(f.Frontend, uiCfg, p, trm)
	if err != nil {
		log.Fatal(err)
	}
	if err := fe.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
