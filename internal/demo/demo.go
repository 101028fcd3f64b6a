// Package demo drives the reference content shown by cmd/paneldemo: a text
// showcase, animated drawing primitives in both graphics modes, a vector
// scene with palette cycling and an optional Lua-scripted phase.
package demo

import (
	"context"
	"log"
	"time"

	"github.com/rgbpanel/rgbpanel/internal/display"
	"github.com/rgbpanel/rgbpanel/internal/gfx"
	"github.com/rgbpanel/rgbpanel/internal/term"
)

// Config adjusts demo pacing and content.
type Config struct {
	PhaseFrames int    // frames to hold each demo phase
	Script      string // optional Lua drawing script, run as its own phase
	// Later: interactive phase select from the key queue.
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.PhaseFrames <= 0 {
		c.PhaseFrames = 150
	}
}

// Demo owns the phase rotation.
type Demo struct {
	cfg  Config
	d    *display.Display
	term *term.Terminal
	gfx  *gfx.Canvas
}

func New(cfg Config, d *display.Display, t *term.Terminal) *Demo {
	cfg.Defaults()
	return &Demo{cfg: cfg, d: d, term: t, gfx: gfx.New(d)}
}

// Run cycles through the demo phases until ctx is cancelled. Script errors
// are logged and skipped; mode-switch failures end the run.
func (dm *Demo) Run(ctx context.Context) error {
	for {
		if err := dm.textPhase(ctx); err != nil {
			return err
		}
		if err := dm.primitivesPhase(ctx, display.ModeGraphicsA); err != nil {
			return err
		}
		if err := dm.scenePhase(ctx); err != nil {
			return err
		}
		if dm.cfg.Script != "" {
			if err := dm.RunScript(ctx, dm.cfg.Script); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Printf("demo: script %s: %v", dm.cfg.Script, err)
			}
		}
		if err := dm.primitivesPhase(ctx, display.ModeGraphicsB); err != nil {
			return err
		}
	}
}

func (dm *Demo) textPhase(ctx context.Context) error {
	if err := dm.d.SetMode(display.ModeText); err != nil {
		return err
	}
	TextShowcase(dm.term)
	return dm.holdFrames(ctx, dm.cfg.PhaseFrames)
}

func (dm *Demo) primitivesPhase(ctx context.Context, mode display.Mode) error {
	if err := dm.d.SetMode(mode); err != nil {
		return err
	}
	w, h := dm.d.FramebufferSize()
	sprite := BallSprite()
	for frame := 0; frame < dm.cfg.PhaseFrames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		DrawPrimitives(dm.gfx, w, h, frame)
		if mode == display.ModeGraphicsB {
			// The smaller mode also shows the sprite mirrored.
			dm.gfx.BlitFlip(sprite, w-24, 8, spriteSize, spriteSize, spriteSize, 0, true, false)
		}
		dm.d.WaitVSync()
	}
	return dm.d.SetMode(display.ModeText)
}

// holdFrames waits until the panel has scanned out n more frames. Used for
// pacing in text mode, where the vsync gate does not block.
func (dm *Demo) holdFrames(ctx context.Context, n int) error {
	target := dm.d.FrameCount() + uint32(n)
	for dm.d.FrameCount() < target {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
	return nil
}
