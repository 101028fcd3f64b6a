package display

import (
	"sync"
	"sync/atomic"
)

// Panel geometry. The scanout hardware requests strips of StripLines lines;
// every strip request must be answered synchronously with RGB565 pixels.
const (
	PanelWidth  = 1024
	PanelHeight = 600
	StripLines  = 12

	GlyphWidth  = 8
	GlyphHeight = 16
	Cols        = PanelWidth / GlyphWidth   // 128
	Rows        = PanelHeight / GlyphHeight // 37 (bottom 8 LCD lines stay black)
)

// Cell is one text-mode cell: a glyph code plus a packed color attribute
// (bg << 4 | fg, both indices into the 16-color text palette).
type Cell struct {
	Ch   byte
	Attr byte
}

// CellBuffer is the 128x37 text grid, row-major. The buffer is owned by an
// external collaborator (the terminal); the display only ever reads it.
type CellBuffer [Rows * Cols]Cell

// Hooks are the optional collaborator callbacks. Any field may be nil; a
// missing hook degrades the related behavior but never crashes.
type Hooks struct {
	// TextPalette returns the 16-color RGB565 text palette used to rebuild
	// the attribute LUT. nil result (or nil hook) selects the CGA defaults.
	TextPalette func() *[16]uint16

	// EnterGraphics runs before a graphics framebuffer is allocated. A
	// non-nil error vetoes the mode switch.
	EnterGraphics func() error

	// ExitGraphics runs after leaving a graphics mode, and best-effort on
	// the rollback path when allocation fails.
	ExitGraphics func()

	// TextBuffer returns the cell buffer to re-link after leaving graphics.
	// nil leaves the display with no text buffer until BindCellBuffer.
	TextBuffer func() *CellBuffer

	// FlushInput discards input accumulated while in graphics mode.
	FlushInput func()
}

// cursorHidden marks the packed cursor word as "no cursor".
const cursorHidden = ^uint32(0)

// Display is the scanout renderer core: glyph and mask tables, the two
// palettes with their derived attribute LUT, the mode state machine and the
// vsync gate.
//
// FillStrip and SignalVBlank are called from the scanout context and never
// block, allocate, or take locks. Everything they read is published through
// atomics; control-path methods serialize on mu and swap whole tables or
// state structs so the scanout context always sees a coherent snapshot.
type Display struct {
	glyphs glyphTable
	masks  [256][4]uint32

	attrLUT atomic.Pointer[[256][2]uint32]
	palette atomic.Pointer[[256]uint16]

	mode   atomic.Uint32 // Mode value
	fb     atomic.Pointer[fbState]
	cells  atomic.Pointer[CellBuffer]
	cursor atomic.Uint32 // col<<16 | row, cursorHidden when hidden
	frames atomic.Uint32

	vsyncWaiting atomic.Bool
	vsyncCh      chan struct{}

	hooks atomic.Pointer[Hooks]

	mu       sync.Mutex // serializes mode switches, never touched by FillStrip
	palMu    sync.Mutex // serializes palette read-modify-write, safe inside hooks
	fastPool *pool
	slowPool *pool
}

// Config sizes the two framebuffer pools.
type Config struct {
	FastPoolBytes int // preferred pool (fast local memory on real hardware)
	SlowPoolBytes int // fallback pool, tried when the fast pool cannot serve
}

// Defaults sizes the fast pool for the largest graphics mode and the
// fallback pool like the roomier slow memory it stands in for.
func (c *Config) Defaults() {
	if c.FastPoolBytes == 0 {
		c.FastPoolBytes = gfxAWidth * gfxAHeight
	}
	if c.SlowPoolBytes == 0 {
		c.SlowPoolBytes = PanelWidth * PanelHeight
	}
}

// New builds a ready display: glyphs rasterized, LUTs precomputed, default
// palettes installed, mode TEXT, no cell buffer, cursor hidden.
func New(cfg Config) *Display {
	cfg.Defaults()
	d := &Display{
		glyphs:   buildGlyphTable(),
		masks:    buildMaskTable(),
		vsyncCh:  make(chan struct{}, 1),
		fastPool: newPool(cfg.FastPoolBytes),
		slowPool: newPool(cfg.SlowPoolBytes),
	}
	d.mode.Store(uint32(ModeText))
	d.cursor.Store(cursorHidden)
	d.palette.Store(defaultIndexedPalette())
	d.attrLUT.Store(buildAttrLUT(&cgaColors))
	return d
}

// SetHooks installs (or replaces) the collaborator hook set. Hooks may call
// back into palette and cursor methods, but not into SetMode.
func (d *Display) SetHooks(h Hooks) {
	d.hooks.Store(&h)
}

func (d *Display) hookSet() Hooks {
	if h := d.hooks.Load(); h != nil {
		return *h
	}
	return Hooks{}
}

// BindCellBuffer points the text renderer at an externally owned cell grid.
// Passing nil unbinds it; text mode then renders black.
func (d *Display) BindCellBuffer(cells *CellBuffer) {
	d.cells.Store(cells)
}

// RefreshTextPalette rebuilds the attribute LUT from the TextPalette hook
// (CGA defaults when absent). The display never reads the raw text palette
// during rendering, only the LUT, so the owner of the palette must call this
// after every palette change; a stale LUT renders stale colors.
func (d *Display) RefreshTextPalette() {
	pal := &cgaColors
	if hook := d.hookSet().TextPalette; hook != nil {
		if p := hook(); p != nil {
			pal = p
		}
	}
	d.attrLUT.Store(buildAttrLUT(pal))
}

// SetCursor places the blinking underscore cursor. Negative coordinates hide
// it; coordinates beyond the grid simply never match a rendered cell.
func (d *Display) SetCursor(col, row int) {
	if col < 0 || row < 0 {
		d.cursor.Store(cursorHidden)
		return
	}
	d.cursor.Store(uint32(col&0xFFFF)<<16 | uint32(row&0xFFFF))
}

// HideCursor removes the cursor overlay.
func (d *Display) HideCursor() {
	d.cursor.Store(cursorHidden)
}

// FrameCount reports how many top-of-frame strips have been rendered.
func (d *Display) FrameCount() uint32 {
	return d.frames.Load()
}
