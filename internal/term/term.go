// Package term implements the text console that owns the display's cell
// grid. It registers itself as the display's hook set, so mode switches
// re-link its buffer, flush its key queue and restore its cursor without the
// console and the display knowing each other's internals.
package term

import (
	"sync"

	"github.com/rgbpanel/rgbpanel/internal/display"
)

const tabWidth = 8

// keyQueueDepth bounds typed-ahead input; keys beyond it are dropped.
const keyQueueDepth = 64

// Terminal is a 128x37 character console with an attribute state, cursor,
// scrolling and a small keyboard queue. Writes land in its cell buffer; the
// display renders that buffer whenever text mode is active.
//
// All methods are safe for concurrent use. The display reads the cell buffer
// without taking the terminal's lock; a strip rendered mid-write may show a
// partially applied update for one frame, which is the same transient the
// real scanout hardware produces.
type Terminal struct {
	d *display.Display

	mu      sync.Mutex
	cells   display.CellBuffer
	palette [16]uint16
	attr    byte
	col     int
	row     int
	veto    func() error

	keys chan byte
}

// New builds a terminal, wires it into the display's hooks and binds its
// buffer as the active text grid.
func New(d *display.Display) *Terminal {
	t := &Terminal{
		d:       d,
		palette: display.DefaultTextPalette(),
		attr:    0x07, // light gray on black
		keys:    make(chan byte, keyQueueDepth),
	}
	t.clearLocked()

	d.SetHooks(display.Hooks{
		// Copy under the lock; the display reads the result outside it.
		TextPalette: func() *[16]uint16 {
			t.mu.Lock()
			p := t.palette
			t.mu.Unlock()
			return &p
		},
		EnterGraphics: t.enterGraphics,
		ExitGraphics:  t.exitGraphics,
		TextBuffer:    func() *display.CellBuffer { return &t.cells },
		FlushInput:    t.flushKeys,
	})
	d.BindCellBuffer(&t.cells)
	d.RefreshTextPalette()
	d.SetCursor(0, 0)
	return t
}

func (t *Terminal) enterGraphics() error {
	t.mu.Lock()
	veto := t.veto
	t.mu.Unlock()
	if veto != nil {
		return veto()
	}
	return nil
}

// exitGraphics re-mirrors the cursor: graphics-side code may have hidden or
// moved the display cursor while it owned the screen.
func (t *Terminal) exitGraphics() {
	t.mu.Lock()
	t.syncCursorLocked()
	t.mu.Unlock()
}

// SetGraphicsVeto installs a check consulted when the display wants to enter
// a graphics mode. A non-nil return blocks the switch. Pass nil to clear.
func (t *Terminal) SetGraphicsVeto(fn func() error) {
	t.mu.Lock()
	t.veto = fn
	t.mu.Unlock()
}

// Write implements io.Writer over the console.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	for _, ch := range p {
		t.writeByteLocked(ch)
	}
	t.syncCursorLocked()
	t.mu.Unlock()
	return len(p), nil
}

// WriteString prints s at the cursor, interpreting \n \r \t and backspace.
func (t *Terminal) WriteString(s string) {
	t.mu.Lock()
	for i := 0; i < len(s); i++ {
		t.writeByteLocked(s[i])
	}
	t.syncCursorLocked()
	t.mu.Unlock()
}

// WriteByte prints a single byte at the cursor.
func (t *Terminal) WriteByte(ch byte) {
	t.mu.Lock()
	t.writeByteLocked(ch)
	t.syncCursorLocked()
	t.mu.Unlock()
}

func (t *Terminal) writeByteLocked(ch byte) {
	switch ch {
	case '\n':
		t.col = 0
		t.row++
	case '\r':
		t.col = 0
	case '\b':
		if t.col > 0 {
			t.col--
		}
	case '\t':
		t.col = (t.col + tabWidth) &^ (tabWidth - 1)
		if t.col >= display.Cols {
			t.col = 0
			t.row++
		}
	default:
		if ch < 0x20 {
			return
		}
		t.cells[t.row*display.Cols+t.col] = display.Cell{Ch: ch, Attr: t.attr}
		t.col++
		if t.col >= display.Cols {
			t.col = 0
			t.row++
		}
	}
	if t.row >= display.Rows {
		t.scrollLocked()
		t.row = display.Rows - 1
	}
}

// scrollLocked moves every row up by one and blanks the last row with the
// current attribute.
func (t *Terminal) scrollLocked() {
	copy(t.cells[:], t.cells[display.Cols:])
	blank := display.Cell{Ch: ' ', Attr: t.attr}
	for i := (display.Rows - 1) * display.Cols; i < len(t.cells); i++ {
		t.cells[i] = blank
	}
}

// Clear blanks the grid with the current attribute and homes the cursor.
func (t *Terminal) Clear() {
	t.mu.Lock()
	t.clearLocked()
	t.syncCursorLocked()
	t.mu.Unlock()
}

func (t *Terminal) clearLocked() {
	blank := display.Cell{Ch: ' ', Attr: t.attr}
	for i := range t.cells {
		t.cells[i] = blank
	}
	t.col, t.row = 0, 0
}

// SetAttr selects the colors for subsequent writes, as palette indices.
func (t *Terminal) SetAttr(fg, bg byte) {
	t.mu.Lock()
	t.attr = bg<<4 | fg&0x0F
	t.mu.Unlock()
}

// MoveTo places the cursor, clamped to the grid.
func (t *Terminal) MoveTo(col, row int) {
	t.mu.Lock()
	t.col = clamp(col, 0, display.Cols-1)
	t.row = clamp(row, 0, display.Rows-1)
	t.syncCursorLocked()
	t.mu.Unlock()
}

// CursorPos reports the cursor cell.
func (t *Terminal) CursorPos() (col, row int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.col, t.row
}

// Cell returns a copy of the cell at the given position, or a zero Cell
// outside the grid.
func (t *Terminal) Cell(col, row int) display.Cell {
	if col < 0 || col >= display.Cols || row < 0 || row >= display.Rows {
		return display.Cell{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cells[row*display.Cols+col]
}

func (t *Terminal) syncCursorLocked() {
	t.d.SetCursor(t.col, t.row)
}

// SetTextPalette replaces the 16-color text palette and pushes the change
// through to the display's attribute tables.
func (t *Terminal) SetTextPalette(pal [16]uint16) {
	t.mu.Lock()
	t.palette = pal
	t.mu.Unlock()
	t.d.RefreshTextPalette()
}

// TextPalette returns a copy of the active text palette.
func (t *Terminal) TextPalette() [16]uint16 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.palette
}

// PushKey queues one byte of keyboard input. When the queue is full the key
// is dropped.
func (t *Terminal) PushKey(ch byte) {
	select {
	case t.keys <- ch:
	default:
	}
}

// ReadKey pops the oldest queued key, if any.
func (t *Terminal) ReadKey() (byte, bool) {
	select {
	case ch := <-t.keys:
		return ch, true
	default:
		return 0, false
	}
}

func (t *Terminal) flushKeys() {
	for {
		select {
		case <-t.keys:
		default:
			return
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
