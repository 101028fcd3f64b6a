package demo

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/rgbpanel/rgbpanel/internal/display"
	"github.com/rgbpanel/rgbpanel/internal/gfx"
)

// RunScript executes a Lua drawing script against the demo's display. The
// script sees clear/pixel/hline/vline/rect/fillrect/blit/palette/mode/vsync/
// cells as globals. Lua errors come back as the returned error; the display
// is put back into text mode either way.
func (dm *Demo) RunScript(ctx context.Context, path string) error {
	err := dm.runScriptFile(ctx, path)
	if merr := dm.d.SetMode(display.ModeText); err == nil {
		err = merr
	}
	return err
}

func (dm *Demo) runScriptFile(ctx context.Context, path string) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)
	dm.bind(L)
	return L.DoFile(path)
}

// runScriptSource mirrors runScriptFile for in-memory sources. The display
// stays in whatever mode the script left it.
func (dm *Demo) runScriptSource(ctx context.Context, src string) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)
	dm.bind(L)
	return L.DoString(src)
}

// bind installs the drawing API. Coordinates follow the gfx conventions:
// everything clips silently and does nothing while the display is in text
// mode, so a script cannot crash the host whatever it draws.
func (dm *Demo) bind(L *lua.LState) {
	reg := func(name string, fn lua.LGFunction) {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	reg("clear", func(L *lua.LState) int {
		dm.gfx.Clear(byte(L.CheckInt(1)))
		return 0
	})
	reg("pixel", func(L *lua.LState) int {
		dm.gfx.Pixel(L.CheckInt(1), L.CheckInt(2), byte(L.CheckInt(3)))
		return 0
	})
	reg("hline", func(L *lua.LState) int {
		dm.gfx.HLine(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), byte(L.CheckInt(4)))
		return 0
	})
	reg("vline", func(L *lua.LState) int {
		dm.gfx.VLine(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), byte(L.CheckInt(4)))
		return 0
	})
	reg("rect", func(L *lua.LState) int {
		dm.gfx.Rect(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), byte(L.CheckInt(5)))
		return 0
	})
	reg("fillrect", func(L *lua.LState) int {
		dm.gfx.FillRect(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), byte(L.CheckInt(5)))
		return 0
	})

	// blit(x, y, w, h, data [, transparent]) takes the pixels as a Lua
	// string, one palette index per byte, rows tightly packed.
	reg("blit", func(L *lua.LState) int {
		x, y := L.CheckInt(1), L.CheckInt(2)
		w, h := L.CheckInt(3), L.CheckInt(4)
		data := []byte(L.CheckString(5))
		dm.gfx.Blit(data, x, y, w, h, w, L.OptInt(6, gfx.NoTransparency))
		return 0
	})

	// palette(i) reads an entry, palette(i, rgb565) writes it.
	reg("palette", func(L *lua.LState) int {
		i := L.CheckInt(1)
		if L.GetTop() >= 2 {
			dm.d.SetPaletteEntry(i, uint16(L.CheckInt(2)))
			return 0
		}
		L.Push(lua.LNumber(dm.d.PaletteEntry(i)))
		return 1
	})

	// mode(m) returns true, or false plus the error text.
	reg("mode", func(L *lua.LState) int {
		if err := dm.d.SetMode(display.Mode(L.CheckInt(1))); err != nil {
			L.Push(lua.LFalse)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		L.Push(lua.LTrue)
		return 1
	})

	reg("vsync", func(L *lua.LState) int {
		dm.d.WaitVSync()
		return 0
	})

	// cells(col, row, text [, attr]) writes through the terminal.
	reg("cells", func(L *lua.LState) int {
		col, row := L.CheckInt(1), L.CheckInt(2)
		text := L.CheckString(3)
		if L.GetTop() >= 4 {
			attr := byte(L.CheckInt(4))
			dm.term.SetAttr(attr&0x0F, attr>>4)
		}
		dm.term.MoveTo(col, row)
		dm.term.WriteString(text)
		return 0
	})
}
