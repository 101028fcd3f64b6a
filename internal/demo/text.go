package demo

import "github.com/rgbpanel/rgbpanel/internal/term"

// TextShowcase paints the text-mode demo screen: a banner, the full
// foreground/background attribute grid, a character set dump and a prompt
// that leaves the cursor blinking at the end. The layout fits the grid
// without scrolling, so the screen is stable while it is held.
func TextShowcase(t *term.Terminal) {
	t.Clear()

	t.SetAttr(0, 7)
	t.WriteString(" RGB565 PANEL 1024x600 - TEXT MODE 128x37 ")
	t.SetAttr(7, 0)
	t.WriteString("\n\n")

	const hex = "0123456789ABCDEF"
	for bg := 0; bg < 16; bg++ {
		t.SetAttr(7, 0)
		t.WriteString("  bg ")
		t.WriteByte(hex[bg])
		t.WriteByte(' ')
		for fg := 0; fg < 16; fg++ {
			t.SetAttr(byte(fg), byte(bg))
			t.WriteByte(hex[fg])
			t.WriteByte(hex[fg])
		}
		t.WriteByte('\n')
	}

	t.SetAttr(7, 0)
	for ch := 0x20; ch < 0x7F; ch++ {
		if (ch-0x20)%48 == 0 {
			t.WriteString("\n  ")
		}
		t.WriteByte(byte(ch))
	}
	t.WriteString("\n\n")

	t.SetAttr(10, 0)
	t.WriteString("  ready")
	t.SetAttr(15, 0)
	t.WriteString("> ")
}
