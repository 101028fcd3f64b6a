package imgconv

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rgbpanel/rgbpanel/internal/display"
)

// Container layout for stored indexed-color images. The fixed-size header
// is followed directly by width*height palette indices in row-major order.
const (
	fbMagic    = "FB1\n"
	offMagic   = 0x00 // 4 bytes
	offWidth   = 0x04 // uint16 big-endian
	offHeight  = 0x06 // uint16 big-endian
	HeaderSize = 0x08

	// Dimensions are capped at the panel size; a larger image could never
	// be shown anyway.
	MaxWidth  = display.PanelWidth
	MaxHeight = display.PanelHeight
)

type Header struct {
	Width  int // 0x04-0x05
	Height int // 0x06-0x07
}

// PixelBytes returns the payload size that must follow the header.
func (h *Header) PixelBytes() int { return h.Width * h.Height }

// ParseHeader checks the container magic and dimension bounds without
// touching the pixel payload.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, errors.New("image too small to contain header")
	}
	if string(data[offMagic:offMagic+4]) != fbMagic {
		return nil, errors.New("bad magic, not an FB1 image")
	}
	h := &Header{
		Width:  int(binary.BigEndian.Uint16(data[offWidth : offWidth+2])),
		Height: int(binary.BigEndian.Uint16(data[offHeight : offHeight+2])),
	}
	if h.Width == 0 || h.Height == 0 {
		return nil, fmt.Errorf("empty image %dx%d", h.Width, h.Height)
	}
	if h.Width > MaxWidth || h.Height > MaxHeight {
		return nil, fmt.Errorf("image %dx%d exceeds panel %dx%d", h.Width, h.Height, MaxWidth, MaxHeight)
	}
	return h, nil
}

// Decode parses the header and returns it together with the pixel payload.
// The returned slice aliases data.
func Decode(data []byte) (*Header, []byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, nil, err
	}
	if len(data) < HeaderSize+h.PixelBytes() {
		return nil, nil, fmt.Errorf("image truncated: header claims %d pixels, %d present",
			h.PixelBytes(), len(data)-HeaderSize)
	}
	return h, data[HeaderSize : HeaderSize+h.PixelBytes()], nil
}

// Encode packs palette indices into the container format.
func Encode(width, height int, pix []byte) ([]byte, error) {
	if width <= 0 || height <= 0 || width > MaxWidth || height > MaxHeight {
		return nil, fmt.Errorf("bad dimensions %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("pixel count %d does not match %dx%d", len(pix), width, height)
	}
	out := make([]byte, HeaderSize+len(pix))
	copy(out[offMagic:], fbMagic)
	binary.BigEndian.PutUint16(out[offWidth:], uint16(width))
	binary.BigEndian.PutUint16(out[offHeight:], uint16(height))
	copy(out[HeaderSize:], pix)
	return out, nil
}
