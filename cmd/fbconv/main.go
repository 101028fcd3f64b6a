package main

import (
	"flag"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/rgbpanel/rgbpanel/internal/display"
	"github.com/rgbpanel/rgbpanel/internal/imgconv"
)

type CLIFlags struct {
	In     string
	Out    string
	Width  int
	Height int
	Filter string
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.In, "in", "", "input image (PNG or JPEG)")
	flag.StringVar(&f.Out, "out", "", "output .fb path")
	flag.IntVar(&f.Width, "width", 0, "target width (0 derives it from -height keeping aspect)")
	flag.IntVar(&f.Height, "height", 0, "target height (0 derives it from -width keeping aspect)")
	flag.StringVar(&f.Filter, "filter", "smooth", "scaling filter: nearest (pixel art) or smooth")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	if f.In == "" || f.Out == "" {
		log.Fatal("-in and -out are required")
	}

	in, err := os.Open(f.In)
	if err != nil {
		log.Fatalf("open %s: %v", f.In, err)
	}
	img, format, err := image.Decode(in)
	in.Close()
	if err != nil {
		log.Fatalf("decode %s: %v", f.In, err)
	}

	srcW, srcH := img.Bounds().Dx(), img.Bounds().Dy()
	w, h := f.Width, f.Height
	switch {
	case w <= 0 && h <= 0:
		w, h = srcW, srcH
	case w <= 0:
		w = max(1, srcW*h/srcH)
	case h <= 0:
		h = max(1, srcH*w/srcW)
	}
	if w != srcW || h != srcH {
		img = imgconv.Scale(img, w, h, f.Filter == "nearest")
	}

	pal := display.DefaultIndexedPalette()
	pix := imgconv.Quantize(img, &pal)
	data, err := imgconv.Encode(w, h, pix)
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(f.Out, data, 0644); err != nil {
		log.Fatalf("write %s: %v", f.Out, err)
	}
	log.Printf("%s (%s %dx%d) -> %s (%dx%d, %d bytes)",
		f.In, format, srcW, srcH, f.Out, w, h, len(data))
}
