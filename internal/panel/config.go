package panel

import "github.com/rgbpanel/rgbpanel/internal/display"

// Config contains settings that affect the scanout simulation.
type Config struct {
	StripLines int // lines per bounce-buffer refill request
	RefreshHz  int // frame pacing for Run
	// Later: strip timing jitter to stress late-fill behavior.
}

// Defaults fills missing fields with the hardware's values.
func (c *Config) Defaults() {
	if c.StripLines <= 0 {
		c.StripLines = display.StripLines
	}
	if c.RefreshHz <= 0 {
		c.RefreshHz = 50
	}
}
