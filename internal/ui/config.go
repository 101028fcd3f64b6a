package ui

// Config contains window/input related settings.
type Config struct {
	Title     string // window title
	Scale     int    // integer upscaling factor for windowed frontends
	RefreshHz int    // frame step rate driven by the frontend's own tick
	// Later: fullscreen, key remapping.
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "rgbpanel"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.RefreshHz <= 0 {
		c.RefreshHz = 50
	}
}
