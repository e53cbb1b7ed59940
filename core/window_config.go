package core

// WindowConfig describes the desktop window. Mobile hosts ignore it; the
// surface size comes from the platform.
type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1280,
		Height:    720,
		Title:     "PBR Viewer",
		Resizable: true,
		VSync:     true,
	}
}
