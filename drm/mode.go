package drm

// Mode describes one display mode a connector can drive, or a custom
// mode requested by the compositor outside the connector's advertised
// list (spec's "Mode variant: fixed | custom").
type Mode struct {
	Width, Height uint32
	Refresh       uint32 // mHz
	Preferred     bool
	clock         uint32
	raw           modeModeInfo
}

// RefreshHz returns the refresh rate in Hz as a float, converting the
// millihertz value stored in Refresh without rounding.
func (m Mode) RefreshHz() float64 {
	return float64(m.Refresh) / 1000.0
}

func modeFromRaw(raw modeModeInfo, preferred bool) Mode {
	n := 0
	for n < len(raw.Name) && raw.Name[n] != 0 {
		n++
	}
	return Mode{
		Width:     uint32(raw.Hdisplay),
		Height:    uint32(raw.Vdisplay),
		Refresh:   raw.Vrefresh * 1000,
		Preferred: preferred,
		clock:     raw.Clock,
		raw:       raw,
	}
}

// CustomMode builds a Mode outside the connector's advertised list,
// used when the compositor requests a resolution/refresh combination
// the EDID never listed (e.g. a virtual output).
func CustomMode(width, height uint32, refreshMilliHz uint32) Mode {
	return Mode{Width: width, Height: height, Refresh: refreshMilliHz}
}
