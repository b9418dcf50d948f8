// Package entity defines domain entities for the desktop client.
package entity

// Bounds is a rectangle in window content coordinates.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Metrics is the layout slot reported by the renderer for a tab's
// browsing surface.
type Metrics struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Bounds converts renderer metrics into surface bounds.
func (m Metrics) Bounds() Bounds {
	return Bounds{X: m.Left, Y: m.Top, Width: m.Width, Height: m.Height}
}

// FullscreenBounds returns bounds covering the whole content area anchored at
// the origin.
func FullscreenBounds(content Bounds) Bounds {
	return Bounds{Width: content.Width, Height: content.Height}
}
