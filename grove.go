package grove

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// toRGBA converts to a premultiplied color.RGBA for ebiten fills.
func (c Color) toRGBA() color.RGBA {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	a := clamp(c.A)
	return color.RGBA{
		R: uint8(clamp(c.R)*a*255 + 0.5),
		G: uint8(clamp(c.G)*a*255 + 0.5),
		B: uint8(clamp(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
