package bitmap

import (
	"image"
	"image/color"

	"github.com/wlcx/hanover-flipdot/pkg/flipdot"
)

// Mono is the color of a single dot: flipped to the bright side or not.
type Mono bool

const (
	Off Mono = false
	On  Mono = true
)

// RGBA implements the color.Color interface.
func (c Mono) RGBA() (r, g, b, a uint32) {
	if c {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

// MonoModel converts colors to Mono by thresholding luminance at half
// intensity. Transparent colors are Off.
var MonoModel = color.ModelFunc(toMono)

func toMono(c color.Color) color.Color {
	if m, ok := c.(Mono); ok {
		return m
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Off
	}
	// same weights as color.GrayModel, on alpha-premultiplied values
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	return Mono(y >= 0x8000)
}

// Canvas exposes a flip-dot surface as a draw.Image.
type Canvas struct {
	s      *flipdot.Surface
	bounds image.Rectangle
}

func NewCanvas(s *flipdot.Surface) *Canvas {
	w, h := s.Size()
	return &Canvas{s: s, bounds: image.Rect(0, 0, w, h)}
}

func (c *Canvas) Surface() *flipdot.Surface {
	return c.s
}

// Bounds implements the image.Image (and draw.Image) interface.
func (c *Canvas) Bounds() image.Rectangle {
	return c.bounds
}

// ColorModel implements the image.Image (and draw.Image) interface.
func (c *Canvas) ColorModel() color.Model {
	return MonoModel
}

// At implements the image.Image (and draw.Image) interface.
func (c *Canvas) At(x, y int) color.Color {
	return Mono(c.s.At(x, y))
}

// Set implements the draw.Image interface. Points outside the canvas are
// dropped by the surface.
func (c *Canvas) Set(x, y int, col color.Color) {
	c.s.Set(x, y, bool(MonoModel.Convert(col).(Mono)))
}

// Pixel is a single dot to draw.
type Pixel struct {
	image.Point
	On bool
}

// DrawPixels applies each pixel in order. Off-canvas pixels are ignored.
func (c *Canvas) DrawPixels(pixels []Pixel) {
	for _, p := range pixels {
		c.s.Set(p.X, p.Y, p.On)
	}
}
