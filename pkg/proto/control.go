package proto

import (
	"image"
)

// Control is a flip-dot panel that whole frames can be drawn to.
type Control interface {
	Size() image.Point

	Draw(img image.Image) error
	Clear() error
	Close() error
}
