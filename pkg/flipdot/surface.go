package flipdot

import (
	"fmt"

	"github.com/pkg/errors"
)

// MaxAddress is the number of positions on the controller's address switch.
const MaxAddress = 16

// addressOffset is added to the switch position before it goes on the wire.
const addressOffset = 17

// Address is the value selected on the address rotary switch of the
// controller PCB.
type Address uint8

func (a Address) Valid() bool {
	return a < MaxAddress
}

// Wire returns the header byte for the address.
func (a Address) Wire() byte {
	return byte(a) + addressOffset
}

// Surface is a 1-bit frame buffer bound to one display address.
// It is not safe for concurrent use.
type Surface struct {
	addr   Address
	width  int
	height int
	pix    []byte
}

// New returns a blank surface of width x height pixels for the display at addr.
func New(width, height int, addr Address) (*Surface, error) {
	if !addr.Valid() {
		return nil, errors.Wrapf(ErrInvalidAddress, "got %d, want 0-%d", addr, MaxAddress-1)
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "got %dx%d", width, height)
	}

	return &Surface{
		addr:   addr,
		width:  width,
		height: height,
		pix:    make([]byte, packedLen(width*height)),
	}, nil
}

func packedLen(bits int) int {
	return (bits + 7) / 8
}

func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

func (s *Surface) Address() Address {
	return s.addr
}

// Aligned reports whether the pixel count is a whole number of bytes. The
// resolution byte in the frame header is only exact for aligned surfaces.
func (s *Surface) Aligned() bool {
	return s.width*s.height%8 == 0
}

func (s *Surface) index(x, y int) (int, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	return x*s.height + y, true
}

// Set turns the pixel at (x, y) on or off. Coordinates outside the surface
// are ignored.
func (s *Surface) Set(x, y int, on bool) {
	i, ok := s.index(x, y)
	if !ok {
		return
	}
	if on {
		s.pix[i/8] |= 1 << (i % 8)
	} else {
		s.pix[i/8] &^= 1 << (i % 8)
	}
}

// At reports whether the pixel at (x, y) is on. It is false outside the surface.
func (s *Surface) At(x, y int) bool {
	i, ok := s.index(x, y)
	if !ok {
		return false
	}
	return s.pix[i/8]&(1<<(i%8)) != 0
}

func (s *Surface) Clear() {
	for i := range s.pix {
		s.pix[i] = 0
	}
}

// Fill sets every pixel to on or off. Padding bits past the last pixel stay zero.
func (s *Surface) Fill(on bool) {
	if !on {
		s.Clear()
		return
	}
	for i := range s.pix {
		s.pix[i] = 0xFF
	}
	if rem := s.width * s.height % 8; rem != 0 {
		s.pix[len(s.pix)-1] = 1<<rem - 1
	}
}

// Bytes returns a copy of the packed pixel buffer in wire order.
func (s *Surface) Bytes() []byte {
	return append([]byte(nil), s.pix...)
}

func (s *Surface) String() string {
	return fmt.Sprintf("flipdot.Surface{%dx%d @%d}", s.width, s.height, s.addr)
}
