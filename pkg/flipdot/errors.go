package flipdot

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidAddress = errors.New("flipdot: address out of range")
	ErrInvalidSize    = errors.New("flipdot: width and height must be positive")
	ErrBufferTooSmall = errors.New("flipdot: buffer too small for frame")
	ErrMalformedFrame = errors.New("flipdot: malformed frame")
	ErrChecksum       = errors.New("flipdot: checksum mismatch")
)
