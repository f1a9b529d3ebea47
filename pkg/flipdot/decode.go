package flipdot

import (
	"github.com/pkg/errors"
)

// Frame is a decoded wire frame.
type Frame struct {
	Address    Address
	Resolution byte
	Data       []byte
}

// Parse decodes and verifies a single wire frame.
func Parse(frame []byte) (*Frame, error) {
	// start, address, resolution, end, checksum
	if len(frame) < 1+2+2+1+2 || len(frame)%2 != 0 {
		return nil, errors.Wrapf(ErrMalformedFrame, "length %d", len(frame))
	}
	if frame[0] != startByte {
		return nil, errors.Wrapf(ErrMalformedFrame, "start byte 0x%02X", frame[0])
	}
	end := len(frame) - 3
	if frame[end] != endByte {
		return nil, errors.Wrapf(ErrMalformedFrame, "end byte 0x%02X", frame[end])
	}

	sum, ok := unhex(frame[end+1], frame[end+2])
	if !ok {
		return nil, errors.Wrap(ErrMalformedFrame, "checksum is not hex")
	}
	if want := checksum(frame[1 : end+1]); sum != want {
		return nil, errors.Wrapf(ErrChecksum, "got 0x%02X, want 0x%02X", sum, want)
	}

	body := make([]byte, 0, (end-1)/2)
	for i := 1; i < end; i += 2 {
		b, ok := unhex(frame[i], frame[i+1])
		if !ok {
			return nil, errors.Wrapf(ErrMalformedFrame, "invalid hex at offset %d", i)
		}
		body = append(body, b)
	}

	addr := body[0] - addressOffset
	if body[0] < addressOffset || !Address(addr).Valid() {
		return nil, errors.Wrapf(ErrInvalidAddress, "header byte 0x%02X", body[0])
	}

	return &Frame{
		Address:    Address(addr),
		Resolution: body[1],
		Data:       body[2:],
	}, nil
}

// Surface rebuilds a width x height surface from the frame's pixel data.
func (f *Frame) Surface(width, height int) (*Surface, error) {
	s, err := New(width, height, f.Address)
	if err != nil {
		return nil, err
	}
	if len(f.Data) != len(s.pix) {
		return nil, errors.Wrapf(ErrMalformedFrame, "%d pixel bytes for %dx%d", len(f.Data), width, height)
	}
	copy(s.pix, f.Data)
	return s, nil
}
