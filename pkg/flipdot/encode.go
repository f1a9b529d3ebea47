package flipdot

import (
	"io"

	"github.com/pkg/errors"
)

const (
	startByte = 0x02
	endByte   = 0x03
)

// FrameSize returns the exact length in bytes of an encoded frame: the raw
// start and end bytes plus two hex digits for each of address, resolution,
// pixel bytes and checksum.
func (s *Surface) FrameSize() int {
	return 2*(2+len(s.pix)+1) + 2
}

// resolution is the pixel byte count as the controller expects it. The
// division truncates and the result wraps at one byte.
func (s *Surface) resolution() byte {
	return byte(s.width * s.height / 8)
}

// appendFrame appends the encoded frame to dst. With enough spare capacity in
// dst no allocation takes place.
func (s *Surface) appendFrame(dst []byte) []byte {
	start := len(dst)
	dst = append(dst, startByte)
	dst = AppendHex(dst, s.addr.Wire())
	dst = AppendHex(dst, s.resolution())
	for _, b := range s.pix {
		dst = AppendHex(dst, b)
	}
	dst = append(dst, endByte)
	return AppendHex(dst, checksum(dst[start+1:]))
}

// checksum returns the byte that makes the sum of body and itself zero.
func checksum(body []byte) byte {
	var sum byte
	for _, b := range body {
		sum += b
	}
	return (sum ^ 0xFF) + 1
}

// Encode returns the frame for the current buffer contents.
func (s *Surface) Encode() []byte {
	return s.appendFrame(make([]byte, 0, s.FrameSize()))
}

// EncodeInto writes the frame to the start of buf, which must hold at least
// FrameSize bytes. It returns the number of bytes written.
func (s *Surface) EncodeInto(buf []byte) (int, error) {
	size := s.FrameSize()
	if len(buf) < size {
		return 0, errors.Wrapf(ErrBufferTooSmall, "have %d bytes, need %d", len(buf), size)
	}
	return len(s.appendFrame(buf[:0:size])), nil
}

// WriteTo writes the frame to w in a single Write call. Write errors are
// returned wrapped and are not retried.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	frame := s.Encode()
	n, err := w.Write(frame)
	if err != nil {
		return int64(n), errors.Wrap(err, "flipdot: write frame")
	}
	if n != len(frame) {
		return int64(n), errors.Wrap(io.ErrShortWrite, "flipdot: write frame")
	}
	return int64(n), nil
}
