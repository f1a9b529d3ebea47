package flipdot

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	assert.Equal(t, [2]byte{'C', '0'}, Hex(0xC0))
	assert.Equal(t, [2]byte{'0', '0'}, Hex(0x00))
	assert.Equal(t, [2]byte{'F', 'F'}, Hex(0xFF))

	for i := 0; i < 256; i++ {
		h := Hex(byte(i))
		assert.Equal(t, fmt.Sprintf("%02X", i), string(h[:]))

		b, ok := unhex(h[0], h[1])
		assert.True(t, ok)
		assert.Equal(t, byte(i), b)
	}
}

func TestUnhexRejectsLowercase(t *testing.T) {
	_, ok := unhex('c', '0')
	assert.False(t, ok)
	_, ok = unhex('0', 'G')
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		addr    Address
		wantErr error
	}{
		{"96x16", 96, 16, 0, nil},
		{"highest address", 8, 8, 15, nil},
		{"address 16", 8, 8, 16, ErrInvalidAddress},
		{"address 255", 8, 8, 255, ErrInvalidAddress},
		{"zero width", 0, 8, 0, ErrInvalidSize},
		{"negative height", 8, -1, 0, ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.w, tt.h, tt.addr)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			w, h := s.Size()
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
			assert.Equal(t, tt.addr, s.Address())
			assert.Len(t, s.Bytes(), (tt.w*tt.h+7)/8)
		})
	}
}

func TestAddressWire(t *testing.T) {
	assert.Equal(t, byte(17), Address(0).Wire())
	assert.Equal(t, byte(32), Address(15).Wire())
}

func TestSetPacking(t *testing.T) {
	s, err := New(4, 4, 0)
	require.NoError(t, err)

	// index = x*height + y
	s.Set(0, 0, true) // bit 0
	s.Set(0, 3, true) // bit 3
	s.Set(1, 0, true) // bit 4
	s.Set(3, 3, true) // bit 15
	assert.Equal(t, []byte{0x19, 0x80}, s.Bytes())

	assert.True(t, s.At(1, 0))
	assert.False(t, s.At(0, 1))

	s.Set(1, 0, false)
	assert.Equal(t, []byte{0x09, 0x80}, s.Bytes())
}

func TestSetClips(t *testing.T) {
	s, err := New(8, 8, 0)
	require.NoError(t, err)
	s.Set(3, 3, true)
	before := s.Bytes()

	s.Set(8, 0, true)
	s.Set(0, 8, true)
	s.Set(-1, 0, true)
	s.Set(0, -1, true)
	s.Set(1<<30, 1<<30, true)

	assert.Equal(t, before, s.Bytes())
	assert.False(t, s.At(8, 0))
	assert.False(t, s.At(-1, -1))
}

func TestFill(t *testing.T) {
	s, err := New(3, 3, 0)
	require.NoError(t, err)

	s.Fill(true)
	assert.Equal(t, []byte{0xFF, 0x01}, s.Bytes())
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			assert.True(t, s.At(x, y))
		}
	}

	s.Fill(false)
	assert.Equal(t, []byte{0x00, 0x00}, s.Bytes())
}

func TestAligned(t *testing.T) {
	s, _ := New(96, 16, 0)
	assert.True(t, s.Aligned())
	s, _ = New(3, 3, 0)
	assert.False(t, s.Aligned())
}

func TestEncodeBlank8x8(t *testing.T) {
	s, err := New(8, 8, 0)
	require.NoError(t, err)

	// sum('1','1','0','8', 16*'0', 0x03) = 0x3CD -> 0xCD; (0xCD^0xFF)+1 = 0x33
	want := append([]byte{0x02}, "1108"+strings.Repeat("00", 8)...)
	want = append(want, 0x03, '3', '3')

	assert.Equal(t, want, s.Encode())
	assert.Equal(t, 24, s.FrameSize())
}

func TestEncodeBlank96x16(t *testing.T) {
	s, err := New(96, 16, 0)
	require.NoError(t, err)
	assert.Equal(t, 392, s.FrameSize())

	frame := s.Encode()
	require.Len(t, frame, s.FrameSize())
	assert.Equal(t, byte(0x02), frame[0])
	assert.Equal(t, "11", string(frame[1:3]))
	assert.Equal(t, "C0", string(frame[3:5]))
	assert.Equal(t, strings.Repeat("00", 192), string(frame[5:5+384]))
	assert.Equal(t, byte(0x03), frame[389])
	assert.Equal(t, "28", string(frame[390:]))
}

func TestEncodeAddressAndPixels(t *testing.T) {
	s, err := New(8, 1, 5)
	require.NoError(t, err)
	s.Set(0, 0, true)
	s.Set(7, 0, true)

	frame := s.Encode()
	assert.Equal(t, "1601", string(frame[1:5]))
	assert.Equal(t, "81", string(frame[5:7]))

	var sum byte
	for _, b := range frame[1 : len(frame)-2] {
		sum += b
	}
	c := Hex((sum ^ 0xFF) + 1)
	assert.Equal(t, string(c[:]), string(frame[len(frame)-2:]))
}

func TestEncodeUnalignedResolution(t *testing.T) {
	// 3x3 = 9 pixels: the payload carries 2 bytes but the header says 1.
	s, err := New(3, 3, 0)
	require.NoError(t, err)
	frame := s.Encode()
	assert.Len(t, frame, s.FrameSize())
	assert.Equal(t, "01", string(frame[3:5]))
	assert.Equal(t, "0000", string(frame[5:9]))
}

func TestEncodeResolutionWraps(t *testing.T) {
	s, err := New(96, 32, 0)
	require.NoError(t, err)
	frame := s.Encode()
	// 384 bytes of pixels truncated to one byte
	assert.Equal(t, "80", string(frame[3:5]))
	assert.Len(t, frame, 2*(2+384+1)+2)
}

func patterned(t *testing.T) *Surface {
	s, err := New(28, 7, 3)
	require.NoError(t, err)
	for x := 0; x < 28; x++ {
		for y := 0; y < 7; y++ {
			s.Set(x, y, (x*7+y)%3 == 0)
		}
	}
	return s
}

func TestOutputModesAgree(t *testing.T) {
	s := patterned(t)

	var sink bytes.Buffer
	n, err := s.WriteTo(&sink)
	require.NoError(t, err)
	assert.Equal(t, int64(s.FrameSize()), n)
	assert.Len(t, sink.Bytes(), s.FrameSize())

	buf := make([]byte, 2048)
	for i := range buf {
		buf[i] = 0xAA
	}
	m, err := s.EncodeInto(buf)
	require.NoError(t, err)
	assert.Equal(t, s.FrameSize(), m)
	assert.Equal(t, sink.Bytes(), buf[:m])
	assert.Equal(t, byte(0xAA), buf[m], "bytes past the frame must be untouched")

	assert.Equal(t, sink.Bytes(), s.Encode())
}

func TestEncodeIdempotent(t *testing.T) {
	s := patterned(t)
	before := s.Bytes()
	assert.Equal(t, s.Encode(), s.Encode())
	assert.Equal(t, before, s.Bytes())
}

func TestEncodeIntoTooSmall(t *testing.T) {
	s, err := New(8, 8, 0)
	require.NoError(t, err)

	buf := make([]byte, s.FrameSize()-1)
	n, err := s.EncodeInto(buf)
	assert.Zero(t, n)
	assert.True(t, errors.Is(err, ErrBufferTooSmall))
	assert.Equal(t, make([]byte, len(buf)), buf)

	n, err = s.EncodeInto(make([]byte, s.FrameSize()))
	assert.NoError(t, err)
	assert.Equal(t, s.FrameSize(), n)
}

type failingWriter struct {
	err error
	n   int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n > len(p) {
		return len(p), w.err
	}
	return w.n, w.err
}

func TestWriteToErrors(t *testing.T) {
	s, err := New(8, 8, 0)
	require.NoError(t, err)

	sinkErr := errors.New("port gone")
	_, err = s.WriteTo(&failingWriter{err: sinkErr})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sinkErr))
	assert.Equal(t, sinkErr, errors.Cause(err))

	n, err := s.WriteTo(&failingWriter{n: 3})
	assert.Equal(t, int64(3), n)
	assert.True(t, errors.Is(err, io.ErrShortWrite))
}

func TestParseRoundTrip(t *testing.T) {
	s := patterned(t)

	f, err := Parse(s.Encode())
	require.NoError(t, err)
	assert.Equal(t, Address(3), f.Address)
	assert.Equal(t, byte(28*7/8), f.Resolution)
	assert.Equal(t, s.Bytes(), f.Data)

	back, err := f.Surface(28, 7)
	require.NoError(t, err)
	assert.Equal(t, s.Encode(), back.Encode())

	_, err = f.Surface(8, 8)
	assert.True(t, errors.Is(err, ErrMalformedFrame))
}

func TestParseErrors(t *testing.T) {
	s, err := New(8, 8, 0)
	require.NoError(t, err)
	good := s.Encode()

	mutate := func(fn func(b []byte) []byte) []byte {
		return fn(append([]byte(nil), good...))
	}
	// resum rewrites the trailing checksum so only the body is at fault.
	resum := func(b []byte) []byte {
		c := Hex(checksum(b[1 : len(b)-2]))
		b[len(b)-2], b[len(b)-1] = c[0], c[1]
		return b
	}

	tests := []struct {
		name  string
		frame []byte
		want  error
	}{
		{"empty", nil, ErrMalformedFrame},
		{"truncated", good[:len(good)-1], ErrMalformedFrame},
		{"no start", mutate(func(b []byte) []byte { b[0] = 0x01; return b }), ErrMalformedFrame},
		{"no end", mutate(func(b []byte) []byte { b[len(b)-3] = '0'; return b }), ErrMalformedFrame},
		{"bad checksum", mutate(func(b []byte) []byte { b[len(b)-1] = '4'; return b }), ErrChecksum},
		{"flipped pixel", mutate(func(b []byte) []byte { b[6] = '1'; return b }), ErrChecksum},
		{"lowercase checksum", mutate(func(b []byte) []byte { b[len(b)-1] = 'a'; return b }), ErrMalformedFrame},
		{"address below range", mutate(func(b []byte) []byte { b[1], b[2] = '1', '0'; return resum(b) }), ErrInvalidAddress},
		{"address above range", mutate(func(b []byte) []byte { b[1], b[2] = '2', '1'; return resum(b) }), ErrInvalidAddress},
		{"non-hex payload", mutate(func(b []byte) []byte { b[6] = 'G'; return resum(b) }), ErrMalformedFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.frame)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}
