package hanover

import (
	"image"
	"io"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wlcx/hanover-flipdot/pkg/bitmap"
	"github.com/wlcx/hanover-flipdot/pkg/flipdot"
	"github.com/wlcx/hanover-flipdot/pkg/proto"
)

// Opts is the panel geometry and the position of its address switch.
type Opts struct {
	Width   int
	Height  int
	Address flipdot.Address
}

// DefaultOpts matches the common 96x16 destination sign.
var DefaultOpts = Opts{Width: 96, Height: 16}

func New(sink io.Writer, opts *Opts, logger *zap.Logger) (*Hanover, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}

	s, err := flipdot.New(opts.Width, opts.Height, opts.Address)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.Uint8("address", uint8(opts.Address)))
	if !s.Aligned() {
		logger.Warn("pixel count is not a multiple of 8, resolution byte will be truncated",
			zap.Int("width", opts.Width), zap.Int("height", opts.Height))
	}

	return &Hanover{
		sink:   sink,
		logger: logger,
		canvas: bitmap.NewCanvas(s),
	}, nil
}

// Hanover drives one panel on a shared serial line. Drawing and sending are
// serialised so concurrent callers never interleave a frame.
type Hanover struct {
	sync.Mutex
	sink   io.Writer
	logger *zap.Logger
	canvas *bitmap.Canvas
}

var _ proto.Control = (*Hanover)(nil)

func (h *Hanover) Size() image.Point {
	return h.canvas.Bounds().Size()
}

// Surface gives direct access to the frame buffer. Changes are sent by Flush.
// Callers sharing the device must hold its lock while touching the surface.
func (h *Hanover) Surface() *flipdot.Surface {
	return h.canvas.Surface()
}

func (h *Hanover) Draw(img image.Image) error {
	h.Lock()
	defer h.Unlock()
	bitmap.Encode(img, h.canvas)
	return h.send(h.canvas.Surface())
}

func (h *Hanover) DrawPixels(pixels []bitmap.Pixel) error {
	h.Lock()
	defer h.Unlock()
	h.canvas.DrawPixels(pixels)
	return h.send(h.canvas.Surface())
}

func (h *Hanover) Clear() error {
	h.Lock()
	defer h.Unlock()
	h.canvas.Surface().Clear()
	return h.send(h.canvas.Surface())
}

// Flush sends the current frame buffer to the panel.
func (h *Hanover) Flush() error {
	h.Lock()
	defer h.Unlock()
	return h.send(h.canvas.Surface())
}

// Frame writes an already encoded frame to the line unchanged.
func (h *Hanover) Frame(frame []byte) error {
	h.Lock()
	defer h.Unlock()
	n, err := h.sink.Write(frame)
	if err == nil && n != len(frame) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return errors.Wrap(err, "write raw frame")
	}
	h.logger.With(zap.Int("sent", n)).Debug("raw transfer")
	return nil
}

func (h *Hanover) Close() error {
	h.Lock()
	defer h.Unlock()
	if c, ok := h.sink.(io.Closer); ok {
		return errors.Wrap(c.Close(), "close sink")
	}
	return nil
}
