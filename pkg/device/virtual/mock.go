package virtual

import (
	"image"
	"strings"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/wlcx/hanover-flipdot/pkg/bitmap"
	"github.com/wlcx/hanover-flipdot/pkg/flipdot"
	"github.com/wlcx/hanover-flipdot/pkg/proto"
)

// Mock returns a panel that only logs. Each drawn frame goes through the wire
// encoder and decoder so String shows what the controller would display.
func Mock(width, height int, logger *zap.Logger) (*Mocker, error) {
	s, err := flipdot.New(width, height, 0)
	if err != nil {
		return nil, err
	}
	shown, _ := flipdot.New(width, height, 0)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mocker{l: logger, canvas: bitmap.NewCanvas(s), shown: shown}, nil
}

type Mocker struct {
	sync.Mutex
	l      *zap.Logger
	canvas *bitmap.Canvas
	shown  *flipdot.Surface
	frames int
}

var _ proto.Control = (*Mocker)(nil)

func (m *Mocker) Size() image.Point {
	return m.canvas.Bounds().Size()
}

func (m *Mocker) Draw(img image.Image) error {
	m.l.With(
		zap.Int("w", img.Bounds().Dx()),
		zap.Int("h", img.Bounds().Dy()),
	).Info("draw")
	m.Lock()
	defer m.Unlock()
	bitmap.Encode(img, m.canvas)
	return m.show(m.canvas.Surface().Encode())
}

func (m *Mocker) Clear() error {
	m.l.Info("clear")
	m.Lock()
	defer m.Unlock()
	m.canvas.Surface().Clear()
	return m.show(m.canvas.Surface().Encode())
}

// Frame accepts a raw wire frame as a real controller would.
func (m *Mocker) Frame(frame []byte) error {
	m.l.With(zap.Int("len", len(frame))).Info("frame")
	m.Lock()
	defer m.Unlock()
	return m.show(frame)
}

func (m *Mocker) show(frame []byte) error {
	f, err := flipdot.Parse(frame)
	if err != nil {
		return err
	}
	s, err := f.Surface(m.Size().X, m.Size().Y)
	if err != nil {
		return err
	}
	m.shown = s
	m.frames++
	return nil
}

func (m *Mocker) Close() error {
	m.l.With(zap.Int("frames", m.Frames())).Info("close")
	return nil
}

// Frames is the number of frames accepted so far.
func (m *Mocker) Frames() int {
	m.Lock()
	defer m.Unlock()
	return m.frames
}

// String renders the last accepted frame, one text row per pixel row.
func (m *Mocker) String() string {
	m.Lock()
	defer m.Unlock()
	w, h := m.shown.Size()
	rows := lo.Times(h, func(y int) string {
		return strings.Join(lo.Times(w, func(x int) string {
			return lo.Ternary(m.shown.At(x, y), "#", ".")
		}), "")
	})
	return strings.Join(rows, "\n")
}
