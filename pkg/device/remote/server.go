package remote

import (
	"bytes"
	"context"
	"image/png"
	"net"
	"net/http"
	"net/rpc"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/wlcx/hanover-flipdot/pkg/flipdot"
	"github.com/wlcx/hanover-flipdot/pkg/proto"
)

// FrameWriter is implemented by devices that accept raw wire frames.
type FrameWriter interface {
	Frame(frame []byte) error
}

// Handler serves dev over net/rpc at rpc.DefaultRPCPath.
func Handler(dev proto.Control, logger *zap.Logger) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := rpc.NewServer()
	if err := srv.Register(&Service{dev: dev, logger: logger}); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, srv)
	return mux, nil
}

// Proxy exposes dev on srv for the lifetime of the fx application.
func Proxy(dev proto.Control, srv *http.Server, logger *zap.Logger, lifecycle fx.Lifecycle) error {
	h, err := Handler(dev, logger)
	if err != nil {
		return err
	}
	srv.Handler = h

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.With(zap.String("addr", ln.Addr().String())).Info("proxy listening")
			go func() {
				if err := srv.Serve(ln); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Error("proxy stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			return dev.Close()
		},
	})

	return nil
}

type Service struct {
	dev    proto.Control
	logger *zap.Logger
}

func (s *Service) Size(_ EmptyRequest, resp *SizeResponse) error {
	size := s.dev.Size()
	resp.Width, resp.Height = size.X, size.Y
	return nil
}

func (s *Service) Clear(_ EmptyRequest, _ *EmptyResponse) error {
	return s.dev.Clear()
}

func (s *Service) Draw(req *DrawRequest, _ *EmptyResponse) error {
	img, err := png.Decode(bytes.NewBuffer(req.Image))
	if err != nil {
		return err
	}

	return s.dev.Draw(img)
}

// Frame forwards a raw frame after checking it decodes and fits the panel.
func (s *Service) Frame(req *FrameRequest, _ *EmptyResponse) error {
	f, err := flipdot.Parse(req.Frame)
	if err != nil {
		return err
	}

	size := s.dev.Size()
	if _, err := f.Surface(size.X, size.Y); err != nil {
		return err
	}

	fw, ok := s.dev.(FrameWriter)
	if !ok {
		return errors.New("device does not accept raw frames")
	}

	s.logger.With(zap.Uint8("address", uint8(f.Address)), zap.Int("len", len(req.Frame))).Debug("frame")
	return fw.Frame(req.Frame)
}
