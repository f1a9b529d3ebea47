package main

import (
	"net/http"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/wlcx/hanover-flipdot/pkg/device/hanover"
	"github.com/wlcx/hanover-flipdot/pkg/device/remote"
	"github.com/wlcx/hanover-flipdot/pkg/flipdot"
	"github.com/wlcx/hanover-flipdot/pkg/proto"
)

var serial = flag.String("serial", "ttyUSB0", "serial name")
var baud = flag.Int("baud", 4800, "serial baud rate")
var listen = flag.String("listen", ":9123", "listen addr")
var width = flag.Int("width", 96, "panel width")
var height = flag.Int("height", 16, "panel height")
var address = flag.Uint8("address", 0, "panel address switch")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*zap.Logger, error) {
				return zap.NewDevelopment()
			},
			func() *http.Server {
				return &http.Server{Addr: *listen}
			},
			func(logger *zap.Logger) (proto.Control, error) {
				s := proto.NewSerial(*serial)
				if err := s.Open(&proto.Options{BaudRate: *baud}); err != nil {
					return nil, err
				}
				return hanover.New(s, &hanover.Opts{
					Width:   *width,
					Height:  *height,
					Address: flipdot.Address(*address),
				}, logger)
			},
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
