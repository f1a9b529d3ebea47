package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/wlcx/hanover-flipdot/pkg/device/hanover"
	"github.com/wlcx/hanover-flipdot/pkg/proto"
)

// Draws a checkerboard on a 96x16 panel at address 0 on the first USB serial
// adapter. Handy for checking the wiring and address switch.
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}

	err = run(logger)
	_ = logger.Sync()
	if err != nil {
		log.Fatal(err)
	}
}

func run(logger *zap.Logger) error {
	serial := proto.NewSerial("ttyUSB")
	if err := serial.Open(nil); err != nil {
		return err
	}

	dev, err := hanover.New(serial, nil, logger)
	if err != nil {
		_ = serial.Close()
		return err
	}
	defer func() { _ = dev.Close() }()

	s := dev.Surface()
	w, h := s.Size()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			s.Set(x, y, (x+y)%2 == 0)
		}
	}

	return dev.Flush()
}
