package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wlcx/hanover-flipdot/pkg/device/hanover"
	"github.com/wlcx/hanover-flipdot/pkg/device/remote"
	"github.com/wlcx/hanover-flipdot/pkg/device/virtual"
	"github.com/wlcx/hanover-flipdot/pkg/dump"
	"github.com/wlcx/hanover-flipdot/pkg/flipdot"
	"github.com/wlcx/hanover-flipdot/pkg/proto"
	"github.com/wlcx/hanover-flipdot/pkg/source"
)

var serial = flag.String("serial", "", "serial name")
var remoteAddr = flag.String("remote", "", "remote proxy addr")
var dumpDir = flag.String("dump", "", "write frames to this dir instead of a serial port")
var baud = flag.Int("baud", 4800, "serial baud rate")
var width = flag.Int("width", 96, "panel width")
var height = flag.Int("height", 16, "panel height")
var address = flag.Uint8("address", 0, "panel address switch")
var blank = flag.Bool("clear", false, "blank the panel instead of drawing")
var debug = flag.Bool("debug", false, "set debug")

type config struct {
	serial string
	remote string
	dump   string
	baud   int
	opts   hanover.Opts
}

type mode int

const (
	modeVirtual mode = iota
	modeDump
	modeRemote
	modeSerial
)

func (c *config) mode() mode {
	switch {
	case c.dump != "":
		return modeDump
	case c.remote != "":
		return modeRemote
	case c.serial != "":
		return modeSerial
	}
	return modeVirtual
}

// openDevice returns the device picked by cfg and a func to run once drawing
// is done.
func openDevice(cfg *config, fs afero.Fs, logger *zap.Logger) (proto.Control, func(), error) {
	done := func() {}

	switch cfg.mode() {
	case modeDump:
		d, err := dump.New(fs, cfg.dump)
		if err != nil {
			return nil, nil, err
		}
		dev, err := hanover.New(d, &cfg.opts, logger)
		return dev, done, err
	case modeRemote:
		dev, err := remote.New(cfg.remote)
		return dev, done, err
	case modeSerial:
		s := proto.NewSerial(cfg.serial)
		if err := s.Open(&proto.Options{BaudRate: cfg.baud}); err != nil {
			return nil, nil, err
		}
		dev, err := hanover.New(s, &cfg.opts, logger)
		return dev, done, err
	}

	m, err := virtual.Mock(cfg.opts.Width, cfg.opts.Height, logger)
	if err != nil {
		return nil, nil, err
	}
	return m, func() { fmt.Println(m.String()) }, nil
}

func run(cfg *config, args []string, logger *zap.Logger) error {
	if !*blank && len(args) != 1 {
		return errors.New("usage: render [flags] <image path or url>")
	}

	fs := afero.NewOsFs()
	dev, done, err := openDevice(cfg, fs, logger)
	if err != nil {
		return fmt.Errorf("open device failed: %w", err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			logger.With(zap.Error(err)).Info("close failed")
		}
	}()

	if *blank {
		if err := dev.Clear(); err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
		done()
		return nil
	}

	img, err := source.New(fs).WithProgress(os.Stderr).Load(args[0])
	if err != nil {
		return err
	}

	if err := dev.Draw(img); err != nil {
		return fmt.Errorf("draw failed: %w", err)
	}
	done()
	logger.With(zap.String("src", args[0])).Info("drawn")
	return nil
}

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}

	cfg := &config{
		serial: *serial,
		remote: *remoteAddr,
		dump:   *dumpDir,
		baud:   *baud,
		opts:   hanover.Opts{Width: *width, Height: *height, Address: flipdot.Address(*address)},
	}

	err = run(cfg, flag.Args(), logger)
	if err != nil {
		logger.With(zap.Error(err)).Error("render failed")
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
