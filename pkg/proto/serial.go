package proto

import (
	"strings"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// Options is the line setup of the RS-485 adapter. Zero fields fall back to
// the 4800 8N1 the Hanover controllers ship with.
type Options struct {
	BaudRate int
	DataBits int
	Parity   serial.Parity
	StopBits serial.StopBits
}

func (o *Options) mode() *serial.Mode {
	m := &serial.Mode{
		BaudRate: 4800,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	if o == nil {
		return m
	}
	if o.BaudRate > 0 {
		m.BaudRate = o.BaudRate
	}
	if o.DataBits > 0 {
		m.DataBits = o.DataBits
	}
	m.Parity = o.Parity
	m.StopBits = o.StopBits
	return m
}

func NewSerial(name string) *Serial {
	return &Serial{name: name}
}

// Serial is a write-only handle on the first port whose name contains the
// configured fragment.
type Serial struct {
	name string
	port serial.Port
}

func (s *Serial) Name() string {
	return s.name
}

func (s *Serial) Ports() ([]string, error) {
	return serial.GetPortsList()
}

func (s *Serial) Open(opts *Options) error {
	ports, err := s.Ports()
	if err != nil {
		return errors.Wrap(err, "list serial ports")
	}

	var matched string
	for _, name := range ports {
		if strings.Contains(name, s.name) {
			matched = name
			break
		}
	}
	if matched == "" {
		return errors.Errorf("serial port %q not found", s.name)
	}

	port, err := serial.Open(matched, opts.mode())
	if err != nil {
		return errors.Wrapf(err, "open %s", matched)
	}

	s.port = port
	return nil
}

func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}

func (s *Serial) Write(p []byte) (n int, err error) {
	if s.port == nil {
		return 0, errors.New("serial port not open")
	}
	return s.port.Write(p)
}
