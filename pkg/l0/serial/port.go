// Package serial opens the serial link between L1 controller and L0 firmware.
package serial

import (
	"fmt"
	"time"

	goserial "go.bug.st/serial"

	"github.com/robotalks/cmdlink/pkg/l0/comm"
)

// The link runs at 115200 baud, 8N1, not negotiated.
const (
	BaudRate = comm.BaudRate
	DataBits = 8
)

// DefaultReadTimeout bounds a single read.
const DefaultReadTimeout = 500 * time.Millisecond

// Config is the configuration of a serial link.
type Config struct {
	Device      string
	ReadTimeout time.Duration
}

// Mode returns the fixed line settings.
func Mode() *goserial.Mode {
	return &goserial.Mode{
		BaudRate: BaudRate,
		DataBits: DataBits,
		Parity:   goserial.NoParity,
		StopBits: goserial.OneStopBit,
	}
}

// Open opens the serial device. Reads on the returned port return no data
// after ReadTimeout, which fails the current attempt of a request.
func Open(cfg Config) (goserial.Port, error) {
	if cfg.Device == "" {
		return nil, fmt.Errorf("serial: no device")
	}
	timeout := cfg.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	port, err := goserial.Open(cfg.Device, Mode())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", cfg.Device, err)
	}
	return port, nil
}
