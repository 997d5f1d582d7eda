//go:build !tinygo

package main

import (
	"flag"
	"io"
	"os"

	"github.com/robotalks/cmdlink/pkg/l0/serial"
)

var linkConfig = serial.Config{
	Device:      os.Getenv("CMDLINK_DEV_PORT"),
	ReadTimeout: serial.DefaultReadTimeout,
}

func setupLinkFlags() {
	flag.StringVar(&linkConfig.Device, "port", linkConfig.Device, "Serial device to serve on")
}

// openLink opens the serial port. Reads time out with no data.
func openLink() (io.ReadWriter, bool, error) {
	port, err := serial.Open(linkConfig)
	if err != nil {
		return nil, false, err
	}
	return port, true, nil
}
