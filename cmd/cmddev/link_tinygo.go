//go:build tinygo

package main

import (
	"io"
	"machine"

	"github.com/robotalks/cmdlink/pkg/l0/comm"
)

func setupLinkFlags() {}

// openLink configures UART0. Reads return no data when the receive
// buffer is empty.
func openLink() (io.ReadWriter, bool, error) {
	uart := machine.UART0
	if err := uart.Configure(machine.UARTConfig{BaudRate: comm.BaudRate}); err != nil {
		return nil, false, err
	}
	return uart, true, nil
}
