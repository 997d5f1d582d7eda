package l1

import (
	"context"

	"github.com/robotalks/cmdlink/pkg/l0/comm"
)

// Requester sends a command to L0 firmware and waits for the response.
// comm.Client implements it.
type Requester interface {
	Request(context.Context, comm.Command) (comm.Response, error)
}

// RequestFunc is the func form of Requester.
type RequestFunc func(context.Context, comm.Command) (comm.Response, error)

// Request implements Requester.
func (f RequestFunc) Request(ctx context.Context, cmd comm.Command) (comm.Response, error) {
	return f(ctx, cmd)
}

// ControllerRef is a reference to an L1 controller.
type ControllerRef struct {
	// Type is controller type.
	Type string
	// ID is unique ID of the device.
	ID string
}

// Name retrieves the name from ref.
func (r ControllerRef) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates ControllerRef is valid.
func (r ControllerRef) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// ControllerMeta provides metadata for L1 controller.
type ControllerMeta struct {
	Description string `json:"description,omitempty"`
	// Link describes the serial link to L0 firmware, e.g. "/dev/ttyUSB0@115200".
	Link string `json:"link,omitempty"`
}

// ControllerInfo provides information of an L1 controller.
type ControllerInfo struct {
	Ref  ControllerRef
	Meta ControllerMeta
}
