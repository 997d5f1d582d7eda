// Package device implements the device side command handling.
package device

import (
	"math"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/cmdlink/pkg/l0/comm"
)

// DefaultCapacity is the default number of registers.
const DefaultCapacity = 64

// RegisterKey identifies a register.
type RegisterKey struct {
	DeviceID uint32
	ID       uint32
}

// Registers is a comm.Dispatcher backed by a fixed number of registers.
// Set stores the message value, Get reads it back.
type Registers struct {
	capacity int
	values   map[RegisterKey]uint32
	lock     sync.RWMutex
}

// NewRegisters creates Registers holding at most capacity values.
func NewRegisters(capacity int) *Registers {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registers{
		capacity: capacity,
		values:   make(map[RegisterKey]uint32, capacity),
	}
}

// MessageValue converts a message to the register value.
func MessageValue(msg comm.Message) uint32 {
	switch m := msg.(type) {
	case comm.MsgB:
		return m.Value
	case comm.MsgC:
		return math.Float32bits(m.Value)
	}
	return 0
}

// Dispatch implements comm.Dispatcher.
func (r *Registers) Dispatch(cmd comm.Command) comm.Response {
	switch c := cmd.(type) {
	case comm.Set:
		r.store(RegisterKey{DeviceID: c.DeviceID, ID: c.ID}, MessageValue(c.Message))
		return comm.SetOK{}
	case comm.Get:
		value, _ := r.Value(RegisterKey{DeviceID: c.DeviceID, ID: c.ID})
		return comm.Data{ID: c.ID, Parameter: c.Parameter, Value: value, DeviceID: c.DeviceID}
	}
	return comm.ParseError{}
}

// Value reads a register.
func (r *Registers) Value(key RegisterKey) (uint32, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of registers in use.
func (r *Registers) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.values)
}

func (r *Registers) store(key RegisterKey, value uint32) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.values[key]; !ok && len(r.values) >= r.capacity {
		glog.Warningf("registers full, dropped device %d register 0x%x", key.DeviceID, key.ID)
		return
	}
	r.values[key] = value
}
