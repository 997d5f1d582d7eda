package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// MachineID retrieves the ID identifying the machine, hashed with the
// application name. It falls back to the hostname.
func MachineID() string {
	id, err := machineid.ProtectedID("cmdlink")
	if err == nil {
		return id[:16]
	}
	glog.Warningf("machine id unavailable: %v", err)
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "unknown"
}
