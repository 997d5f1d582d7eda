// Package env provides configuration of the cmdlink host.
package env

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	goserial "go.bug.st/serial"

	fx "github.com/robotalks/cmdlink/pkg/framework"
	"github.com/robotalks/cmdlink/pkg/l0/comm"
	"github.com/robotalks/cmdlink/pkg/l0/serial"
	"github.com/robotalks/cmdlink/pkg/l1"
	"github.com/robotalks/cmdlink/pkg/l1/comm/mqtt"
	"github.com/robotalks/cmdlink/pkg/l1/comm/stream"
	"github.com/robotalks/cmdlink/pkg/l1/comm/websocket"
)

// ControllerType is the type under which the host registers upstream.
const ControllerType = "cmdlink"

// Config provides options to setup the host.
type Config struct {
	Serial     serial.Config
	MaxRetries int

	Info l1.ControllerInfo

	// MQTTBrokerURL specifies the MQTT broker to bridge to.
	// e.g. mqtt://host:port/topic-prefix/
	MQTTBrokerURL string
	// WebSocketAddr is the listen address of the WebSocket bridge.
	WebSocketAddr string
	// StreamAddr is the listen address of the TCP bridge.
	StreamAddr string
}

var defaultConfig = Config{
	Serial:     serial.Config{ReadTimeout: serial.DefaultReadTimeout},
	MaxRetries: comm.MaxRetries,
	Info: l1.ControllerInfo{
		Ref: l1.ControllerRef{Type: ControllerType},
		Meta: l1.ControllerMeta{
			Description: "COBS/CRC-32 serial command link",
		},
	},
}

func init() {
	defaultConfig.Serial.Device = os.Getenv("CMDLINK_PORT")
	defaultConfig.MQTTBrokerURL = os.Getenv("CMDLINK_MQTT_URL")
	defaultConfig.WebSocketAddr = os.Getenv("CMDLINK_WS_ADDR")
	defaultConfig.StreamAddr = os.Getenv("CMDLINK_TCP_ADDR")
	if val := os.Getenv("CMDLINK_ID"); val != "" {
		defaultConfig.Info.Ref.ID = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Serial.Device, "port", defaultConfig.Serial.Device, "Serial device of the firmware")
	flag.DurationVar(&defaultConfig.Serial.ReadTimeout, "read-timeout", defaultConfig.Serial.ReadTimeout, "Timeout of a single read")
	flag.IntVar(&defaultConfig.MaxRetries, "retries", defaultConfig.MaxRetries, "Attempts of a request")
	flag.StringVar(&defaultConfig.Info.Ref.ID, "id", defaultConfig.Info.Ref.ID, "Controller ID, machine ID if empty")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL to bridge to")
	flag.StringVar(&defaultConfig.WebSocketAddr, "ws", defaultConfig.WebSocketAddr, "Listen address of WebSocket bridge")
	flag.StringVar(&defaultConfig.StreamAddr, "tcp", defaultConfig.StreamAddr, "Listen address of TCP bridge")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Env is the opened link to the firmware.
type Env struct {
	Config *Config
	Port   goserial.Port
	Client *comm.Client
}

// NewEnv opens the serial link.
func (c *Config) NewEnv() (*Env, error) {
	port, err := serial.Open(c.Serial)
	if err != nil {
		return nil, err
	}
	client := comm.NewClient(port)
	client.MaxRetries = c.MaxRetries
	glog.Infof("opened %s", c.LinkName())
	return &Env{Config: c, Port: port, Client: client}, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	env, err := c.NewEnv()
	if err != nil {
		glog.Exitf("open link: %v", err)
	}
	return env
}

// LinkName describes the serial link.
func (c *Config) LinkName() string {
	return fmt.Sprintf("%s@%d", c.Serial.Device, serial.BaudRate)
}

// Upstreams creates the configured bridges serving requester.
func (c *Config) Upstreams(requester l1.Requester) ([]fx.Runnable, error) {
	var runners []fx.Runnable
	if c.MQTTBrokerURL != "" {
		info := c.Info
		if info.Ref.ID == "" {
			info.Ref.ID = MachineID()
		}
		info.Meta.Link = c.LinkName()
		bridge, err := mqtt.NewBridge(c.MQTTBrokerURL, info, requester)
		if err != nil {
			return nil, fmt.Errorf("create MQTT bridge: %w", err)
		}
		runners = append(runners, bridge)
	}
	if c.WebSocketAddr != "" {
		s, err := websocket.Listen(c.WebSocketAddr, requester)
		if err != nil {
			return nil, fmt.Errorf("listen websocket: %w", err)
		}
		runners = append(runners, s)
	}
	if c.StreamAddr != "" {
		s, err := stream.Listen(c.StreamAddr, requester)
		if err != nil {
			return nil, fmt.Errorf("listen tcp: %w", err)
		}
		runners = append(runners, s)
	}
	if len(runners) == 0 {
		return nil, fmt.Errorf("at least one of -mqtt, -ws, -tcp is required")
	}
	return runners, nil
}

// Close closes the link.
func (e *Env) Close() error {
	return e.Port.Close()
}
