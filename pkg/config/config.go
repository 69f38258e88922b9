package config

import (
	"flag"

	flags "github.com/spf13/pflag"
)

type ClientConfig struct {
	Client Client
	Webrtc Webrtc
}

type Client struct {
	Debug      bool
	Monitoring Monitoring
	Network    struct {
		Address  string
		Endpoint string
		Secure   bool
	}
	Room Room
	Caps Caps
	Tag  string
}

// Room holds the identity of the local participant.
// The user id is an opaque token issued at login and stable for the session.
type Room struct {
	Name     string
	UserId   string
	UserName string
}

// Caps mirrors the capability probe of the hosting environment.
// The client itself renders nothing, so these arrive from the outside.
type Caps struct {
	Browser            string
	CanPresent         bool
	ExtensionInstalled bool
	ExtensionURL       string
}

type Monitoring struct {
	Port             int
	URLPrefix        string
	MetricEnabled    bool `fig:"metricEnabled"`
	ProfilingEnabled bool `fig:"profilingEnabled"`
}

func (c *Monitoring) IsEnabled() bool { return c.MetricEnabled || c.ProfilingEnabled }

type Webrtc struct {
	DisableDefaultInterceptors bool
	IceServers                 []IceServer
	IcePorts                   struct {
		Min uint16
		Max uint16
	}
	LogLevel int
}

type IceServer struct {
	Urls       string `json:"urls,omitempty"`
	Username   string `json:"username,omitempty"`
	Credential string `json:"credential,omitempty"`
}

func (w *Webrtc) HasPortRange() bool { return w.IcePorts.Min > 0 && w.IcePorts.Max > 0 }

// NewClientConfig loads the config with the default lookup paths.
func NewClientConfig() (conf ClientConfig, err error) {
	err = LoadConfig(&conf, "")
	return
}

// ParseFlags updates the config from the command line.
func (c *ClientConfig) ParseFlags() {
	c.Client.WithFlags()
	flags.CommandLine.AddGoFlagSet(flag.CommandLine)
	flags.Parse()
}

func (c *Client) WithFlags() {
	flag.StringVar(&c.Network.Address, "address", c.Network.Address, "signaling server address (host:port)")
	flag.StringVar(&c.Room.Name, "room", c.Room.Name, "room name")
	flag.StringVar(&c.Room.UserName, "name", c.Room.UserName, "display name")
	flag.BoolVar(&c.Debug, "debug", c.Debug, "debug logging")
}
