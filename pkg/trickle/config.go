package trickle

import (
	"fmt"
	"log"
)

// Port bounds and default. The bind address is fixed to the loopback
// interface and is not configurable.
const (
	MinPort     = 1024
	MaxPort     = 65353
	DefaultPort = 8060
)

// Config is the serving configuration handed down from the host application.
// It is immutable for the lifetime of a serving session: pushing a new Config
// through Reconfigure tears the listener down and starts over.
type Config struct {
	// Run asks the server to serve. Reconfigure with Run false stops it.
	Run bool

	// Port is the TCP port bound on the loopback interface.
	// Valid range: MinPort through MaxPort.
	Port int

	// Webroot is the directory static files are served from. Required
	// whenever Run is set.
	Webroot string

	// Debug enables verbose per-cycle logging.
	Debug bool

	// Logger receives all server logging. Default: log.Default().
	Logger *log.Logger
}

// DefaultConfig returns a stopped configuration on the default port.
func DefaultConfig() Config {
	return Config{Port: DefaultPort}
}

// Validate reports whether the configuration can start a serving session.
func (c *Config) Validate() error {
	if c.Port < MinPort || c.Port > MaxPort {
		return fmt.Errorf("%w: %d not in %d-%d", ErrPortRange, c.Port, MinPort, MaxPort)
	}
	if c.Run && c.Webroot == "" {
		return ErrNoWebroot
	}
	return nil
}
