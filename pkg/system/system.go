package system

import (
	"fmt"
	"net"
)

// System bundles the node-wide collaborators: configuration, clock and the
// unique device identifier.
type System struct {
	config   *Config
	clock    Clock
	deviceID string
}

func NewSystem(config *Config, clock Clock) *System {
	return &System{
		config:   config,
		clock:    clock,
		deviceID: resolveDeviceID(config),
	}
}

func (s *System) Config() *Config {
	return s.config
}

func (s *System) Clock() Clock {
	return s.clock
}

// DeviceID returns the unique device identifier.
func (s *System) DeviceID() string {
	return s.deviceID
}

func resolveDeviceID(config *Config) string {
	if id, ok := config.GetString("device.id"); ok && id != "" {
		return id
	}
	return buildDeviceID()
}

// buildDeviceID derives an identifier from the device's hardware address,
// the same scheme used for the sensor's access point ESSID.
func buildDeviceID() string {
	interfaces, err := net.Interfaces()
	if err == nil {
		for _, networkInterface := range interfaces {
			mac := networkInterface.HardwareAddr
			if len(mac) >= 6 {
				return fmt.Sprintf("VINDRIKTNING-%02X%02X%02X", mac[3], mac[4], mac[5])
			}
		}
	}
	return "VINDRIKTNING-000000"
}
