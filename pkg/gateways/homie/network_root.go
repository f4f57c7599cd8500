package homie

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/armeniopinto/vindriktning-go/pkg/gateways/homie/network"
)

// The fixed base topic every Homie tree publishes under.
const rootID = "homie"

// Network is the root of the topic tree. It owns the broker handle shared by
// every entity under it.
type Network struct {
	thing
	devices []*Device
}

// NewNetwork connects the broker and returns the tree root.
func NewNetwork(broker network.Broker, log *logrus.Entry) (*Network, error) {
	if err := broker.Connect(); err != nil {
		return nil, errors.Wrap(err, "connect to the message broker")
	}
	return &Network{thing: newThing(nil, rootID, broker, log)}, nil
}

// Disconnect releases the broker handle shared by the tree. The tree is not
// usable afterwards.
func (n *Network) Disconnect() error {
	return n.broker.Disconnect()
}

func (n *Network) AddDevice(device *Device) {
	n.devices = append(n.devices, device)
}

func (n *Network) Devices() []*Device {
	devices := make([]*Device, len(n.devices))
	copy(devices, n.devices)
	return devices
}
