package vindriktning

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/armeniopinto/vindriktning-go/pkg/entities"
	"github.com/armeniopinto/vindriktning-go/pkg/gateways/homie"
	"github.com/armeniopinto/vindriktning-go/pkg/gateways/homie/network"
	"github.com/armeniopinto/vindriktning-go/pkg/system"
)

const defaultBrokerPort = 1883

// BrokerFactory builds a fresh transport handle for one connection attempt.
type BrokerFactory func(clientID, hostAddress string, port int) network.Broker

// Publisher owns the node's Homie tree and publishes the sensor values.
type Publisher struct {
	deviceID      string
	brokerAddress string
	brokerPort    int
	newBroker     BrokerFactory
	network       *homie.Network
	property      *homie.Property
	log           *logrus.Entry
}

// NewPublisher builds a publisher and eagerly attempts the first
// connect-and-announce sequence. A failure there is logged, not returned:
// the next Publish call reconnects.
func NewPublisher(sys *system.System, newBroker BrokerFactory, log *logrus.Entry) *Publisher {
	p := &Publisher{
		deviceID:  sys.DeviceID(),
		newBroker: newBroker,
		log:       log,
	}
	p.brokerAddress, _ = sys.Config().GetString("mqtt.broker.host_address")
	port, ok := sys.Config().GetInt("mqtt.broker.port")
	if !ok {
		port = defaultBrokerPort
	}
	p.brokerPort = port

	if err := p.connect(); err != nil {
		p.log.Warn(err)
	}
	return p
}

// connect builds and announces a fresh Homie tree. Any failure leaves the
// publisher disconnected, with no usable property.
func (p *Publisher) connect() error {
	p.property = nil
	if p.network != nil {
		if err := p.network.Disconnect(); err != nil {
			p.log.Debugf("Error releasing the previous broker handle: %s.", err)
		}
		p.network = nil
	}

	broker := p.newBroker(p.deviceID, p.brokerAddress, p.brokerPort)
	net, err := homie.NewNetwork(broker, p.log)
	if err != nil {
		return errors.Wrap(err, "error connecting to message broker")
	}
	p.network = net

	device := homie.NewDevice(net, strings.ToLower(p.deviceID), p.deviceID)
	node := homie.NewNode(device, "pm1006", "Cubic PM1006", "Air Quality Sensor")
	property := homie.NewProperty(node, "pm2_5", "Particulate Matter Concentration (PM2.5)", "float", "ug/m3")
	node.AddProperty(property)
	device.AddNode(node)
	net.AddDevice(device)

	if err := device.SetState(entities.StateInit); err != nil {
		return errors.Wrap(err, "error connecting to message broker")
	}
	if err := device.SetState(entities.StateReady); err != nil {
		return errors.Wrap(err, "error connecting to message broker")
	}

	p.property = property
	return nil
}

// Close releases the broker handle, if any.
func (p *Publisher) Close() error {
	if p.network == nil {
		return nil
	}
	return p.network.Disconnect()
}

// Publish sends one cycle average, lazily reconnecting first if there is no
// usable property. A failed reconnection drops the value: sampling must not
// stall on a broker outage. A transport failure on a live connection is
// returned to the caller.
func (p *Publisher) Publish(message string) error {
	if p.property == nil {
		if err := p.connect(); err != nil {
			p.log.Warn(err)
			return nil
		}
	}
	if err := p.property.SetValue(message); err != nil {
		return errors.Wrap(err, "error publishing the value")
	}
	return nil
}
