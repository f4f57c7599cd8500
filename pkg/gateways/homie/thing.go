// Package homie is a minimalistic implementation of the Homie convention
// (https://homieiot.github.io): an ownership tree of devices, nodes and
// properties that describes itself to the broker with retained attributes.
package homie

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/armeniopinto/vindriktning-go/pkg/gateways/homie/network"
)

// ErrNoBroker reports a publication attempted without a live broker handle.
var ErrNoBroker = errors.New("no connection to the message broker")

// thing is a generic Homie entity: one path segment in the topic tree. The
// broker handle and logger are inherited from the parent, so the whole tree
// shares the root's.
type thing struct {
	id     string
	topic  string
	broker network.Broker
	log    *logrus.Entry
}

func newThing(parent *thing, id string, broker network.Broker, log *logrus.Entry) thing {
	t := thing{id: id, topic: id, broker: broker, log: log}
	if parent != nil {
		t.topic = parent.topic + "/" + id
		if t.broker == nil {
			t.broker = parent.broker
		}
		if t.log == nil {
			t.log = parent.log
		}
	}
	return t
}

func (t *thing) ID() string {
	return t.id
}

// Topic returns the slash-joined path from the tree root to this entity.
func (t *thing) Topic() string {
	return t.topic
}

// SetAttribute publishes a $-prefixed convention attribute, retained.
func (t *thing) SetAttribute(name, value string) error {
	if t.broker == nil {
		return ErrNoBroker
	}
	attributeTopic := t.topic + "/" + name
	t.log.Debugf("%s = %s", attributeTopic, value)
	return t.broker.Publish(attributeTopic, value)
}

// SetValue publishes the entity's value on its own topic, retained.
func (t *thing) SetValue(value string) error {
	if t.broker == nil {
		return ErrNoBroker
	}
	t.log.Debugf("%s = %s", t.topic, value)
	return t.broker.Publish(t.topic, value)
}
