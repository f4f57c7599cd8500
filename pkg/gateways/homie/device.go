package homie

import (
	"strings"

	"github.com/armeniopinto/vindriktning-go/pkg/entities"
)

// The convention version announced under $homie.
const homieVersion = "3.0.0"

// Device is an addressable device in the topic tree.
// https://homieiot.github.io/specification/#devices
type Device struct {
	thing
	name       string
	nodes      []*Node
	extensions []string
	state      string
}

func NewDevice(parent *Network, id, name string, extensions ...string) *Device {
	return &Device{
		thing:      newThing(&parent.thing, id, nil, nil),
		name:       name,
		extensions: extensions,
	}
}

// AddNode appends a node; insertion order is the announcement order.
func (d *Device) AddNode(node *Node) {
	d.nodes = append(d.nodes, node)
}

func (d *Device) Nodes() []*Node {
	return d.nodes
}

func (d *Device) State() string {
	return d.state
}

// SetState publishes a device lifecycle transition. An init transition
// re-announces the whole subtree; every other transition publishes a single
// ready state attribute, whatever the requested state.
func (d *Device) SetState(newState string) error {
	if newState == entities.StateInit {
		if err := d.Announce(); err != nil {
			return err
		}
	} else {
		if err := d.SetAttribute("$state", entities.StateReady); err != nil {
			return err
		}
	}
	d.state = newState
	return nil
}

// Announce publishes the device's convention attributes and recursively
// announces its nodes, leaving the device in the init state.
// https://homieiot.github.io/specification/#device-lifecycle
func (d *Device) Announce() error {
	ids := make([]string, 0, len(d.nodes))
	for _, node := range d.nodes {
		ids = append(ids, node.ID())
	}

	if err := d.SetAttribute("$state", entities.StateInit); err != nil {
		return err
	}
	if err := d.SetAttribute("$homie", homieVersion); err != nil {
		return err
	}
	if err := d.SetAttribute("$name", d.name); err != nil {
		return err
	}
	if err := d.SetAttribute("$nodes", strings.Join(ids, ",")); err != nil {
		return err
	}
	if err := d.SetAttribute("$extensions", strings.Join(d.extensions, ",")); err != nil {
		return err
	}
	for _, node := range d.nodes {
		if err := node.Announce(); err != nil {
			return err
		}
	}
	d.state = entities.StateInit
	return nil
}
