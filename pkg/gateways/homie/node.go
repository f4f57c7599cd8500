package homie

import "strings"

// Node groups the properties of one physical part of the device.
// https://homieiot.github.io/specification/#nodes
type Node struct {
	thing
	name       string
	nodeType   string
	properties []*Property
}

func NewNode(parent *Device, id, name, nodeType string) *Node {
	return &Node{
		thing:    newThing(&parent.thing, id, nil, nil),
		name:     name,
		nodeType: nodeType,
	}
}

// AddProperty appends a property; insertion order is the announcement order.
func (n *Node) AddProperty(property *Property) {
	n.properties = append(n.properties, property)
}

func (n *Node) Properties() []*Property {
	return n.properties
}

// Announce publishes the node's convention attributes and recursively
// announces its properties.
func (n *Node) Announce() error {
	ids := make([]string, 0, len(n.properties))
	for _, property := range n.properties {
		ids = append(ids, property.ID())
	}

	if err := n.SetAttribute("$name", n.name); err != nil {
		return err
	}
	if err := n.SetAttribute("$type", n.nodeType); err != nil {
		return err
	}
	if err := n.SetAttribute("$properties", strings.Join(ids, ",")); err != nil {
		return err
	}
	for _, property := range n.properties {
		if err := property.Announce(); err != nil {
			return err
		}
	}
	return nil
}
