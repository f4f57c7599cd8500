package homie

// Property is a leaf entity carrying the sensor's live value.
// https://homieiot.github.io/specification/#properties
type Property struct {
	thing
	name     string
	dataType string
	unit     string
}

func NewProperty(parent *Node, id, name, dataType, unit string) *Property {
	return &Property{
		thing:    newThing(&parent.thing, id, nil, nil),
		name:     name,
		dataType: dataType,
		unit:     unit,
	}
}

// Announce publishes the property's convention attributes.
func (p *Property) Announce() error {
	attributes := []struct{ name, value string }{
		{"$name", p.name},
		{"$datatype", p.dataType},
		{"$unit", p.unit},
		{"$retained", "true"},
		{"$settable", "false"},
	}
	for _, attribute := range attributes {
		if err := p.SetAttribute(attribute.name, attribute.value); err != nil {
			return err
		}
	}
	return nil
}
