package network

// Broker is a connected message-publishing handle. The Homie convention
// requires every publication to be retained and delivered at least once, so
// Publish carries both properties implicitly.
type Broker interface {
	Connect() error
	Publish(topic, payload string) error
	Disconnect() error
}
