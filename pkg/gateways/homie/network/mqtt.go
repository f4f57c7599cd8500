package network

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/eclipse/paho.golang/paho"
	"github.com/pkg/errors"
)

const (
	connectTimeout   = 10 * time.Second
	publishTimeout   = 5 * time.Second
	keepAliveSeconds = 30

	atLeastOnce byte = 1
)

// MQTTBroker is the MQTT implementation of Broker, built on paho.
type MQTTBroker struct {
	clientID string
	address  string
	client   *paho.Client
}

func NewMQTTBroker(clientID, hostAddress string, port int) *MQTTBroker {
	return &MQTTBroker{
		clientID: clientID,
		address:  fmt.Sprintf("%s:%d", hostAddress, port),
	}
}

// Connect dials the broker, retrying with an exponential backoff bounded by
// connectTimeout. The lazy reconnection policy lives with the caller, so a
// failed Connect simply returns.
func (b *MQTTBroker) Connect() error {
	dialBackOff := backoff.NewExponentialBackOff()
	dialBackOff.MaxElapsedTime = connectTimeout
	err := backoff.Retry(b.connect, dialBackOff)
	return errors.Wrapf(err, "connect to %q", b.address)
}

func (b *MQTTBroker) connect() error {
	conn, err := net.Dial("tcp", b.address)
	if err != nil {
		return err
	}

	client := paho.NewClient(paho.ClientConfig{Conn: conn})
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	_, err = client.Connect(ctx, &paho.Connect{
		ClientID:   b.clientID,
		KeepAlive:  keepAliveSeconds,
		CleanStart: true,
	})
	if err != nil {
		conn.Close()
		return err
	}

	b.client = client
	return nil
}

func (b *MQTTBroker) Publish(topic, payload string) error {
	if b.client == nil {
		return errors.New("not connected to the message broker")
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	_, err := b.client.Publish(ctx, &paho.Publish{
		Topic:   topic,
		Payload: []byte(payload),
		QoS:     atLeastOnce,
		Retain:  true,
	})
	return errors.Wrapf(err, "publish to %q", topic)
}

func (b *MQTTBroker) Disconnect() error {
	if b.client == nil {
		return nil
	}
	return b.client.Disconnect(&paho.Disconnect{ReasonCode: 0})
}
