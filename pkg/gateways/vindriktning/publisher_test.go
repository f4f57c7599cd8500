package vindriktning

import (
	"io"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/armeniopinto/vindriktning-go/pkg/gateways/homie/network"
	"github.com/armeniopinto/vindriktning-go/pkg/logging"
	"github.com/armeniopinto/vindriktning-go/pkg/system"
)

type publication struct {
	topic   string
	payload string
}

type fakeBroker struct {
	publications []publication
	connectErr   error
	publishErr   error
}

func (b *fakeBroker) Connect() error {
	return b.connectErr
}

func (b *fakeBroker) Publish(topic, payload string) error {
	if b.publishErr != nil {
		return b.publishErr
	}
	b.publications = append(b.publications, publication{topic: topic, payload: payload})
	return nil
}

func (b *fakeBroker) Disconnect() error {
	return nil
}

type fakeClock struct {
	now int64
}

func (c *fakeClock) Now() int64 {
	return c.now
}

func (c *fakeClock) ISOTime(timestamp int64) string {
	return strconv.FormatInt(timestamp, 10)
}

func testLog() *logrus.Entry {
	return logging.NewLogrus("debug", io.Discard).Get("Testing")
}

func testSystem(clock system.Clock) *system.System {
	config := system.NewConfig(map[interface{}]interface{}{
		"mqtt": map[interface{}]interface{}{
			"broker": map[interface{}]interface{}{
				"host_address": "broker.local",
				"port":         1883,
			},
		},
		"device": map[interface{}]interface{}{
			"id": "VINDRIKTNING-TEST",
		},
	})
	return system.NewSystem(config, clock)
}

// factory returning the same broker on every attempt, counting attempts.
func countingFactory(broker *fakeBroker, attempts *int) BrokerFactory {
	return func(clientID, hostAddress string, port int) network.Broker {
		*attempts++
		return broker
	}
}

func TestGivenConnectedBrokerThenAnnouncedOnConstruction(t *testing.T) {
	broker := &fakeBroker{}
	attempts := 0

	publisher := NewPublisher(testSystem(&fakeClock{}), countingFactory(broker, &attempts), testLog())

	assert.NotNil(t, publisher.property)
	assert.Equal(t, 1, attempts)
	// Full announcement followed by the ready transition.
	first := broker.publications[0]
	last := broker.publications[len(broker.publications)-1]
	assert.Equal(t, publication{"homie/vindriktning-test/$state", "init"}, first)
	assert.Equal(t, publication{"homie/vindriktning-test/$state", "ready"}, last)
}

func TestGivenUnreachableBrokerThenConstructionSurvives(t *testing.T) {
	broker := &fakeBroker{connectErr: errors.New("connection refused")}
	attempts := 0

	publisher := NewPublisher(testSystem(&fakeClock{}), countingFactory(broker, &attempts), testLog())

	assert.Nil(t, publisher.property)
	assert.Equal(t, 1, attempts)
}

func TestGivenValueThenPublishedOnPropertyTopic(t *testing.T) {
	broker := &fakeBroker{}
	attempts := 0
	publisher := NewPublisher(testSystem(&fakeClock{}), countingFactory(broker, &attempts), testLog())

	err := publisher.Publish("25.0")

	assert.NoError(t, err)
	last := broker.publications[len(broker.publications)-1]
	assert.Equal(t, publication{"homie/vindriktning-test/pm1006/pm2_5", "25.0"}, last)
}

func TestGivenDisconnectedPublisherThenOneReconnectPerPublish(t *testing.T) {
	broker := &fakeBroker{connectErr: errors.New("connection refused")}
	attempts := 0
	publisher := NewPublisher(testSystem(&fakeClock{}), countingFactory(broker, &attempts), testLog())
	assert.Equal(t, 1, attempts)

	assert.NoError(t, publisher.Publish("25.0"))
	assert.Equal(t, 2, attempts)

	assert.NoError(t, publisher.Publish("26.0"))
	assert.Equal(t, 3, attempts)
}

func TestGivenRecoveredBrokerThenPublishResumes(t *testing.T) {
	broker := &fakeBroker{connectErr: errors.New("connection refused")}
	attempts := 0
	publisher := NewPublisher(testSystem(&fakeClock{}), countingFactory(broker, &attempts), testLog())

	broker.connectErr = nil
	err := publisher.Publish("25.0")

	assert.NoError(t, err)
	last := broker.publications[len(broker.publications)-1]
	assert.Equal(t, publication{"homie/vindriktning-test/pm1006/pm2_5", "25.0"}, last)
}

func TestGivenPublishTimeFailureThenErrorPropagated(t *testing.T) {
	broker := &fakeBroker{}
	attempts := 0
	publisher := NewPublisher(testSystem(&fakeClock{}), countingFactory(broker, &attempts), testLog())

	broker.publishErr = errors.New("broken pipe")
	err := publisher.Publish("25.0")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error publishing the value")
}

func TestGivenAnnouncementFailureThenDisconnected(t *testing.T) {
	broker := &fakeBroker{publishErr: errors.New("broken pipe")}
	attempts := 0

	publisher := NewPublisher(testSystem(&fakeClock{}), countingFactory(broker, &attempts), testLog())

	assert.Nil(t, publisher.property)
}

func TestGivenNoConfiguredPortThenDefaultUsed(t *testing.T) {
	config := system.NewConfig(map[interface{}]interface{}{
		"mqtt": map[interface{}]interface{}{
			"broker": map[interface{}]interface{}{
				"host_address": "broker.local",
			},
		},
		"device": map[interface{}]interface{}{"id": "VINDRIKTNING-TEST"},
	})
	sys := system.NewSystem(config, &fakeClock{})
	var seenPort int
	factory := func(clientID, hostAddress string, port int) network.Broker {
		seenPort = port
		return &fakeBroker{}
	}

	NewPublisher(sys, factory, testLog())

	assert.Equal(t, defaultBrokerPort, seenPort)
}
