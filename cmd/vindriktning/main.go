package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/armeniopinto/vindriktning-go/pkg/gateways/homie/network"
	"github.com/armeniopinto/vindriktning-go/pkg/gateways/vindriktning"
	"github.com/armeniopinto/vindriktning-go/pkg/logging"
	"github.com/armeniopinto/vindriktning-go/pkg/system"
)

const (
	defaultConfigFilepath = "config.yaml"
	defaultLogLevel       = "info"
	defaultSerialDevice   = "/dev/ttyUSB0"
)

func main() {
	configFilepath := os.Getenv("CONFIG_FILEPATH")
	if configFilepath == "" {
		configFilepath = defaultConfigFilepath
	}

	config, err := system.LoadConfig(configFilepath)
	if err != nil {
		logging.NewLogrus(defaultLogLevel, os.Stdout).Get("Main").Fatal(err)
	}

	logLevel, ok := config.GetString("logging.level")
	if !ok {
		logLevel = defaultLogLevel
	}
	logs := logging.NewLogrus(logLevel, os.Stdout)
	log := logs.Get("Main")

	sys := system.NewSystem(config, system.NewClock())
	log.Infof("Device '%s' booting.", sys.DeviceID())

	newBroker := func(clientID, hostAddress string, port int) network.Broker {
		return network.NewMQTTBroker(clientID, hostAddress, port)
	}
	publisher := vindriktning.NewPublisher(sys, newBroker, logs.Get("Publisher"))
	defer publisher.Close()

	serialDevice, ok := config.GetString("uart.device")
	if !ok {
		serialDevice = defaultSerialDevice
	}
	source, err := vindriktning.NewSerialSource(serialDevice)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("Reading sensor data from '%s'.", serialDevice)

	reader := vindriktning.NewReader(sys, publisher, source, logs.Get("Reader"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		log.Info("Exiting...")
		reader.Stop()
	}()

	reader.Start(ctx)
}
