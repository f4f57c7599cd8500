package entities

// Device lifecycle states published under the $state attribute.
// https://homieiot.github.io/specification/#device-lifecycle
const (
	StateInit         string = "init"
	StateReady        string = "ready"
	StateDisconnected string = "disconnected"
	StateSleeping     string = "sleeping"
	StateLost         string = "lost"
	StateAlert        string = "alert"
)

// Sample is a single validated reading taken from the sensor.
type Sample struct {
	Timestamp int64
	PM25      int
}

// CycleResult is the aggregate of one sampling cycle: the average of the
// buffered readings and the timestamp of the last one.
type CycleResult struct {
	PM25      float64
	Timestamp int64
}
