package vindriktning

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/armeniopinto/vindriktning-go/pkg/entities"
)

const (
	// The number of samples in a sensor sampling cycle.
	cycleSamples = 7

	// Seconds without new samples after which a cycle is considered finished.
	cycleTimeout = 4

	minPM25 = 0
	maxPM25 = 1000
)

// Aggregator buffers validated readings until a sampling cycle ends.
type Aggregator struct {
	buffer []entities.Sample
	log    *logrus.Entry
}

func NewAggregator(log *logrus.Entry) *Aggregator {
	return &Aggregator{log: log}
}

// Offer buffers one reading. Out-of-range values are sensor noise and are
// discarded without buffering.
func (a *Aggregator) Offer(value int, timestamp int64) {
	if value < minPM25 || value > maxPM25 {
		a.log.Debugf("Discarded out-of-range reading: %d.", value)
		return
	}
	sample := entities.Sample{Timestamp: timestamp, PM25: value}
	a.buffer = append(a.buffer, sample)
	a.log.Debugf("Read data: %+v.", sample)
}

// Size returns the number of buffered samples.
func (a *Aggregator) Size() int {
	return len(a.buffer)
}

// MaybeFlush ends the current cycle if cycleSamples readings were buffered or
// none arrived for more than cycleTimeout seconds. On a flush it clears the
// buffer and returns the rounded cycle average together with the timestamp of
// the last buffered sample.
func (a *Aggregator) MaybeFlush(now int64) (entities.CycleResult, bool) {
	if len(a.buffer) == 0 {
		return entities.CycleResult{}, false
	}

	lastSampleTime := a.buffer[len(a.buffer)-1].Timestamp
	timedOut := now-lastSampleTime > cycleTimeout
	if len(a.buffer) < cycleSamples && !timedOut {
		return entities.CycleResult{}, false
	}

	sum := 0
	for _, sample := range a.buffer {
		sum += sample.PM25
	}
	average := math.Round(float64(sum)/float64(len(a.buffer))*10) / 10
	a.buffer = a.buffer[:0]

	return entities.CycleResult{PM25: average, Timestamp: lastSampleTime}, true
}
