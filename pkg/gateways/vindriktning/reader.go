package vindriktning

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/armeniopinto/vindriktning-go/pkg/system"
)

// The fixed delay between two poll iterations.
const pollInterval = 500 * time.Millisecond

// Reader drives the sampling pipeline: it polls the sensor byte stream,
// decodes and buffers the readings, and publishes each finished cycle.
type Reader struct {
	system     *system.System
	publisher  *Publisher
	source     ByteSource
	aggregator *Aggregator
	dedup      *duplicationFilter
	stop       chan struct{}
	stopOnce   sync.Once
	log        *logrus.Entry
}

func NewReader(sys *system.System, publisher *Publisher, source ByteSource, log *logrus.Entry) *Reader {
	return &Reader{
		system:     sys,
		publisher:  publisher,
		source:     source,
		aggregator: NewAggregator(log),
		dedup:      newDuplicationFilter(),
		stop:       make(chan struct{}),
		log:        log,
	}
}

// Start runs the poll loop until Stop is called or the context is cancelled.
// A stop request only takes effect at the next tick.
func (r *Reader) Start(ctx context.Context) {
	r.log.Info("Sensor reader started.")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.log.Info("Sensor reader stopped.")
			return
		case <-r.stop:
			r.log.Info("Sensor reader stopped.")
			return
		case <-ticker.C:
			r.iterate()
		}
	}
}

// iterate is one poll cycle. Every failure is logged and the loop carries on:
// no bad frame or transient publish error may stop the sampling.
func (r *Reader) iterate() {
	data, err := r.source.Poll()
	if err != nil {
		r.log.Warnf("Error handling sensor data: %s.", err)
	} else if len(data) > 0 {
		r.handleSensorData(data)
	}
	r.publishIfCycleEnded()
}

func (r *Reader) handleSensorData(data []byte) {
	timestamp := r.system.Clock().Now()
	value, err := Decode(data)
	if err != nil {
		r.log.Infof("Error decoding sensor data: %s.", err)
		return
	}
	r.aggregator.Offer(value, timestamp)
}

// publishIfCycleEnded publishes the aggregated value if the sensor sampling
// cycle has ended.
func (r *Reader) publishIfCycleEnded() {
	result, ok := r.aggregator.MaybeFlush(r.system.Clock().Now())
	if !ok {
		return
	}

	value := strconv.FormatFloat(result.PM25, 'f', 1, 64)
	if r.dedup.isDuplicated(result.Timestamp, value) {
		r.log.Debugf("Skipped duplicated cycle at %d.", result.Timestamp)
		return
	}

	datetime := r.system.Clock().ISOTime(result.Timestamp)
	r.log.Infof("Publishing %s ug/m3 at %s.", value, datetime)
	if err := r.publisher.Publish(value); err != nil {
		r.log.Warnf("Error handling sensor data: %s.", err)
	}
}

// Stop requests the loop to stop at the next iteration and releases the
// sensor byte stream.
func (r *Reader) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
		if err := r.source.Close(); err != nil {
			r.log.Warnf("Error closing the sensor stream: %s.", err)
		}
	})
}
