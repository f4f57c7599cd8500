package system

import "time"

const isoTimeFormat = "2006-01-02 15:04:05+00:00"

// Clock provides the time collaborators the sampling pipeline depends on.
type Clock interface {
	// Now returns the number of seconds since the Epoch.
	Now() int64
	// ISOTime renders a timestamp in ISO 8601 format, UTC.
	ISOTime(timestamp int64) string
}

type systemClock struct{}

func NewClock() Clock {
	return &systemClock{}
}

func (systemClock) Now() int64 {
	return time.Now().Unix()
}

func (systemClock) ISOTime(timestamp int64) string {
	return time.Unix(timestamp, 0).UTC().Format(isoTimeFormat)
}
