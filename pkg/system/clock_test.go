package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGivenTimestampThenISOTime(t *testing.T) {
	clock := NewClock()

	// 2022-01-02 07:45:04 UTC
	assert.Equal(t, "2022-01-02 07:45:04+00:00", clock.ISOTime(1641109504))
}

func TestGivenEpochThenISOTime(t *testing.T) {
	clock := NewClock()

	assert.Equal(t, "1970-01-01 00:00:00+00:00", clock.ISOTime(0))
}
