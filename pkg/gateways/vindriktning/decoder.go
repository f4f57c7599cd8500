// Package vindriktning drives an IKEA VINDRIKTNING air quality sensor: it
// decodes the Cubic PM1006 serial protocol, aggregates readings into sampling
// cycles and publishes the cycle averages as a Homie device.
package vindriktning

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	frameLength              = 20
	frameTypeMarker     byte = 0x16
	framePayloadLength  byte = 17
	frameValueHighIndex      = 5
	frameValueLowIndex       = 6
)

// ErrEmptyInput reports a buffer without a single complete data frame.
var ErrEmptyInput = errors.New("no complete data frames in buffer")

// FrameError reports a malformed data frame, identifying the offending byte
// and its offset in the buffer.
type FrameError struct {
	Offset int
	Byte   byte
	reason string
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("%s, received %#02x at offset %d", e.reason, e.Byte, e.Offset)
}

// Decode decodes a burst of data from the sensor, assuming zero or more
// complete frames in the buffer, and returns the truncated average of the
// PM2.5 values. Trailing partial-frame bytes are ignored.
//
// From PM1006_LED_PARTICLE_SENSOR_MODULE_SPECIFICATIONS:
// "Read measures result of particles:
// Send: 11 02 0B 01 E1
// Response: 16 11 0B DF1 DF4 DF5 DF8 DF9 DF12 DF13 DF14 DF15 DF16[CS]
// Note: PM2.5(μg/m³)= DF3*256+DF4"
// Additional comments: the second octet is the length of the data.
// Other DFs are missing from the example above :), poor documentation.
func Decode(data []byte) (int, error) {
	frameCount := len(data) / frameLength
	if frameCount == 0 {
		return 0, ErrEmptyInput
	}

	sum := 0
	for i := 0; i < frameCount; i++ {
		offset := i * frameLength
		if data[offset] != frameTypeMarker {
			return 0, &FrameError{
				Offset: offset,
				Byte:   data[offset],
				reason: "invalid data frame type, expecting 0x16",
			}
		}
		if data[offset+1] != framePayloadLength {
			return 0, &FrameError{
				Offset: offset + 1,
				Byte:   data[offset+1],
				reason: "invalid data frame length, expecting 17 bytes",
			}
		}
		sum += int(data[offset+frameValueHighIndex])*256 + int(data[offset+frameValueLowIndex])
	}

	return sum / frameCount, nil
}
