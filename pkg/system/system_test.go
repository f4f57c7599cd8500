package system

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGivenConfiguredDeviceIDThenUsed(t *testing.T) {
	sys := NewSystem(setUpConfig(), NewClock())

	assert.Equal(t, "VINDRIKTNING-AABBCC", sys.DeviceID())
}

func TestGivenNoConfiguredDeviceIDThenDerived(t *testing.T) {
	sys := NewSystem(NewConfig(map[interface{}]interface{}{}), NewClock())

	assert.True(t, strings.HasPrefix(sys.DeviceID(), "VINDRIKTNING-"))
}
