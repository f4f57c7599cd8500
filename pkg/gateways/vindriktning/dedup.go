package vindriktning

import (
	"fmt"
	"os"
	"strconv"

	bloomFilter "github.com/bits-and-blooms/bloom/v3"
)

const (
	DUPLICATION_FILTER            = "0"
	FILTER_CAPACITY               = "1000000"
	DUPLICATION_PROBABILITY       = "0.01"
	RESET_FILTER_USAGE_PERCENTAGE = "0.75"
)

// duplicationFilter suppresses republishing a cycle already sent with the
// same timestamp and value, e.g. when a stalled sensor replays a burst.
// Disabled unless the DUPLICATION_FILTER environment variable is "1".
type duplicationFilter struct {
	filter       *bloomFilter.BloomFilter
	maximumUsage float32
	enabled      bool
}

func newDuplicationFilter() *duplicationFilter {
	enabled := getValueFromEnvironmentVariable("DUPLICATION_FILTER", DUPLICATION_FILTER) == "1"
	if !enabled {
		return &duplicationFilter{}
	}

	filterCapacity, capacityErr := strconv.ParseUint(getValueFromEnvironmentVariable("FILTER_CAPACITY", FILTER_CAPACITY), 10, 0)
	duplicationProbability, probabilityErr := strconv.ParseFloat(getValueFromEnvironmentVariable("DUPLICATION_PROBABILITY", DUPLICATION_PROBABILITY), 32)
	if capacityErr != nil || probabilityErr != nil {
		panic("FILTER_CAPACITY and DUPLICATION_PROBABILITY environment variables with invalid values.")
	}
	maximumUsage, err := strconv.ParseFloat(getValueFromEnvironmentVariable("RESET_FILTER_USAGE_PERCENTAGE", RESET_FILTER_USAGE_PERCENTAGE), 32)
	if err != nil {
		panic("RESET_FILTER_USAGE_PERCENTAGE environment variable with invalid value.")
	}

	return &duplicationFilter{
		filter:       bloomFilter.NewWithEstimates(uint(filterCapacity), duplicationProbability),
		maximumUsage: float32(maximumUsage),
		enabled:      true,
	}
}

// isDuplicated checks if a cycle with this timestamp and value was already
// published. New cycles are recorded as a side effect.
func (d *duplicationFilter) isDuplicated(timestamp int64, value string) bool {
	if !d.enabled {
		return false
	}

	d.reset()
	key := []byte(fmt.Sprintf("%d_%s", timestamp, value))
	if d.filter.Test(key) {
		return true
	}
	d.filter.Add(key)
	return false
}

func (d *duplicationFilter) reset() {
	currentUsage := float32(d.filter.ApproximatedSize()) / float32(d.filter.Cap())
	if currentUsage >= d.maximumUsage {
		d.filter.ClearAll()
	}
}

func getValueFromEnvironmentVariable(variableName, defaultValue string) string {
	value := os.Getenv(variableName)
	if value != "" {
		return value
	}
	return defaultValue
}
