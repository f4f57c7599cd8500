package system

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds the node's configuration tree loaded from a YAML file.
// Values are addressed with dotted paths, e.g. "mqtt.broker.host_address".
type Config struct {
	values map[interface{}]interface{}
}

func LoadConfig(filepathName string) (*Config, error) {
	fileContent, err := os.ReadFile(filepath.Clean(filepathName))
	if err != nil {
		return nil, errors.Wrap(err, "read configuration file")
	}

	values := make(map[interface{}]interface{})
	if err := yaml.Unmarshal(fileContent, &values); err != nil {
		return nil, errors.Wrap(err, "parse configuration file")
	}

	return &Config{values: values}, nil
}

// NewConfig wraps an already-built configuration tree. Used by tests.
func NewConfig(values map[interface{}]interface{}) *Config {
	return &Config{values: values}
}

// Has checks if a given property is configured.
func (c *Config) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Get returns a property's value, or false if it isn't configured.
func (c *Config) Get(name string) (interface{}, bool) {
	var value interface{} = c.values
	for _, token := range strings.Split(name, ".") {
		mapping, ok := value.(map[interface{}]interface{})
		if !ok {
			return nil, false
		}
		value, ok = mapping[token]
		if !ok {
			return nil, false
		}
	}
	return value, true
}

func (c *Config) GetString(name string) (string, bool) {
	value, ok := c.Get(name)
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

func (c *Config) GetInt(name string) (int, bool) {
	value, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	number, ok := value.(int)
	return number, ok
}
