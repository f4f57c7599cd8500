package vindriktning

import (
	"io"
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// ByteSource is a poll-style byte stream from the sensor: Poll returns
// whatever bytes are currently available, possibly none, without blocking.
type ByteSource interface {
	Poll() ([]byte, error)
	Close() error
}

const pollBufferSize = 256

// serialSource reads the sensor's serial device file without blocking.
type serialSource struct {
	file *os.File
}

// NewSerialSource opens a serial device in non-blocking mode. Line speed and
// framing are assumed already configured on the port.
func NewSerialSource(devicePath string) (ByteSource, error) {
	file, err := os.OpenFile(devicePath, os.O_RDONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "open serial device %q", devicePath)
	}
	return &serialSource{file: file}, nil
}

func (s *serialSource) Poll() ([]byte, error) {
	buffer := make([]byte, pollBufferSize)
	n, err := s.file.Read(buffer)
	if n > 0 {
		return buffer[:n], nil
	}
	if err == nil || errors.Is(err, syscall.EAGAIN) || errors.Is(err, io.EOF) {
		return nil, nil
	}
	return nil, errors.Wrap(err, "read serial device")
}

func (s *serialSource) Close() error {
	return s.file.Close()
}
