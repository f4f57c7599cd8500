package mocks

import (
	"github.com/stretchr/testify/mock"
)

type ByteSourceMock struct {
	mock.Mock
}

func (s *ByteSourceMock) Poll() ([]byte, error) {
	args := s.Called()
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (s *ByteSourceMock) Close() error {
	args := s.Called()
	return args.Error(0)
}
