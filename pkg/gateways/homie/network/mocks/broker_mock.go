package mocks

import (
	"github.com/stretchr/testify/mock"
)

type BrokerMock struct {
	mock.Mock
}

func (b *BrokerMock) Connect() error {
	args := b.Called()
	return args.Error(0)
}

func (b *BrokerMock) Publish(topic, payload string) error {
	args := b.Called(topic, payload)
	return args.Error(0)
}

func (b *BrokerMock) Disconnect() error {
	args := b.Called()
	return args.Error(0)
}
