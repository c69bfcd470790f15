package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"})
	defer p.Close()

	assert.NotNil(t, p.writer)
	assert.Equal(t, []string{"localhost:9092"}, p.brokers)
}

func TestProducer_PublishRejectsUnmarshalable(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"})
	defer p.Close()

	err := p.Publish(context.Background(), "bookings", "1", make(chan int))
	assert.ErrorContains(t, err, "failed to marshal payload")
}

func TestProducer_CheckConnectionWithoutBrokers(t *testing.T) {
	p := NewProducer(nil)
	defer p.Close()

	assert.Error(t, p.CheckConnection(context.Background()))
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}
