package producer

import (
	"context"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"

	"github.com/heetch/felice/v3/common"
	"github.com/heetch/felice/v3/message"
)

// Producer sends messages of a single topic to Kafka.
// It embeds the sarama.SyncProducer type and shadows the SendMessage
// method to use our Message type.
type Producer struct {
	sarama.SyncProducer

	config *Config
}

// New creates a Producer for the topic of the given configuration.
// This Producer is synchronous, this means that it will wait for all the replicas to
// acknowledge the message.
func New(config *Config) (*Producer, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid producer configuration")
	}

	p, err := sarama.NewSyncProducer(config.Brokers(), config.Sarama())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create a producer")
	}

	return &Producer{SyncProducer: p, config: config}, nil
}

// NewFrom creates a producer using the given SyncProducer. Useful when
// wanting to create multiple producers with different configurations but sharing the same underlying connection.
func NewFrom(producer sarama.SyncProducer, config *Config) (*Producer, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid producer configuration")
	}

	return &Producer{SyncProducer: producer, config: config}, nil
}

// Config returns the configuration of the producer.
func (p *Producer) Config() *Config {
	return p.config
}

// SendMessage serializes the given message with the serializers of the
// topic and sends it to Kafka synchronously. Partition and Offset are
// set on msg once it is stored.
func (p *Producer) SendMessage(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg.prepare(p.config.topic)
	pmsg, err := p.config.ToKafka(msg)
	if err != nil {
		return errors.Wrap(err, "failed to convert message")
	}

	return p.send(msg, pmsg)
}

// Send creates a message from the given key, payload and headers and sends
// it to Kafka synchronously. Unlike SendMessage, the key and payload
// serializers are retrieved with their original types, K and P, which
// must be the types they were registered with.
// It returns the Message sent to the brokers.
func Send[K, P any](ctx context.Context, p *Producer, key K, payload P, headers message.Headers) (*Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	msg := &Message{Key: key, Payload: payload, Headers: headers}
	msg.prepare(p.config.topic)
	pmsg, err := toKafka(p.config, msg, key, payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert message")
	}

	return msg, p.send(msg, pmsg)
}

func (p *Producer) send(msg *Message, pmsg *sarama.ProducerMessage) error {
	var err error
	msg.Partition, msg.Offset, err = p.SyncProducer.SendMessage(pmsg)
	if err != nil {
		common.Logger.Printf("Failed to send message. topic=%q id=%q err=%q\n", msg.Topic, msg.ID, err)
	}

	if report := p.config.deliveryReport; report != nil {
		report(DeliveryReport{
			Topic:     msg.Topic,
			MessageID: msg.ID,
			Partition: msg.Partition,
			Offset:    msg.Offset,
			Err:       err,
		})
	}

	return errors.Wrap(err, "failed to send message")
}
