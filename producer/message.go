package producer

import (
	"time"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"github.com/rogpeppe/fastuuid"

	"github.com/heetch/felice/v3/message"
)

var uuids = fastuuid.MustNewGenerator()

// Message represents a message to be sent via Kafka.
// Before sending it, the producer serializes its key, payload and
// headers with the serializers registered on the topic Config.
type Message struct {
	// The Kafka topic this Message applies to. It is set by the
	// producer to the topic of its Config.
	Topic string

	// Key of the message. It must be of the type the key serializer
	// was registered with.
	Key interface{}

	// Payload of the message. It must be of the type the payload
	// serializer was registered with.
	Payload interface{}

	// Headers of the message. Each header must have a registered serializer.
	Headers message.Headers

	// The time at which this Message was produced.
	ProducedAt time.Time

	// Partition where this publication was stored.
	Partition int32

	// Offset where this publication was stored.
	Offset int64

	// Unique ID of the message. Defaults to an uuid.
	ID string
}

// prepare makes sure the message contains a unique ID and a production time.
func (m *Message) prepare(topic string) {
	m.Topic = topic
	if m.ID == "" {
		m.ID = uuids.Hex128()
	}
	if m.ProducedAt.IsZero() {
		m.ProducedAt = time.Now()
	}
}

// ToKafka serializes msg into a Sarama message using the erased
// serializers of the configuration. The message ID is carried as the
// message metadata.
func (c *Config) ToKafka(msg *Message) (*sarama.ProducerMessage, error) {
	ks, err := c.KeySerializer()
	if err != nil {
		return nil, err
	}
	key, err := ks.Serialize(msg.Key, msg.Headers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize key")
	}

	ps, err := c.PayloadSerializer()
	if err != nil {
		return nil, err
	}
	payload, err := ps.Serialize(msg.Payload, msg.Headers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize payload")
	}

	return c.newProducerMessage(msg, key, payload)
}

// toKafka is the typed counterpart of ToKafka.
func toKafka[K, P any](c *Config, msg *Message, key K, payload P) (*sarama.ProducerMessage, error) {
	kfn, err := KeyCallback[K](c)
	if err != nil {
		return nil, err
	}
	kb, err := kfn(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize key")
	}

	pfn, err := PayloadCallback[P](c)
	if err != nil {
		return nil, err
	}
	pb, err := pfn(payload, msg.Headers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize payload")
	}

	return c.newProducerMessage(msg, kb, pb)
}

func (c *Config) newProducerMessage(msg *Message, key, payload []byte) (*sarama.ProducerMessage, error) {
	headers, err := c.serializeHeaders(msg.Headers)
	if err != nil {
		return nil, err
	}

	return &sarama.ProducerMessage{
		Topic:     c.topic,
		Key:       sarama.ByteEncoder(key),
		Value:     sarama.ByteEncoder(payload),
		Headers:   headers,
		Timestamp: msg.ProducedAt,
		Metadata:  msg.ID,
	}, nil
}

func (c *Config) serializeHeaders(headers message.Headers) ([]sarama.RecordHeader, error) {
	if len(headers) == 0 {
		return nil, nil
	}

	rh := make([]sarama.RecordHeader, 0, len(headers))
	for _, h := range headers {
		s, err := c.HeaderSerializer(h.Name)
		if err != nil {
			return nil, err
		}
		v, err := s.Serialize(h.Value, headers)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to serialize header %q", h.Name)
		}
		rh = append(rh, sarama.RecordHeader{Key: []byte(h.Name), Value: v})
	}
	return rh, nil
}
