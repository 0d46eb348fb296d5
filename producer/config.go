package producer

import (
	"sort"
	"strings"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
)

// DeliveryReport describes the outcome of sending a message.
type DeliveryReport struct {
	Topic     string
	MessageID string
	// Partition and Offset where the message was stored. Both are -1 when Err is set.
	Partition int32
	Offset    int64
	Err       error
}

// DeliveryReportFunc is called once for every message sent, successfully or not.
type DeliveryReportFunc func(DeliveryReport)

// QueueFullFunc is called with a message that could not be queued
// because the local producer queue was full.
type QueueFullFunc func(*Message)

// Config is the producer configuration of a single topic. It holds the
// serializers of the topic, see SerializerRegistry, the callbacks called
// during the life of produced messages, and the options used to build
// the underlying Sarama configuration.
//
// A Config is meant to be built once, before any producer starts using it.
type Config struct {
	SerializerRegistry

	topic        string
	options      Options
	topicOptions Options

	deliveryReport DeliveryReportFunc
	partitioner    PartitionerFunc
	queueFull      QueueFullFunc
}

// NewConfig creates the configuration of the given topic. The
// BrokerListOption must be present in options for the configuration to
// be valid, and a key and a payload serializer must be registered.
// Neither option collection is modified afterwards.
func NewConfig(topic string, options Options, topicOptions Options) *Config {
	return &Config{
		SerializerRegistry: SerializerRegistry{topic: topic},
		topic:              topic,
		options:            options.clone(),
		topicOptions:       topicOptions.clone(),
	}
}

// Topic returns the topic this configuration applies to.
func (c *Config) Topic() string {
	return c.topic
}

// Options returns a copy of the producer options.
func (c *Config) Options() Options {
	return c.options.clone()
}

// TopicOptions returns a copy of the topic options.
func (c *Config) TopicOptions() Options {
	return c.topicOptions.clone()
}

// SetDeliveryReportCallback sets the function called with the outcome of every sent message.
func (c *Config) SetDeliveryReportCallback(fn DeliveryReportFunc) {
	c.deliveryReport = fn
}

// DeliveryReportCallback returns the delivery report callback, if any.
func (c *Config) DeliveryReportCallback() DeliveryReportFunc {
	return c.deliveryReport
}

// SetPartitionerCallback sets the function choosing message partitions.
// It is optional: a partitioner compatible with the JVM clients is used by default.
func (c *Config) SetPartitionerCallback(fn PartitionerFunc) {
	c.partitioner = fn
}

// PartitionerCallback returns the partitioner callback, if any.
func (c *Config) PartitionerCallback() PartitionerFunc {
	return c.partitioner
}

// SetQueueFullCallback sets the function called when a message cannot be queued.
func (c *Config) SetQueueFullCallback(fn QueueFullFunc) {
	c.queueFull = fn
}

// QueueFullCallback returns the queue full callback, if any.
func (c *Config) QueueFullCallback() QueueFullFunc {
	return c.queueFull
}

// Brokers returns the addresses listed in the BrokerListOption.
func (c *Config) Brokers() []string {
	var addrs []string
	for _, addr := range strings.Split(c.options[BrokerListOption], ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

// Validate checks that the configuration can be used to produce messages:
// the topic and the broker list must not be empty, reserved options must
// be known, and both the key and payload serializers must be registered.
func (c *Config) Validate() error {
	if c.topic == "" {
		return errors.New("producer configuration requires a non-empty topic")
	}
	if len(c.Brokers()) == 0 {
		return errors.Errorf("topic %q: missing %q option", c.topic, BrokerListOption)
	}
	if err := checkInternalOptions(c.options, IsInternalOption); err != nil {
		return errors.Wrapf(err, "topic %q: invalid producer options", c.topic)
	}
	if err := checkInternalOptions(c.topicOptions, IsInternalTopicOption); err != nil {
		return errors.Wrapf(err, "topic %q: invalid topic options", c.topic)
	}
	if _, err := c.KeySerializer(); err != nil {
		return err
	}
	if _, err := c.PayloadSerializer(); err != nil {
		return err
	}
	return nil
}

func checkInternalOptions(opts Options, known func(string) bool) error {
	var unknown []string
	for name := range opts {
		if hasInternalPrefix(name) && !known(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return errors.Errorf("unknown options %s", strings.Join(unknown, ", "))
}

// Sarama creates the Sarama configuration matching c, with sane defaults.
func (c *Config) Sarama() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V1_0_0_0
	if id, ok := c.options[ClientIDOption]; ok {
		config.ClientID = id
	}
	config.Producer.RequiredAcks = sarama.WaitForAll // Wait for all in-sync replicas to ack the message
	config.Producer.Retry.Max = 3                    // Retry up to 3 times to produce the message
	// required for the SyncProducer, see https://godoc.org/github.com/Shopify/sarama#SyncProducer
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true

	config.Producer.Partitioner = NewJVMCompatiblePartitioner
	if c.partitioner != nil {
		config.Producer.Partitioner = newFuncPartitioner(c.partitioner)
	}

	return config
}
