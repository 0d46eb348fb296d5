// Package producer provides types for producing messages to Kafka.
//
// Every topic is described by a Config. Besides the options handed to
// Sarama, a Config holds the serializers of the topic: one for message
// keys, one for payloads and one per header name. Serializers are plain
// typed functions, and their type is captured when they are registered:
//
//	cfg := producer.NewConfig("orders", producer.Options{
//		producer.BrokerListOption: "localhost:9092",
//	}, nil)
//	producer.SetKeyCallback(cfg, codec.Int64)
//	producer.SetHeaderCallback(cfg, "codec", codec.String)
//	producer.SetPayloadCallback(cfg, codec.Compressed("codec", codec.JSON[Order]))
//
// Payload serializers receive the headers of the message, so the payload
// encoding can depend on them. Key and header serializers only receive
// the value to serialize.
//
// Serializers are stored type-erased and can be retrieved either as a
// Serializer, which accepts values of any type and checks them at run
// time, or with their original type using KeyCallback, PayloadCallback
// and HeaderCallback. Asking for a type other than the one a serializer
// was registered with fails with ErrTypeMismatch.
//
// Producers require a valid configuration to be able to run properly.
// The SendMessage method uses the erased serializers while the Send
// function uses the typed ones.
package producer
