// Package message defines the header collection carried by messages
// produced with Felice. Header values are kept typed until the producer
// serializes each of them with the header serializer registered for its
// name on the topic configuration.
package message
