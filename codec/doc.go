// Package codec provides typed serializers ready to be registered on a
// producer topic configuration, their decoding counterparts, and
// helpers to compress payloads according to a message header.
package codec
