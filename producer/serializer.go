package producer

import (
	"reflect"

	"github.com/heetch/felice/v3/message"
)

// Serializer is the type-erased form of a registered serialization
// callback. It is what the generic send path works with, when the
// concrete types of keys, payloads and headers are unknown.
type Serializer interface {
	// Type returns the type of the values the serializer accepts.
	Type() reflect.Type
	// Serialize turns v into bytes. v must hold a value of Type, or be
	// nil when Type is nillable. Only payload serializers make use of
	// headers, key and header serializers ignore them.
	Serialize(v interface{}, headers message.Headers) ([]byte, error)
}

// KeySerializerFunc serializes message keys of type T.
type KeySerializerFunc[T any] func(T) ([]byte, error)

// PayloadSerializerFunc serializes message payloads of type T. It receives
// the headers of the message being sent.
type PayloadSerializerFunc[T any] func(T, message.Headers) ([]byte, error)

// HeaderSerializerFunc serializes header values of type T.
type HeaderSerializerFunc[T any] func(T) ([]byte, error)

// slot identifies where a serializer is registered, for error reporting.
type slot struct {
	topic string
	role  Role
	name  string
	typ   reflect.Type
}

func (s slot) Type() reflect.Type {
	return s.typ
}

func (s slot) mismatch(got reflect.Type) *ConfigError {
	return &ConfigError{
		Topic:      s.topic,
		Role:       s.role,
		Name:       s.name,
		Registered: s.typ,
		Requested:  got,
		Err:        ErrTypeMismatch,
	}
}

// unarySerializer holds key and header callbacks.
type unarySerializer[T any] struct {
	slot
	fn func(T) ([]byte, error)
}

func (s *unarySerializer[T]) Serialize(v interface{}, _ message.Headers) ([]byte, error) {
	t, ok := cast[T](v)
	if !ok {
		return nil, s.mismatch(reflect.TypeOf(v))
	}
	return s.fn(t)
}

// headerAwareSerializer holds payload callbacks.
type headerAwareSerializer[T any] struct {
	slot
	fn func(T, message.Headers) ([]byte, error)
}

func (s *headerAwareSerializer[T]) Serialize(v interface{}, headers message.Headers) ([]byte, error) {
	t, ok := cast[T](v)
	if !ok {
		return nil, s.mismatch(reflect.TypeOf(v))
	}
	return s.fn(t, headers)
}

// typeOf returns the reflect.Type of T, interface types included.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// cast asserts v to T. An untyped nil is accepted as the zero value of
// any T that can be nil.
func cast[T any](v interface{}) (T, bool) {
	t, ok := v.(T)
	if ok || v != nil {
		return t, ok
	}
	switch typeOf[T]().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return t, true
	}
	return t, false
}
