package producer

import (
	"reflect"
	"sort"

	"github.com/heetch/felice/v3/common"
	"github.com/heetch/felice/v3/message"
)

// A SerializerRegistry holds the serializers of a topic: one for message
// keys, one for payloads, and one per header name. Serializers are
// registered with their concrete type, using SetKeyCallback,
// SetPayloadCallback and SetHeaderCallback, and can be retrieved either
// erased, for the generic send path, or with their original type using
// KeyCallback, PayloadCallback and HeaderCallback.
//
// The zero value is ready to use. A registry is meant to be filled once
// by a single goroutine, then shared: it is safe to read it from
// concurrent code as long as nothing registers serializers anymore.
type SerializerRegistry struct {
	topic   string
	key     handle
	payload handle
	headers map[string]handle
}

// handle is implemented by all the serializers stored in a registry.
type handle interface {
	Serializer
	mismatch(got reflect.Type) *ConfigError
}

// RegistryHolder is implemented by *SerializerRegistry and by the types
// embedding it, such as *Config. It allows the generic functions of this
// package to operate on both.
type RegistryHolder interface {
	registry() *SerializerRegistry
}

func (r *SerializerRegistry) registry() *SerializerRegistry {
	return r
}

// KeySerializer returns the key serializer.
func (r *SerializerRegistry) KeySerializer() (Serializer, error) {
	return r.lookup(KeyRole, "")
}

// PayloadSerializer returns the payload serializer.
func (r *SerializerRegistry) PayloadSerializer() (Serializer, error) {
	return r.lookup(PayloadRole, "")
}

// HeaderSerializer returns the serializer registered for the header
// called name. Names are case-sensitive.
func (r *SerializerRegistry) HeaderSerializer(name string) (Serializer, error) {
	return r.lookup(HeaderRole, name)
}

func (r *SerializerRegistry) lookup(role Role, name string) (handle, error) {
	var (
		h   handle
		err = ErrNotRegistered
	)
	switch role {
	case KeyRole:
		h = r.key
	case PayloadRole:
		h = r.payload
	case HeaderRole:
		h, err = r.headers[name], ErrUnknownHeader
	}
	if h == nil {
		return nil, &ConfigError{Topic: r.topic, Role: role, Name: name, Err: err}
	}
	return h, nil
}

// HeaderNames returns the sorted names of all the headers having a serializer.
func (r *SerializerRegistry) HeaderNames() []string {
	names := make([]string, 0, len(r.headers))
	for name := range r.headers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetKeyCallback registers fn as the key serializer, replacing any
// previous one. The key type T is taken from fn. A nil fn removes the
// key serializer.
func SetKeyCallback[T any](h RegistryHolder, fn func(T) ([]byte, error)) {
	r := h.registry()
	if fn == nil {
		r.key = nil
		return
	}
	r.key = &unarySerializer[T]{slot: r.newSlot(KeyRole, "", typeOf[T]()), fn: fn}
	common.Logger.Printf("Registered key serializer. topic=%q type=%v\n", r.topic, typeOf[T]())
}

// SetPayloadCallback registers fn as the payload serializer, replacing
// any previous one. The payload type T is taken from fn, which also
// receives the headers of each message. A nil fn removes the payload
// serializer.
func SetPayloadCallback[T any](h RegistryHolder, fn func(T, message.Headers) ([]byte, error)) {
	r := h.registry()
	if fn == nil {
		r.payload = nil
		return
	}
	r.payload = &headerAwareSerializer[T]{slot: r.newSlot(PayloadRole, "", typeOf[T]()), fn: fn}
	common.Logger.Printf("Registered payload serializer. topic=%q type=%v\n", r.topic, typeOf[T]())
}

// SetHeaderCallback registers fn as the serializer of the header called
// name, replacing any previous one. The header type T is taken from fn.
// A nil fn removes the header serializer.
func SetHeaderCallback[T any](h RegistryHolder, name string, fn func(T) ([]byte, error)) {
	r := h.registry()
	if fn == nil {
		delete(r.headers, name)
		return
	}
	if r.headers == nil {
		r.headers = make(map[string]handle)
	}
	r.headers[name] = &unarySerializer[T]{slot: r.newSlot(HeaderRole, name, typeOf[T]()), fn: fn}
	common.Logger.Printf("Registered header serializer. topic=%q header=%q type=%v\n", r.topic, name, typeOf[T]())
}

// KeyCallback returns the key serializer with its original type. It
// fails if no key serializer was registered, or if it was registered
// for a type other than T.
func KeyCallback[T any](h RegistryHolder) (KeySerializerFunc[T], error) {
	s, err := h.registry().lookup(KeyRole, "")
	if err != nil {
		return nil, err
	}
	u, ok := s.(*unarySerializer[T])
	if !ok {
		return nil, s.mismatch(typeOf[T]())
	}
	return u.fn, nil
}

// PayloadCallback returns the payload serializer with its original type.
// It fails if no payload serializer was registered, or if it was
// registered for a type other than T.
func PayloadCallback[T any](h RegistryHolder) (PayloadSerializerFunc[T], error) {
	s, err := h.registry().lookup(PayloadRole, "")
	if err != nil {
		return nil, err
	}
	p, ok := s.(*headerAwareSerializer[T])
	if !ok {
		return nil, s.mismatch(typeOf[T]())
	}
	return p.fn, nil
}

// HeaderCallback returns the serializer of the header called name with
// its original type. It fails if no serializer was registered for that
// header, or if it was registered for a type other than T.
func HeaderCallback[T any](h RegistryHolder, name string) (HeaderSerializerFunc[T], error) {
	s, err := h.registry().lookup(HeaderRole, name)
	if err != nil {
		return nil, err
	}
	u, ok := s.(*unarySerializer[T])
	if !ok {
		return nil, s.mismatch(typeOf[T]())
	}
	return u.fn, nil
}

func (r *SerializerRegistry) newSlot(role Role, name string, typ reflect.Type) slot {
	return slot{topic: r.topic, role: role, name: name, typ: typ}
}
