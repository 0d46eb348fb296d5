package message

// Header is a single header of an outgoing message. Its Value is turned into
// bytes by the header serializer registered under Name.
type Header struct {
	Name  string
	Value interface{}
}

// Headers is the ordered collection of headers attached to a message.
// Payload serializers receive it so they can adapt the encoding to the
// headers being sent alongside.
type Headers []Header

// New creates a Headers collection and applies all the given Options to it.
func New(opts ...Option) Headers {
	h := make(Headers, 0, len(opts))
	for _, o := range opts {
		o(&h)
	}

	return h
}

// Get returns the value of the first header called name, and a
// Boolean value indicating if the header was found at all.
func (h Headers) Get(name string) (v interface{}, ok bool) {
	for _, hdr := range h {
		if hdr.Name == name {
			return hdr.Value, true
		}
	}

	return nil, false
}

// Set replaces the value of the first header called name. If no such
// header exists, it is appended at the end of the collection.
func (h *Headers) Set(name string, v interface{}) {
	for i := range *h {
		if (*h)[i].Name == name {
			(*h)[i].Value = v
			return
		}
	}
	*h = append(*h, Header{Name: name, Value: v})
}

// Names returns the header names in order.
func (h Headers) Names() []string {
	names := make([]string, len(h))
	for i, hdr := range h {
		names[i] = hdr.Name
	}
	return names
}
