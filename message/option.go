package message

// Option is a function type that receives a pointer to a Headers
// collection and modifies it in place. Options are intended to build
// the headers of a message before sending it. You can do this either by
// passing them as parameters to the New function, or by calling them
// directly against a Headers value.
type Option func(*Headers)

// With is an Option that sets a header on the collection. You may pass
// as many With options to New as you wish. If multiple With's are
// defined for the same name, the value of the last one passed to New
// will be the value that appears in the collection.
func With(name string, v interface{}) Option {
	return func(h *Headers) {
		h.Set(name, v)
	}
}
