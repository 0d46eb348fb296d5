package producer

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Errors reported by the serializer registry. They are always wrapped
// in a *ConfigError and can be tested with errors.Is.
var (
	// ErrUnknownHeader is returned when no serializer was registered
	// for a header name.
	ErrUnknownHeader = errors.New("unknown header")
	// ErrNotRegistered is returned when the key or payload serializer
	// was never registered.
	ErrNotRegistered = errors.New("not registered")
	// ErrTypeMismatch is returned when a serializer is asked for, or
	// given a value of, a type other than the one it was registered with.
	ErrTypeMismatch = errors.New("type mismatch")
)

// Role tells which part of a message a serializer applies to.
type Role int

const (
	KeyRole Role = iota
	PayloadRole
	HeaderRole
)

func (r Role) String() string {
	switch r {
	case KeyRole:
		return "key"
	case PayloadRole:
		return "payload"
	case HeaderRole:
		return "header"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ConfigError describes a serializer that could not be retrieved or used
// as requested. Such errors denote a programming or configuration
// mistake and are never worth retrying.
type ConfigError struct {
	// Topic of the configuration, if any.
	Topic string
	Role  Role
	// Name of the header, for the HeaderRole.
	Name string
	// Registered and Requested are only set on type mismatches.
	Registered reflect.Type
	Requested  reflect.Type
	// Err is one of ErrUnknownHeader, ErrNotRegistered or ErrTypeMismatch.
	Err error
}

func (e *ConfigError) Error() string {
	var sb strings.Builder
	if e.Topic != "" {
		fmt.Fprintf(&sb, "topic %q: ", e.Topic)
	}
	sb.WriteString(e.Role.String())
	if e.Role == HeaderRole {
		fmt.Fprintf(&sb, " %q", e.Name)
	}
	sb.WriteString(" serializer: ")
	sb.WriteString(e.Err.Error())
	if e.Err == ErrTypeMismatch {
		fmt.Fprintf(&sb, ": registered with %v, got %v", e.Registered, e.Requested)
	}
	return sb.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
