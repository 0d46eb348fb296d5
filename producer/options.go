package producer

import (
	"sort"
	"strings"
)

// Options holds configuration options as key/value pairs. Values are
// never interpreted by this package, they are handed over to the
// underlying client.
type Options map[string]string

// Option names known to this package.
const (
	// BrokerListOption holds the comma-separated list of broker addresses.
	BrokerListOption = "metadata.broker.list"
	// ClientIDOption holds the client id sent to the brokers.
	ClientIDOption = "client.id"

	// InternalOptionsPrefix is the prefix of all the options reserved
	// for Felice rather than for the Kafka client.
	InternalOptionsPrefix = "internal.producer."
)

// Reserved options. They are only valid in producer options, none is
// valid in topic options.
var (
	internalOptions = newOptionSet(
		"auto.throttle",
		"auto.throttle.multiplier",
		"flush.wait.for.acks",
		"flush.wait.for.acks.timeout.ms",
		"log.level",
		"max.queue.length",
		"payload.policy",
		"preserve.message.order",
		"queue.full.notification",
		"retries",
		"skip.unknown.headers",
		"timeout.ms",
		"wait.for.acks.timeout.ms",
	)
	internalTopicOptions = newOptionSet()
)

type optionSet map[string]struct{}

func newOptionSet(names ...string) optionSet {
	s := make(optionSet, len(names))
	for _, n := range names {
		s[InternalOptionsPrefix+n] = struct{}{}
	}
	return s
}

func (s optionSet) sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsInternalOption reports whether name is a reserved producer option.
func IsInternalOption(name string) bool {
	_, ok := internalOptions[name]
	return ok
}

// IsInternalTopicOption reports whether name is a reserved topic option.
func IsInternalTopicOption(name string) bool {
	_, ok := internalTopicOptions[name]
	return ok
}

// InternalOptions returns the sorted names of the reserved producer options.
func InternalOptions() []string {
	return internalOptions.sorted()
}

func hasInternalPrefix(name string) bool {
	return strings.HasPrefix(name, InternalOptionsPrefix)
}

func (o Options) clone() Options {
	c := make(Options, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}
