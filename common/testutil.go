package common

import (
	"bytes"
	"log"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	logRegexPrefix = "\\[Felice\\] [0-9]*/[0-1][0-9]/[0-3][0-9] [0-2][0-9]:[0-5][0-9]:[0-5][0-9] "
)

// TestLogger captures everything written to Logger so tests can make
// assertions against it, line by line.
type TestLogger struct {
	buf       *bytes.Buffer
	oldLogger StdLogger
	t         testing.TB
}

// NewTestLogger constructs a test logger we can make assertions against.
// The previous Logger is restored when the test finishes.
func NewTestLogger(t testing.TB) *TestLogger {
	tl := &TestLogger{
		buf:       bytes.NewBuffer([]byte{}),
		oldLogger: Logger,
		t:         t,
	}
	Logger = log.New(tl.buf, "[Felice] ", log.LstdFlags)
	t.Cleanup(tl.TearDown)

	return tl
}

// TearDown sets the common logger back to its previous state
func (tl *TestLogger) TearDown() {
	Logger = tl.oldLogger
}

// SkipLogLine will jump over a log line we don't care about.  If there's an
// error reading from the buffer the test will fail.
func (tl *TestLogger) SkipLogLine(reason string) {
	_, err := tl.buf.ReadString('\n')
	require.NoError(tl.t, err)
	tl.t.Logf("Skipping log line: %s", reason)
}

// LogLineMatches reads the next log line and fails the test unless it
// matches the given regular expression, timestamp prefix excluded.
func (tl *TestLogger) LogLineMatches(match string) {
	content, err := tl.buf.ReadString('\n')
	require.NoError(tl.t, err)
	require.Regexp(tl.t, regexp.MustCompile(logRegexPrefix+match), content)
}

// Empty fails the test if any unread log line remains.
func (tl *TestLogger) Empty() {
	require.Zero(tl.t, tl.buf.Len(), "unexpected log output: %s", tl.buf.String())
}
