// Package msglog is the structured message side-channel used by the
// geometry core. The core only emits messages; the sink (an error-log
// widget, a console, a test recorder) is owned and configured by the
// surrounding application.
package msglog

import (
	"fmt"
	"log"
	"runtime"
)

// Group classifies a message. The set is fixed; sinks may filter on it.
type Group int

const (
	None Group = iota
	Trace
	Debug
	Info
	Warning
	Error
)

// String returns the display name of the group.
func (g Group) String() string {
	switch g {
	case None:
		return ""
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	}
	return fmt.Sprintf("Group(%d)", int(g))
}

// Message is one log entry: a severity group, the source location of
// the emitting call, and the message text.
type Message struct {
	Group Group
	File  string
	Line  int
	Text  string
}

// Sink receives emitted messages. Implementations must not call back
// into msglog.
type Sink interface {
	Consume(Message)
}

// stdSink writes messages through the standard log package.
type stdSink struct{}

func (stdSink) Consume(m Message) {
	log.Printf("%s: %s", m.Group, m.Text)
}

var sink Sink = stdSink{}

// SetSink installs the message sink and returns the previous one.
// Passing nil restores the default standard-log sink.
func SetSink(s Sink) Sink {
	prev := sink
	if s == nil {
		s = stdSink{}
	}
	sink = s
	return prev
}

// Emitf formats and emits one message, recording the caller's source
// location.
func Emitf(g Group, format string, args ...any) {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "", 0
	}
	sink.Consume(Message{
		Group: g,
		File:  file,
		Line:  line,
		Text:  fmt.Sprintf(format, args...),
	})
}

// Warningf emits a Warning message.
func Warningf(format string, args ...any) {
	_, file, line, _ := runtime.Caller(1)
	sink.Consume(Message{Group: Warning, File: file, Line: line, Text: fmt.Sprintf(format, args...)})
}

// Errorf emits an Error message.
func Errorf(format string, args ...any) {
	_, file, line, _ := runtime.Caller(1)
	sink.Consume(Message{Group: Error, File: file, Line: line, Text: fmt.Sprintf(format, args...)})
}
