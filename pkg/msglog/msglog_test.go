package msglog_test

import (
	"strings"
	"testing"

	"github.com/chazu/burl/pkg/msglog"
)

// recorder is a Sink that keeps every message it consumes.
type recorder struct {
	msgs []msglog.Message
}

func (r *recorder) Consume(m msglog.Message) {
	r.msgs = append(r.msgs, m)
}

func TestWarningfCapturesSeverityAndLocation(t *testing.T) {
	rec := &recorder{}
	prev := msglog.SetSink(rec)
	defer msglog.SetSink(prev)

	msglog.Warningf("mesh has %d degenerate polygons", 3)

	if len(rec.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(rec.msgs))
	}
	m := rec.msgs[0]
	if m.Group != msglog.Warning {
		t.Errorf("Group = %v, want Warning", m.Group)
	}
	if m.Text != "mesh has 3 degenerate polygons" {
		t.Errorf("Text = %q", m.Text)
	}
	if !strings.HasSuffix(m.File, "msglog_test.go") {
		t.Errorf("File = %q, want this test file", m.File)
	}
	if m.Line == 0 {
		t.Error("Line not captured")
	}
}

func TestErrorf(t *testing.T) {
	rec := &recorder{}
	prev := msglog.SetSink(rec)
	defer msglog.SetSink(prev)

	msglog.Errorf("conversion failed")

	if len(rec.msgs) != 1 || rec.msgs[0].Group != msglog.Error {
		t.Fatalf("expected one Error message, got %+v", rec.msgs)
	}
}

func TestGroupString(t *testing.T) {
	tests := []struct {
		g    msglog.Group
		want string
	}{
		{msglog.None, ""},
		{msglog.Warning, "WARNING"},
		{msglog.Error, "ERROR"},
		{msglog.Group(42), "Group(42)"},
	}
	for _, tt := range tests {
		if got := tt.g.String(); got != tt.want {
			t.Errorf("Group(%d).String() = %q, want %q", int(tt.g), got, tt.want)
		}
	}
}

func TestSetSinkNilRestoresDefault(t *testing.T) {
	rec := &recorder{}
	msglog.SetSink(rec)
	msglog.SetSink(nil)
	// Must not panic writing to the default sink.
	msglog.Emitf(msglog.Debug, "default sink active")
	if len(rec.msgs) != 0 {
		t.Error("recorder received a message after being replaced")
	}
}
