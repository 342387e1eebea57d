package logger

import (
	"reflect"
	"testing"
)

type record struct {
	level   string
	message string
	keyvals []any
}

type recordingBackend struct {
	records []record
}

func (r *recordingBackend) log(level, message string, keyvals []any) {
	r.records = append(r.records, record{level, message, keyvals})
}

func (r *recordingBackend) Debug(m string, kv ...any) { r.log("debug", m, kv) }
func (r *recordingBackend) Info(m string, kv ...any)  { r.log("info", m, kv) }
func (r *recordingBackend) Warn(m string, kv ...any)  { r.log("warn", m, kv) }
func (r *recordingBackend) Error(m string, kv ...any) { r.log("error", m, kv) }
func (r *recordingBackend) Fatal(m string, kv ...any) { r.log("fatal", m, kv) }

func TestFacadeForwardsKeyvalsToAllBackends(t *testing.T) {
	first, second := &recordingBackend{}, &recordingBackend{}
	Init(first, second)
	defer Init()

	Info("connected", "port", 5432, "db", "brimfrost")
	Error("lost connection", "err", "timeout")

	for _, b := range []*recordingBackend{first, second} {
		if len(b.records) != 2 {
			t.Fatalf("backend saw %d records, want 2", len(b.records))
		}
		got := b.records[0]
		if got.level != "info" || got.message != "connected" {
			t.Errorf("first record = %+v", got)
		}
		if want := []any{"port", 5432, "db", "brimfrost"}; !reflect.DeepEqual(got.keyvals, want) {
			t.Errorf("keyvals = %v, want %v", got.keyvals, want)
		}
		if b.records[1].level != "error" {
			t.Errorf("second record level = %q", b.records[1].level)
		}
	}
}

func TestLoggingBeforeInitIsDropped(t *testing.T) {
	Init()
	Debug("nobody listening", "k", "v")
	Warn("still nobody")
}
