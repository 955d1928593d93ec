package logging

import (
	"context"
	"maps"
	"sync"
)

// Record is a single captured log entry.
type Record struct {
	Level   Level
	Message string
	Err     error
	Fields  Fields
}

// recordSink is shared between a CaptureLogger and its WithFields children
// so all of them append to the same record list.
type recordSink struct {
	mu      sync.Mutex
	records []Record
}

func (s *recordSink) append(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

func (s *recordSink) snapshot() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *recordSink) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = s.records[:0]
}

// CaptureLogger records every entry in memory. It is intended for tests
// that assert on the diagnostics a computation produced.
type CaptureLogger struct {
	level  Level
	fields Fields
	sink   *recordSink
}

// NewCaptureLogger creates a capture logger that records at Debug level
// and above.
func NewCaptureLogger() *CaptureLogger {
	return &CaptureLogger{
		level:  DebugLevel,
		fields: make(Fields),
		sink:   &recordSink{},
	}
}

// Records returns a copy of everything captured so far.
func (c *CaptureLogger) Records() []Record {
	return c.sink.snapshot()
}

// RecordsAt returns captured records at exactly the given level.
func (c *CaptureLogger) RecordsAt(level Level) []Record {
	var out []Record
	for _, r := range c.sink.snapshot() {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

// Reset discards all captured records.
func (c *CaptureLogger) Reset() {
	c.sink.reset()
}

func (c *CaptureLogger) capture(level Level, err error, msg string, fields ...Fields) {
	if level < c.level {
		return
	}

	allFields := make(Fields)
	maps.Copy(allFields, c.fields)
	for _, f := range fields {
		maps.Copy(allFields, f)
	}

	c.sink.append(Record{
		Level:   level,
		Message: msg,
		Err:     err,
		Fields:  allFields,
	})
}

func (c *CaptureLogger) Debug(msg string, fields ...Fields) {
	c.capture(DebugLevel, nil, msg, fields...)
}

func (c *CaptureLogger) Info(msg string, fields ...Fields) {
	c.capture(InfoLevel, nil, msg, fields...)
}

func (c *CaptureLogger) Warn(msg string, fields ...Fields) {
	c.capture(WarnLevel, nil, msg, fields...)
}

func (c *CaptureLogger) Error(err error, msg string, fields ...Fields) {
	c.capture(ErrorLevel, err, msg, fields...)
}

func (c *CaptureLogger) Fatal(err error, msg string, fields ...Fields) {
	c.capture(FatalLevel, err, msg, fields...)
}

func (c *CaptureLogger) WithFields(fields Fields) Logger {
	newFields := make(Fields)
	maps.Copy(newFields, c.fields)
	maps.Copy(newFields, fields)

	return &CaptureLogger{
		level:  c.level,
		fields: newFields,
		sink:   c.sink,
	}
}

func (c *CaptureLogger) WithContext(ctx context.Context) Logger {
	return c
}

func (c *CaptureLogger) SetLevel(level Level) {
	c.level = level
}
