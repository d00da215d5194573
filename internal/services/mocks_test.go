package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/adyam-logistics/trackseed/pkg/trackseed"
)

type mockLoader struct {
	rows     []trackseed.Row
	err      error
	location string
}

func (m *mockLoader) Load(_ context.Context, location string) ([]trackseed.Row, error) {
	m.location = location
	return m.rows, m.err
}

type mockWriter struct {
	files map[string]string
	err   error
	calls int
}

func newMockWriter() *mockWriter {
	return &mockWriter{files: make(map[string]string)}
}

func (m *mockWriter) Write(path string, content []byte) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.files[path] = string(content)
	return nil
}

type mockRecorder struct {
	observed []trackseed.Result
	written  []string
	err      error
}

func (m *mockRecorder) ObserveRun(result trackseed.Result) {
	m.observed = append(m.observed, result)
}

func (m *mockRecorder) WriteTextfile(path string) error {
	m.written = append(m.written, path)
	return m.err
}

// recordingLogger keeps every formatted message for assertions.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, level+" "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.record("VERBOSE", format, args...)
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.record("INFO", format, args...)
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.record("ERROR", format, args...)
}
