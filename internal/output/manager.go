package output

import (
	"errors"
	"fmt"
)

// Sink is a destination for the audit report. Write is called once per run;
// Close is called exactly once afterwards, even when Write failed.
type Sink interface {
	Write(r *Report) error
	Close() error
}

// Manager fans a report out to every configured sink. A failing sink does not
// stop the remaining ones.
type Manager struct {
	sinks []Sink
}

var errNilManager = errors.New("output manager is nil")

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) AddSink(s Sink) error {
	if m == nil {
		return errNilManager
	}
	if s == nil {
		return errors.New("sink must not be nil")
	}
	m.sinks = append(m.sinks, s)
	return nil
}

func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.sinks)
}

func (m *Manager) Write(r *Report) error {
	if r == nil {
		return errors.New("report must not be nil")
	}
	return m.each("write", func(s Sink) error { return s.Write(r) })
}

func (m *Manager) Close() error {
	return m.each("close", Sink.Close)
}

func (m *Manager) each(op string, fn func(Sink) error) error {
	if m == nil {
		return errNilManager
	}
	var errs []error
	for _, s := range m.sinks {
		if err := fn(s); err != nil {
			errs = append(errs, fmt.Errorf("%s %T: %w", op, s, err))
		}
	}
	return errors.Join(errs...)
}
