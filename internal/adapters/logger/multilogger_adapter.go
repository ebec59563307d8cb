package logger_adapter

import (
	"errors"

	"listing-service/internal/core/port"
)

var errNoLoggers = errors.New("multilogger: at least one logger is required")

// MultiLoggerAdapter - fan-out по stdout и Fluent Bit
type MultiLoggerAdapter struct {
	sinks []port.LoggerPort
}

// NewMultiloggerAdapter пропускает nil (выключенные в конфиге логгеры) и
// раскрывает вложенные MultiLoggerAdapter, чтобы запись не дублировалась по цепочке.
// Если остался один логгер, он возвращается как есть.
func NewMultiloggerAdapter(loggers ...port.LoggerPort) (port.LoggerPort, error) {
	var sinks []port.LoggerPort
	for _, l := range loggers {
		switch v := l.(type) {
		case nil:
		case *MultiLoggerAdapter:
			sinks = append(sinks, v.sinks...)
		default:
			sinks = append(sinks, v)
		}
	}

	switch len(sinks) {
	case 0:
		return nil, errNoLoggers
	case 1:
		return sinks[0], nil
	}
	return &MultiLoggerAdapter{sinks: sinks}, nil
}

func (m *MultiLoggerAdapter) each(write func(port.LoggerPort)) {
	for _, sink := range m.sinks {
		write(sink)
	}
}

func (m *MultiLoggerAdapter) Info(msg string, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Info(msg, fields) })
}

func (m *MultiLoggerAdapter) Warn(msg string, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Warn(msg, fields) })
}

func (m *MultiLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Error(msg, err, fields) })
}

func (m *MultiLoggerAdapter) Debug(msg string, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Debug(msg, fields) })
}

func (m *MultiLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	scoped := &MultiLoggerAdapter{sinks: make([]port.LoggerPort, 0, len(m.sinks))}
	m.each(func(l port.LoggerPort) { scoped.sinks = append(scoped.sinks, l.WithFields(fields)) })
	return scoped
}
