package log

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	errEmptyLoggerName     = errors.New("cannot have empty logger name")
	errSubLoggerExists     = errors.New("sub logger already exists")
	errSubLoggerNotFound   = errors.New("sub logger not found")
	errOutputWriterIsNil   = errors.New("output writer is nil")
	errSubLoggerIsNil      = errors.New("sub logger is nil")
	errUnhandledLogLevel   = errors.New("unhandled log level")
	errEmptyLogLevelString = errors.New("log level string is empty")
)

// NewSubLogger allows for a new sub logger to be registered.
func NewSubLogger(name string) (*SubLogger, error) {
	if name == "" {
		return nil, errEmptyLoggerName
	}
	name = strings.ToUpper(name)
	mu.Lock()
	defer mu.Unlock()
	if _, ok := subLoggers[name]; ok {
		return nil, fmt.Errorf("'%v' %w", name, errSubLoggerExists)
	}
	return registerNewSubLogger(name), nil
}

// GetSubLogger returns a registered sub logger by name
func GetSubLogger(name string) (*SubLogger, error) {
	mu.RLock()
	defer mu.RUnlock()
	sl, ok := subLoggers[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("'%v' %w", name, errSubLoggerNotFound)
	}
	return sl, nil
}

// SetOutput overrides the default output with a new writer
func (sl *SubLogger) SetOutput(o io.Writer) error {
	if sl == nil {
		return errSubLoggerIsNil
	}
	if o == nil {
		return errOutputWriterIsNil
	}
	sl.mtx.Lock()
	sl.output = o
	sl.mtx.Unlock()
	return nil
}

// SetLevels overrides the default levels with new levels; levelception
func (sl *SubLogger) SetLevels(newLevels Levels) error {
	if sl == nil {
		return errSubLoggerIsNil
	}
	sl.mtx.Lock()
	sl.levels = newLevels
	sl.mtx.Unlock()
	return nil
}

// GetLevels returns current functional log levels
func (sl *SubLogger) GetLevels() Levels {
	if sl == nil {
		return Levels{}
	}
	sl.mtx.RLock()
	defer sl.mtx.RUnlock()
	return sl.levels
}

// Name returns the upper case sub logger name
func (sl *SubLogger) Name() string {
	if sl == nil {
		return ""
	}
	return sl.name
}

func (sl *SubLogger) getFields() *logFields {
	if sl == nil {
		return nil
	}
	sl.mtx.RLock()
	defer sl.mtx.RUnlock()
	if sl.output == nil {
		return nil
	}
	return &logFields{
		info:   sl.levels.Info,
		warn:   sl.levels.Warn,
		debug:  sl.levels.Debug,
		error:  sl.levels.Error,
		name:   sl.name,
		output: sl.output,
		logger: logger,
	}
}

func registerNewSubLogger(name string) *SubLogger {
	temp := &SubLogger{
		name:   strings.ToUpper(name),
		output: defaultOutput(),
		levels: splitLevel(defaultLevels),
	}
	subLoggers[temp.name] = temp
	return temp
}
