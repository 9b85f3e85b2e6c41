package log

import (
	"fmt"
	"log"
	"time"
)

// Info takes a pointer subLogger struct and string sends to stage
func Info(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stage(fields.header(levelInfo), data)
}

// Infof takes a pointer subLogger struct, string and interface formats sends to stage
func Infof(sl *SubLogger, data string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stagef(fields.header(levelInfo), data, v...)
}

// Debug takes a pointer subLogger struct and string sends to stage
func Debug(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stage(fields.header(levelDebug), data)
}

// Debugf takes a pointer subLogger struct, string and interface formats sends to stage
func Debugf(sl *SubLogger, data string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stagef(fields.header(levelDebug), data, v...)
}

// Warn takes a pointer subLogger struct & string and sends to stage
func Warn(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stage(fields.header(levelWarn), data)
}

// Warnf takes a pointer subLogger struct, string and interface formats sends to stage
func Warnf(sl *SubLogger, data string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stagef(fields.header(levelWarn), data, v...)
}

// Error takes a pointer subLogger struct & interface formats and sends to stage
func Error(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stage(fields.header(levelError), data)
}

// Errorf takes a pointer subLogger struct, string and interface formats sends to stage
func Errorf(sl *SubLogger, data string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fields := sl.getFields()
	fields.stagef(fields.header(levelError), data, v...)
}

const (
	levelInfo = iota
	levelWarn
	levelDebug
	levelError
)

func displayError(err error) {
	if err != nil {
		log.Printf("Logger write error: %v\n", err)
	}
}

// header returns the configured header when the level is enabled, an empty
// string disables the log event
func (l *logFields) header(level int) string {
	if l == nil {
		return ""
	}
	switch level {
	case levelInfo:
		if l.info {
			return l.logger.InfoHeader
		}
	case levelWarn:
		if l.warn {
			return l.logger.WarnHeader
		}
	case levelDebug:
		if l.debug {
			return l.logger.DebugHeader
		}
	case levelError:
		if l.error {
			return l.logger.ErrorHeader
		}
	}
	return ""
}

// stage writes a log event
func (l *logFields) stage(header, data string) {
	if l == nil || header == "" {
		return
	}
	if customLogHook != nil && customLogHook(header, l.name, data) {
		return
	}
	l.write(header, data)
}

// stagef formats and writes a log event
func (l *logFields) stagef(header, data string, v ...any) {
	if l == nil || header == "" {
		return
	}
	if customLogHook != nil && customLogHook(header, l.name, fmt.Sprintf(data, v...)) {
		return
	}
	l.write(header, fmt.Sprintf(data, v...))
}

func (l *logFields) write(header, data string) {
	line := make([]byte, 0, len(header)+len(data)+64)
	line = append(line, header...)
	line = append(line, l.logger.Spacer...)
	if l.logger.TimestampFormat != "" {
		line = time.Now().AppendFormat(line, l.logger.TimestampFormat)
		line = append(line, l.logger.Spacer...)
	}
	if l.logger.ShowLogSystemName {
		line = append(line, l.name...)
		line = append(line, l.logger.Spacer...)
	}
	line = append(line, data...)
	if data == "" || data[len(data)-1] != '\n' {
		line = append(line, '\n')
	}
	_, err := l.output.Write(line)
	displayError(err)
}
