package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	errSubloggerConfigIsNil  = errors.New("sublogger config is nil")
	errUnhandledOutputWriter = errors.New("unhandled output writer")
)

func getWriters(s *SubLoggerConfig) (io.Writer, error) {
	if s == nil {
		return nil, errSubloggerConfigIsNil
	}
	mw, err := MultiWriter()
	if err != nil {
		return nil, err
	}
	outputWriters := strings.Split(s.Output, "|")
	for x := range outputWriters {
		var writer io.Writer
		switch strings.ToLower(outputWriters[x]) {
		case "stdout", "console":
			writer = os.Stdout
		case "stderr":
			writer = os.Stderr
		default:
			return nil, fmt.Errorf("%w: %s", errUnhandledOutputWriter, outputWriters[x])
		}
		err = mw.Add(writer)
		if err != nil {
			return nil, err
		}
	}
	return mw, nil
}

// GenDefaultSettings return struct with known sane/working logger settings
func GenDefaultSettings() Config {
	return Config{
		Enabled: true,
		SubLoggerConfig: SubLoggerConfig{
			Level:  "INFO|WARN|ERROR",
			Output: "console",
		},
		AdvancedSettings: AdvancedSettings{
			ShowLogSystemName: true,
			Spacer:            spacer,
			TimeStampFormat:   timestampFormat,
			Headers: Headers{
				Info:  "[INFO]",
				Warn:  "[WARN]",
				Debug: "[DEBUG]",
				Error: "[ERROR]",
			},
		},
	}
}

// SetupGlobalLogger applies the supplied configuration to all registered sub
// loggers, then applies any per sub logger overrides
func SetupGlobalLogger(cfg *Config) error {
	if cfg == nil {
		return errSubloggerConfigIsNil
	}

	mu.Lock()
	defer mu.Unlock()

	globalLogConfig = *cfg
	logger = newLogger(cfg)

	var output io.Writer = io.Discard
	levels := Levels{}
	if cfg.Enabled {
		var err error
		output, err = getWriters(&cfg.SubLoggerConfig)
		if err != nil {
			return err
		}
		levels = splitLevel(cfg.Level)
	}

	for _, sl := range subLoggers {
		sl.mtx.Lock()
		sl.output = output
		sl.levels = levels
		sl.mtx.Unlock()
	}

	if !cfg.Enabled {
		return nil
	}
	return setupSubLoggers(cfg.SubLoggers)
}

func setupSubLoggers(s []SubLoggerConfig) error {
	for x := range s {
		sl, ok := subLoggers[strings.ToUpper(s[x].Name)]
		if !ok {
			return fmt.Errorf("'%v' %w", s[x].Name, errSubLoggerNotFound)
		}
		output, err := getWriters(&s[x])
		if err != nil {
			return err
		}
		sl.mtx.Lock()
		sl.output = output
		sl.levels = splitLevel(s[x].Level)
		sl.mtx.Unlock()
	}
	return nil
}

func newLogger(c *Config) Logger {
	return Logger{
		TimestampFormat:   c.AdvancedSettings.TimeStampFormat,
		Spacer:            c.AdvancedSettings.Spacer,
		ErrorHeader:       c.AdvancedSettings.Headers.Error,
		InfoHeader:        c.AdvancedSettings.Headers.Info,
		WarnHeader:        c.AdvancedSettings.Headers.Warn,
		DebugHeader:       c.AdvancedSettings.Headers.Debug,
		ShowLogSystemName: c.AdvancedSettings.ShowLogSystemName,
	}
}

// ParseLevels strictly parses a pipe separated level string such as
// "INFO|WARN"
func ParseLevels(level string) (Levels, error) {
	if level == "" {
		return Levels{}, errEmptyLogLevelString
	}
	var l Levels
	for _, lvl := range strings.Split(level, "|") {
		switch strings.ToUpper(lvl) {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		default:
			return Levels{}, fmt.Errorf("%w: %q", errUnhandledLogLevel, lvl)
		}
	}
	return l, nil
}

// ValidateOutput checks that every writer named in a pipe separated output
// string is supported
func ValidateOutput(output string) error {
	_, err := getWriters(&SubLoggerConfig{Output: output})
	return err
}

func splitLevel(level string) (l Levels) {
	enabledLevels := strings.Split(level, "|")
	for x := range enabledLevels {
		switch strings.ToUpper(enabledLevels[x]) {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return
}

func defaultOutput() io.Writer {
	return os.Stdout
}

// register all loggers at package init()
func init() {
	logger = newLogger(&globalLogConfig)

	Global = registerNewSubLogger("LOG")
	ConfigMgr = registerNewSubLogger("CONFIG")
	RequestSys = registerNewSubLogger("REQUESTER")
	ExchangeSys = registerNewSubLogger("EXCHANGE")
}
