package logger

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

var log zerolog.Logger

// leadingFields are written first, in this order, by orderedJSONWriter
var leadingFields = []string{"time", "level", "scope", "message"}

// orderedJSONWriter rewrites each zerolog line so the leading fields come first
type orderedJSONWriter struct {
	output io.Writer
}

// Write reorders one JSON log line; lines that fail to parse pass through untouched
func (w *orderedJSONWriter) Write(p []byte) (int, error) {
	var entry map[string]json.RawMessage
	if err := json.Unmarshal(p, &entry); err != nil {
		return w.output.Write(p)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeField := func(key string, value json.RawMessage) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, _ := json.Marshal(key)
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}

	for _, key := range leadingFields {
		if value, ok := entry[key]; ok {
			writeField(key, value)
			delete(entry, key)
		}
	}
	for key, value := range entry {
		writeField(key, value)
	}
	buf.WriteString("}\n")

	if _, err := w.output.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// init installs a default logger so packages can log before Init runs
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(time.UTC)
	}
	log = zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	zerolog.DefaultContextLogger = &log
}

// Init configures timezone, output format and level. Production writes raw
// zerolog JSON; every other environment gets the ordered writer.
func Init(timezone, environment, level string) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
		log.Warn().Err(err).Str("timezone", timezone).Msg("Invalid timezone, using UTC")
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(loc)
	}

	var writer io.Writer = os.Stdout
	if environment != "prod" {
		writer = &orderedJSONWriter{output: os.Stdout}
	}

	log = zerolog.New(writer).With().Timestamp().Logger().Level(lvl)
	zerolog.SetGlobalLevel(lvl)
	zerolog.DefaultContextLogger = &log

	log.Info().
		Str("timezone", loc.String()).
		Str("environment", environment).
		Str("level", lvl.String()).
		Msg("Logger configured")
}

// SetOutput redirects the logger, used by tests to capture or silence output
func SetOutput(w io.Writer) {
	log = log.Output(w)
}

// Info returns an info level log event
func Info() *zerolog.Event {
	return log.Info()
}

// Warn returns a warning level log event
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error returns an error level log event
func Error() *zerolog.Event {
	return log.Error()
}

// ScopedLogger is a logger carrying a fixed "scope" field
type ScopedLogger struct {
	logger zerolog.Logger
}

// WithScope creates a scoped logger from the current global logger
func WithScope(scope string) *ScopedLogger {
	return &ScopedLogger{
		logger: log.With().Str("scope", scope).Logger(),
	}
}

func (s *ScopedLogger) Debug() *zerolog.Event { return s.logger.Debug() }
func (s *ScopedLogger) Info() *zerolog.Event  { return s.logger.Info() }
func (s *ScopedLogger) Warn() *zerolog.Event  { return s.logger.Warn() }
func (s *ScopedLogger) Error() *zerolog.Event { return s.logger.Error() }
