package auditlog

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Sink is an append-only, timestamped message log. Both the server and the
// client keep one per process. Entries go through a dedicated logrus logger,
// whose internal locking guarantees concurrent writes are never interleaved.
// The sink is purely observational: write failures are swallowed so a
// logging problem can never abort a session.
type Sink struct {
	logger *log.Logger
	file   *os.File
}

// lineFormatter renders entries as "[YYYY-MM-DD HH:MM:SS] message" lines,
// the format operators expect in the audit files.
type lineFormatter struct{}

func (f *lineFormatter) Format(entry *log.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("[%s] %s\n", entry.Time.Format("2006-01-02 15:04:05"), entry.Message)), nil
}

// Open creates or appends to the audit log file at path
func Open(path string) (*Sink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log %s: %w", path, err)
	}

	logger := log.New()
	logger.SetFormatter(&lineFormatter{})
	logger.SetOutput(file)
	logger.SetLevel(log.InfoLevel)

	return &Sink{logger: logger, file: file}, nil
}

// NewWithWriter builds a sink on an arbitrary writer (used by tests)
func NewWithWriter(w io.Writer) *Sink {
	logger := log.New()
	logger.SetFormatter(&lineFormatter{})
	logger.SetOutput(w)
	logger.SetLevel(log.InfoLevel)
	return &Sink{logger: logger}
}

// Printf appends one formatted, timestamped line
func (s *Sink) Printf(format string, args ...any) {
	if s == nil {
		return
	}
	s.logger.Infof(format, args...)
}

// Close releases the underlying file, if any
func (s *Sink) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}
