package invoker

import (
	"bytes"
	"log/slog"
	"strings"
)

// lineLogger is an io.Writer that emits one log record per complete line.
// Partial lines are held until the next newline or Flush.
type lineLogger struct {
	logger  *slog.Logger
	command string
	stream  string
	pending []byte
}

func newLineLogger(logger *slog.Logger, command, stream string) *lineLogger {
	return &lineLogger{logger: logger, command: command, stream: stream}
}

func (l *lineLogger) Write(p []byte) (int, error) {
	l.pending = append(l.pending, p...)
	for {
		idx := bytes.IndexByte(l.pending, '\n')
		if idx < 0 {
			break
		}
		l.emit(string(l.pending[:idx]))
		l.pending = l.pending[idx+1:]
	}
	return len(p), nil
}

// Flush logs any trailing partial line.
func (l *lineLogger) Flush() {
	if len(l.pending) > 0 {
		l.emit(string(l.pending))
		l.pending = nil
	}
}

func (l *lineLogger) emit(line string) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return
	}
	l.logger.Info(line, "cmd", l.command, "stdio_stream", l.stream)
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	max int
	buf []byte
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}
