package invoker

import (
	"errors"
	"log/slog"
	"strings"
)

// LogSubprocessError reports a failed command: the captured stderr and stdout
// lines first, then a summary record carrying the return code. cmd names the
// logical operation (e.g. "npx degit"), msg is the human-readable failure.
func LogSubprocessError(logger *slog.Logger, cmd string, err error, msg string) {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		logger.Error(cmd+" failed", "error", err, "error_message", msg)
		return
	}

	logLines(logger, cmd, "stderr", exitErr.Stderr)
	logLines(logger, cmd, "stdout", exitErr.Stdout)
	logger.Error(cmd+" failed", "returncode", exitErr.Code, "error_message", msg)
}

func logLines(logger *slog.Logger, cmd, stream, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		logger.Error(line, "cmd", cmd, "stdio_stream", stream)
	}
}
