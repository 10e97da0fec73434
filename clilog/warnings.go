package clilog

import "log/slog"

// SlogWarnings routes flag-resolution warnings to a slog.Logger at warn
// level. It satisfies the root package's WarningSink interface.
type SlogWarnings struct {
	logger *slog.Logger
}

// WarnTo creates a SlogWarnings that emits through logger. A nil logger
// falls back to slog.Default().
func WarnTo(logger *slog.Logger) *SlogWarnings {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogWarnings{logger: logger}
}

// Warn emits one warning message.
func (s *SlogWarnings) Warn(message string) {
	s.logger.Warn(message)
}
