package dice

import "go.uber.org/zap"

// loggedSource wraps a Source and logs every draw at debug level, preserving
// an audit trail for combat outcomes.
type loggedSource struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedSource returns a Source that delegates to src and logs each draw.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) Source {
	return &loggedSource{src: src, logger: logger}
}

func (l *loggedSource) Intn(n int) int {
	v := l.src.Intn(n)
	l.logger.Debug("random draw", zap.Int("bound", n), zap.Int("value", v))
	return v
}
