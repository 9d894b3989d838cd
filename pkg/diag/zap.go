package diag

import "go.uber.org/zap"

// NewZapReporter logs each diagnostic as a structured warning.
func NewZapReporter(logger *zap.Logger) Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	sugar := logger.Sugar()
	return ReporterFunc(func(d Diagnostic) {
		kv := []any{"kind", string(d.Kind)}
		if d.Type != "" {
			kv = append(kv, "type", d.Type)
		}
		if d.Field != "" {
			kv = append(kv, "field", d.Field)
		}
		if d.Value != "" {
			kv = append(kv, "value", d.Value)
		}
		if d.Severity == SeverityError {
			sugar.Errorw(d.Message, kv...)
			return
		}
		sugar.Warnw(d.Message, kv...)
	})
}
