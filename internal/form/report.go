package form

import "go.uber.org/zap"

// Reporter receives configuration errors found while wiring a form.
type Reporter interface {
	ReportMissingFields(form string, missing []Role)
}

// ZapReporter logs configuration errors.
type ZapReporter struct {
	logger *zap.Logger
}

// NewZapReporter returns a Reporter writing to logger.
func NewZapReporter(logger *zap.Logger) *ZapReporter {
	return &ZapReporter{logger: logger}
}

// ReportMissingFields implements Reporter.
func (r *ZapReporter) ReportMissingFields(form string, missing []Role) {
	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = string(m)
	}
	r.logger.Error("form fields missing, leaving form unmanaged",
		zap.String("form", form),
		zap.Strings("missing", names),
	)
}
