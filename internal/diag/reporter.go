package diag

// Reporter is the minimal contract phases use to emit diagnostics.
type Reporter interface {
	Report(code Code, sev Severity, primary Span, msg string)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, primary Span, msg string) {
	if r != nil {
		r.Report(code, SevWarning, primary, msg)
	}
}

// ReportInfo is a shortcut for SevInfo diagnostics.
func ReportInfo(r Reporter, code Code, primary Span, msg string) {
	if r != nil {
		r.Report(code, SevInfo, primary, msg)
	}
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary Span, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(New(sev, code, primary, msg))
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, Span, string) {}
