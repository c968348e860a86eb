package diag

import "fmt"

// Span is a half-open byte range inside the decoded payload.
type Span struct {
	Start uint32
	End   uint32
}

func (s Span) String() string {
	return fmt.Sprintf("0x%02X-0x%02X", s.Start, s.End)
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Span
}

func New(sev Severity, code Code, primary Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %s: %s", d.Primary, d.Severity, d.Code.ID(), d.Message)
}
