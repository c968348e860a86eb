package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"l5cond/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

// Pretty writes one line per diagnostic:
// <source>:<start>-<end>: <SEV> <CODE>: <message>
// Items are printed in bag order; call bag.Sort() first for offset order.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	source := opts.Source
	if source == "" {
		source = "payload"
	}
	var sb strings.Builder
	items := bag.Items()
	for i, d := range items {
		if opts.Max > 0 && i >= opts.Max {
			fmt.Fprintf(&sb, "... %d more diagnostic(s)\n", len(items)-i)
			break
		}
		sev := d.Severity.String()
		if opts.Color {
			sev = severityColor(d.Severity).Sprint(sev)
		}
		fmt.Fprintf(&sb, "%s:%s: %s %s: %s\n", source, d.Primary, sev, d.Code.ID(), d.Message)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
