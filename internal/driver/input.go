package driver

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"l5cond/internal/diag"
)

// ErrBadEncoding is returned when payload text is not base64 in any accepted variant.
var ErrBadEncoding = errors.New("payload is not valid base64")

var lenientEncodings = []struct {
	name string
	enc  *base64.Encoding
}{
	{"unpadded base64", base64.RawStdEncoding},
	{"URL-safe base64", base64.URLEncoding},
	{"unpadded URL-safe base64", base64.RawURLEncoding},
}

// DecodeBase64 decodes payload text. Whitespace is ignored and compatibility
// forms (full-width letters from copied documents) fold to ASCII. Standard
// padded base64 is expected; other variants are accepted with a
// DrvBadEncoding warning.
func DecodeBase64(text string, reporter diag.Reporter) ([]byte, error) {
	text = norm.NFKC.String(text)
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty input", ErrBadEncoding)
	}

	data, err := base64.StdEncoding.DecodeString(clean)
	if err == nil {
		return data, nil
	}
	for _, alt := range lenientEncodings {
		if data, altErr := alt.enc.DecodeString(clean); altErr == nil {
			diag.ReportWarning(reporter, diag.DrvBadEncoding, diag.Span{},
				fmt.Sprintf("payload is %s, not standard base64", alt.name))
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrBadEncoding, err)
}
