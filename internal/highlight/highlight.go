// Package highlight styles generated code for terminal display.
package highlight

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"l5cond/internal/dialect"
)

// Class is the syntactic category of a highlighted token.
type Class uint8

const (
	Plain Class = iota
	Keyword
	Function
	Number
	Variable
	String
	Comment
)

func (c Class) String() string {
	switch c {
	case Keyword:
		return "keyword"
	case Function:
		return "function"
	case Number:
		return "number"
	case Variable:
		return "variable"
	case String:
		return "string"
	case Comment:
		return "comment"
	}
	return "plain"
}

// Token is a classified byte range of the input.
type Token struct {
	Class      Class
	Start, End int
}

// Theme maps classes to styles.
type Theme map[Class]lipgloss.Style

// DefaultTheme is a dark-background palette.
func DefaultTheme() Theme {
	return Theme{
		Keyword:  lipgloss.NewStyle().Foreground(lipgloss.Color("#569CD6")).Bold(true),
		Function: lipgloss.NewStyle().Foreground(lipgloss.Color("#DCDCAA")),
		Number:   lipgloss.NewStyle().Foreground(lipgloss.Color("#B5CEA8")),
		Variable: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CDCFE")),
		String:   lipgloss.NewStyle().Foreground(lipgloss.Color("#CE9178")),
		Comment:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6A9955")),
	}
}

var (
	tokenRE    = regexp.MustCompile(`//[^\n]*|"(?:[^"\\\n]|\\.)*"|[A-Za-z_][A-Za-z0-9_]*|[0-9]+`)
	variableRE = regexp.MustCompile(`^(?:flag_)?variable[0-9]+$|^result$`)
)

// Tokenize classifies the interesting tokens of code; everything between
// them is plain.
func Tokenize(code string, kind dialect.Kind) []Token {
	var out []Token
	for _, loc := range tokenRE.FindAllStringIndex(code, -1) {
		start, end := loc[0], loc[1]
		text := code[start:end]
		class := Plain
		switch {
		case strings.HasPrefix(text, "//"):
			class = Comment
		case text[0] == '"':
			class = String
		case text[0] >= '0' && text[0] <= '9':
			if start > 0 && isIdentByte(code[start-1]) {
				continue
			}
			class = Number
		case dialect.IsKeyword(kind, text):
			class = Keyword
		case followedByParen(code, end):
			class = Function
		case variableRE.MatchString(text):
			class = Variable
		default:
			continue
		}
		out = append(out, Token{Class: class, Start: start, End: end})
	}
	return out
}

func followedByParen(code string, end int) bool {
	return end < len(code) && code[end] == '('
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Highlight renders code with theme applied.
func Highlight(code string, kind dialect.Kind, theme Theme) string {
	var sb strings.Builder
	sb.Grow(len(code) * 2)
	prev := 0
	for _, tok := range Tokenize(code, kind) {
		sb.WriteString(code[prev:tok.Start])
		text := code[tok.Start:tok.End]
		if style, ok := theme[tok.Class]; ok {
			text = style.Render(text)
		}
		sb.WriteString(text)
		prev = tok.End
	}
	sb.WriteString(code[prev:])
	return sb.String()
}
