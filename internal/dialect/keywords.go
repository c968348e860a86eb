package dialect

import "sort"

var keywords = [kindCount]map[string]struct{}{
	C: set(
		"bool", "int", "void", "if", "else", "return", "true", "false",
		"while", "for", "do", "switch", "case", "break", "continue",
		"struct", "typedef", "enum", "const", "static", "extern",
	),
	Squirrel: set(
		"function", "local", "if", "else", "return", "true", "false",
		"while", "for", "foreach", "in", "switch", "case", "break",
		"continue", "class", "extends", "constructor", "this", "base",
		"null", "typeof", "clone", "delete",
	),
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// IsKeyword reports whether word is reserved in k.
func IsKeyword(k Kind, word string) bool {
	if k <= Unknown || k >= kindCount {
		return false
	}
	_, ok := keywords[k][word]
	return ok
}

// Keywords returns the sorted keyword list of k.
func Keywords(k Kind) []string {
	if k <= Unknown || k >= kindCount {
		return nil
	}
	out := make([]string, 0, len(keywords[k]))
	for w := range keywords[k] {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
