package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Source labels the payload in each line, e.g. a file path or "stdin".
	Source string
	// Max stops after this many diagnostics; 0 prints all.
	Max int
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Source string
	Max    int // обрезка вывода, не Bag
}
