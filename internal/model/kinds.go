package model

// StorageClass tells where a variable's value lives.
type StorageClass uint8

const (
	LocalInt StorageClass = iota + 1
	LocalIdent
	MemoryReference
)

func (s StorageClass) String() string {
	switch s {
	case LocalInt:
		return "LocalInt"
	case LocalIdent:
		return "LocalIdent"
	case MemoryReference:
		return "MemoryReference"
	}
	return "Unknown"
}

// SemType is the semantic type used to pick rendering rules.
type SemType uint8

const (
	Unknown SemType = iota
	SubPhase
	BitFlag
	Boolean
	Integer
)

func (t SemType) String() string {
	switch t {
	case SubPhase:
		return "SubPhase"
	case BitFlag:
		return "BitFlag"
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	}
	return "Unknown"
}

// ParseSemType maps catalog spellings ("int", "bool", ...) to a SemType.
func ParseSemType(s string) (SemType, bool) {
	switch s {
	case "int", "integer", "Integer":
		return Integer, true
	case "bool", "boolean", "Boolean":
		return Boolean, true
	case "subphase", "SubPhase":
		return SubPhase, true
	case "bitflag", "BitFlag":
		return BitFlag, true
	case "unknown", "Unknown":
		return Unknown, true
	}
	return Unknown, false
}

// Comparator is the closed set of comparison operators found in the stream.
// Reserved70 and Reserved79 have no known meaning and render as a placeholder.
type Comparator uint8

const (
	Less Comparator = iota + 1
	Greater
	Reserved70
	GreaterEqual
	Equal
	Reserved79
)

// Placeholder is the text rendered for reserved comparators.
const Placeholder = "??"

// Symbol returns the operator text.
func (c Comparator) Symbol() string {
	switch c {
	case Less:
		return "<"
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	case Equal:
		return "=="
	case Reserved70, Reserved79:
		return Placeholder
	}
	return Placeholder
}

// Reserved reports whether the comparator has no known semantics.
func (c Comparator) Reserved() bool {
	return c == Reserved70 || c == Reserved79
}

func (c Comparator) String() string {
	switch c {
	case Less:
		return "Less"
	case Greater:
		return "Greater"
	case Reserved70:
		return "Reserved70"
	case GreaterEqual:
		return "GreaterEqual"
	case Equal:
		return "Equal"
	case Reserved79:
		return "Reserved79"
	}
	return "Invalid"
}
