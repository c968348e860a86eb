package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// decoder
	DecInfo              Code = 1000
	DecComparatorStarved Code = 1001
	DecUnknownToken      Code = 1002
	DecTrailingOperands  Code = 1003
	DecReservedCompare   Code = 1004
	DecUnknownTypeTag    Code = 1005

	// driver
	DrvInfo        Code = 2000
	DrvBadEncoding Code = 2001
)

var codeNames = map[Code]string{
	UnknownCode:          "UnknownCode",
	DecInfo:              "DecInfo",
	DecComparatorStarved: "DecComparatorStarved",
	DecUnknownToken:      "DecUnknownToken",
	DecTrailingOperands:  "DecTrailingOperands",
	DecReservedCompare:   "DecReservedCompare",
	DecUnknownTypeTag:    "DecUnknownTypeTag",
	DrvInfo:              "DrvInfo",
	DrvBadEncoding:       "DrvBadEncoding",
}

func (c Code) ID() string {
	switch {
	case c >= 1000 && c < 2000:
		return fmt.Sprintf("DEC%04d", int(c))
	case c >= 2000 && c < 3000:
		return fmt.Sprintf("DRV%04d", int(c))
	}
	return "E0000"
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}
