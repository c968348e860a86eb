package fuzztests

import (
	"testing"

	"l5cond/internal/decoder"
	"l5cond/internal/model"
	"l5cond/internal/testkit"
)

const (
	maxFuzzInput = 1 << 12

	fnSubPhase     = 0x98EE4B47
	fnGlobalFlag   = 0x2A3D4543
	fnTeamFlag     = 0xFBA3C513
	fnHaveItem     = 0x8D7666D8
	magicSubPhase  = 0x3F1C8A02
	magicBitFlag   = 0x6B0E5D91
	typeTagBitFlag = 0x000002
)

// addPayloadSeeds adds well-formed payloads for both formats; the fuzz
// engine mutates them into the malformed cases.
func addPayloadSeeds(f *testing.F) {
	f.Add(uint8(decoder.FormatLocal), []byte{})
	f.Add(uint8(decoder.FormatLocal), testkit.NewPayload(decoder.FormatLocal).Bytes())
	f.Add(uint8(decoder.FormatLocal), testkit.NewPayload(decoder.FormatLocal).
		Call(fnSubPhase, 0).Int(3).Cmp(model.GreaterEqual).Bytes())
	f.Add(uint8(decoder.FormatLocal), testkit.NewPayload(decoder.FormatLocal).
		Call(fnHaveItem, 1, testkit.Arg(42)).Sep().
		Call(fnTeamFlag, 1, testkit.Arg(7)).Bytes())
	f.Add(uint8(decoder.FormatLocal), testkit.NewPayload(decoder.FormatLocal).
		Ident(0x01020304).Int(9).Cmp(model.Reserved70).Cmp(model.Less).Raw(0xEE).Bytes())
	f.Add(uint8(decoder.FormatMemory), testkit.NewPayload(decoder.FormatMemory).
		Mem(magicSubPhase, 0x000001, false).Int(2).Cmp(model.Greater).Bytes())
	f.Add(uint8(decoder.FormatMemory), testkit.NewPayload(decoder.FormatMemory).
		Mem(magicBitFlag, typeTagBitFlag, true).Int(5).Int(1).Bytes())
	f.Add(uint8(decoder.FormatMemory), testkit.NewPayload(decoder.FormatMemory).
		Call(fnGlobalFlag, 1, testkit.Arg(11)).Int(0).Cmp(model.Equal).Sep().Bytes())
}

// pickFormat maps an arbitrary byte onto a supported format.
func pickFormat(b uint8) decoder.Format {
	if b%2 == 0 {
		return decoder.FormatLocal
	}
	return decoder.FormatMemory
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
