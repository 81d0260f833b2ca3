package document

import (
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// encodeText renders value as a PDF text string. Printable ASCII is written
// as an escaped literal, anything else as UTF-16BE hex with a byte order mark.
func encodeText(value string) types.Object {
	if isPrintableASCII(value) {
		if escaped, err := types.Escape(value); err == nil {
			return types.StringLiteral(*escaped)
		}
	}
	return types.NewHexLiteral([]byte(types.EncodeUTF16String(value)))
}

// decodeText reads a text string written by encodeText or by another
// producer. Anything that is not a string object reads as "".
func decodeText(obj types.Object) string {
	if hl, ok := obj.(types.HexLiteral); ok {
		// hex strings may be broken up by whitespace
		obj = types.HexLiteral(strings.Join(strings.Fields(string(hl)), ""))
	}
	s, err := types.StringOrHexLiteral(obj)
	if err != nil || s == nil {
		return ""
	}
	return *s
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}
