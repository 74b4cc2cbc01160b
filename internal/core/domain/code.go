package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const TicketCodePrefix = "TKT-"

const codeAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewTicketCode returns a code whose leading characters encode the UUIDv7 millisecond
// timestamp and whose remainder comes from crypto/rand, so codes sort by issue time and
// cannot be enumerated.
func NewTicketCode() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate ticket code: %w", err)
	}

	return TicketCodePrefix + encodeBase32(id[:]), nil
}

// encodeBase32 packs 128 bits into 26 symbols of 5 bits, most significant first.
func encodeBase32(b []byte) string {
	var sb strings.Builder
	sb.Grow(26)

	var acc uint32
	var bits uint
	for _, c := range b {
		acc = acc<<8 | uint32(c)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(codeAlphabet[(acc>>bits)&0x1f])
		}
	}
	if bits > 0 {
		sb.WriteByte(codeAlphabet[(acc<<(5-bits))&0x1f])
	}

	return sb.String()
}

func ValidTicketCode(code string) bool {
	rest, ok := strings.CutPrefix(code, TicketCodePrefix)
	if !ok || len(rest) != 26 {
		return false
	}

	for i := 0; i < len(rest); i++ {
		if strings.IndexByte(codeAlphabet, rest[i]) < 0 {
			return false
		}
	}

	return true
}
