package domain_test

import (
	"testing"

	"github.com/srgjo27/ticket_inventory/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketCode_Format(t *testing.T) {
	code, err := domain.NewTicketCode()
	require.NoError(t, err)

	assert.Len(t, code, len(domain.TicketCodePrefix)+26)
	assert.True(t, domain.ValidTicketCode(code), code)
}

func TestNewTicketCode_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		code, err := domain.NewTicketCode()
		require.NoError(t, err)

		_, dup := seen[code]
		require.False(t, dup, "duplicate code %s", code)
		seen[code] = struct{}{}
	}
}

func TestNewTicketCode_TimeOrderedPrefix(t *testing.T) {
	first, err := domain.NewTicketCode()
	require.NoError(t, err)
	second, err := domain.NewTicketCode()
	require.NoError(t, err)

	// the first 10 symbols carry the 48-bit millisecond timestamp
	assert.LessOrEqual(t, first[:len(domain.TicketCodePrefix)+9], second[:len(domain.TicketCodePrefix)+9])
}

func TestValidTicketCode(t *testing.T) {
	assert.False(t, domain.ValidTicketCode("TICKET-lx2k-ABC123"))
	assert.False(t, domain.ValidTicketCode("TKT-"))
	assert.False(t, domain.ValidTicketCode("TKT-0123456789ABCDEFGHJKMNPQRU"))
}
