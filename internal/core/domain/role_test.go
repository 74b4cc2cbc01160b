package domain_test

import (
	"testing"

	"github.com/srgjo27/ticket_inventory/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := domain.ParseRole("organizer")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOrganizer, r)

	_, err = domain.ParseRole("administrador")
	assert.Error(t, err)
}

func TestRoleCapabilities(t *testing.T) {
	assert.False(t, domain.RoleBuyer.CanCancelAnyTicket())
	assert.False(t, domain.RoleOrganizer.CanCancelAnyTicket())
	assert.True(t, domain.RoleAdmin.CanCancelAnyTicket())

	assert.False(t, domain.RoleBuyer.CanValidateTickets())
	assert.True(t, domain.RoleOrganizer.CanValidateTickets())
	assert.True(t, domain.RoleAdmin.CanValidateTickets())

	assert.False(t, domain.RoleOrganizer.CanViewAnyTicket())
	assert.True(t, domain.RoleAdmin.CanViewAnyTicket())
}
