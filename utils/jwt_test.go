package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractToken(t *testing.T) {
	token, err := GenerateToken("cust-a", RoleUser, time.Hour)
	require.NoError(t, err)

	sub, role, err := ExtractIDAndRoleFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cust-a", sub)
	assert.Equal(t, RoleUser, role)
}

func TestExtractRejectsGarbage(t *testing.T) {
	_, _, err := ExtractIDAndRoleFromToken("not-a-token")
	assert.Error(t, err)
}

func TestExtractRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken("prov-1", RoleProvider, -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractIDAndRoleFromToken(token)
	assert.Error(t, err)
}

func TestExtractRejectsTamperedToken(t *testing.T) {
	token, err := GenerateToken("cust-a", RoleUser, time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"
	_, _, err = ExtractIDAndRoleFromToken(tampered)
	assert.Error(t, err)
}
