package utils_test

import (
	"testing"

	"github.com/pocketfin/pocketfin/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := utils.HashPassword("secreta1")
	require.NoError(t, err)
	assert.NotEqual(t, "secreta1", hash)
	assert.True(t, utils.CheckPasswordHash("secreta1", hash))
	assert.False(t, utils.CheckPasswordHash("otra", hash))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, utils.IsEmail("ana@example.com"))
	assert.False(t, utils.IsEmail("ana@"))
	assert.False(t, utils.IsEmail("no-es-un-correo"))
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"letters and digits", "nuevaclave9", true},
		{"too short", "abc1", false},
		{"only letters", "soloLetras", false},
		{"only digits", "12345678", false},
		{"exactly eight", "clave123", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.IsStrongPassword(tt.password))
		})
	}
}
