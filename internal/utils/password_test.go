package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashECheckSenha(t *testing.T) {
	hash, err := HashSenha("minha-senha-123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "minha-senha-123", hash)

	assert.True(t, CheckSenha(hash, "minha-senha-123"))
	assert.False(t, CheckSenha(hash, "senha-errada"))
	assert.False(t, CheckSenha("", "minha-senha-123"))
}
