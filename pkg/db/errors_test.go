package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: produto_marcas.codigo")

	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "produto_marcas.codigo"))
	assert.False(t, IsUniqueViolation(err, "clientes.cpf"))
	assert.False(t, IsUniqueViolation(errors.New("database is locked"), ""))
	assert.False(t, IsUniqueViolation(nil, ""))
}
