package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinTypes(t *testing.T) {
	assert.True(t, IsBuiltinType("Int"))
	assert.True(t, IsBuiltinType("StringBuilder"))
	assert.False(t, IsBuiltinType("Deploy"))

	assert.True(t, IsIntegerType("Int"))
	assert.False(t, IsIntegerType("Bool"))
	assert.False(t, IsIntegerType("int"))
}
