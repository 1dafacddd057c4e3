package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactscan/internal/parser"
)

func TestGetStandardModules(t *testing.T) {
	assert.True(t, IsKnownModule("@stdlib/deploy"))
	assert.True(t, IsKnownModule(CorePath))
	assert.False(t, IsKnownModule("@stdlib/unknown"))
	assert.True(t, IsStdlibPath("@stdlib/unknown"))
	assert.False(t, IsStdlibPath("./messages.tact"))

	assert.Equal(t, []string{"@stdlib/deploy", "@stdlib/ownable", "@stdlib/std", "@stdlib/stoppable"}, ModulePaths())
	assert.Equal(t, "deploy", GetModuleDefinition("@stdlib/deploy").Name)
}

func TestModuleSourcesParse(t *testing.T) {
	for _, path := range ModulePaths() {
		t.Run(path, func(t *testing.T) {
			src, err := GetModuleDefinition(path).Source()
			require.NoError(t, err)
			require.NotEmpty(t, src)

			file, parseErrs, scanErrs := parser.ParseSource(path, src)
			assert.Empty(t, parseErrs)
			assert.Empty(t, scanErrs)
			assert.NotEmpty(t, file.Items)
		})
	}
}

func TestFunctionEffects(t *testing.T) {
	assert.True(t, IsSendFunction("send"))
	assert.True(t, IsSendFunction("emit"))
	assert.False(t, IsSendFunction("require"))

	assert.True(t, IsSendMethod("reply"))
	assert.False(t, IsSendMethod("toCell"))

	assert.True(t, IsThrowFunction("throw"))
	assert.False(t, IsThrowFunction("throwIf"))
	assert.True(t, IsAssertFunction("require"))
	assert.True(t, IsAssertFunction("throwUnless"))

	def, ok := LookupFunction("cashback")
	require.True(t, ok)
	assert.Equal(t, EffectSend, def.Effect)

	_, ok = LookupMethod("send")
	assert.False(t, ok)
}
