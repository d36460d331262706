package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/ternarybob/specto/internal/interfaces"
)

func TestConvertMessagesToGemini(t *testing.T) {
	contents, system, err := convertMessagesToGemini([]interfaces.Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "be terse", system)
	require.Len(t, contents, 2)
	assert.Equal(t, genai.RoleUser, string(contents[0].Role))
	assert.Equal(t, genai.RoleModel, string(contents[1].Role))
}

func TestConvertMessagesToGeminiUnknownRoleDefaultsToUser(t *testing.T) {
	contents, _, err := convertMessagesToGemini([]interfaces.Message{
		{Role: "user", Content: "hello"},
		{Role: "tool", Content: "output"},
	})
	require.NoError(t, err)
	require.Len(t, contents, 2)
	assert.Equal(t, genai.RoleUser, string(contents[1].Role))
}

func TestConvertMessagesToGeminiRequiresUserMessage(t *testing.T) {
	_, _, err := convertMessagesToGemini(nil)
	assert.Error(t, err)

	_, _, err = convertMessagesToGemini([]interfaces.Message{
		{Role: "system", Content: "only system"},
	})
	assert.Error(t, err)
}

func TestConvertMessagesToClaude(t *testing.T) {
	messages, system, err := convertMessagesToClaude([]interfaces.Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "be terse", system)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", string(messages[0].Role))
	assert.Equal(t, "assistant", string(messages[1].Role))
}

func TestConvertMessagesToClaudeRequiresUserMessage(t *testing.T) {
	_, _, err := convertMessagesToClaude([]interfaces.Message{
		{Role: "assistant", Content: "no user turn"},
	})
	assert.Error(t, err)
}
