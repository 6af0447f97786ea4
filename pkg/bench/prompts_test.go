package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePromptsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPrompts(t *testing.T) {
	path := writePromptsFile(t, `[
		{"input": "What is the temperature in building1?", "expected": "21.5"},
		{"input": "Which plugs consume more than 0.5 kW?", "expected": "plug1"}
	]`)

	prompts, err := LoadPrompts(path)
	require.NoError(t, err)
	require.Len(t, prompts, 2)
	assert.Equal(t, "What is the temperature in building1?", prompts[0].Input)
	assert.Equal(t, "21.5", prompts[0].Expected)
	assert.Equal(t, "plug1", prompts[1].Expected)
}

func TestLoadPromptsMissingFile(t *testing.T) {
	_, err := LoadPrompts(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read prompts file")
}

func TestLoadPromptsInvalidJSON(t *testing.T) {
	path := writePromptsFile(t, `{"input": "not an array"}`)

	_, err := LoadPrompts(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode prompts")
}

func TestLoadPromptsEmpty(t *testing.T) {
	path := writePromptsFile(t, `[]`)

	_, err := LoadPrompts(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no prompts defined")
}

func TestLoadPromptsBlankInput(t *testing.T) {
	path := writePromptsFile(t, `[{"input": "  ", "expected": "whatever"}]`)

	_, err := LoadPrompts(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt 0: empty input")
}
