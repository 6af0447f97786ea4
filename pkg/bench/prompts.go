// Package bench drives language models against the data space tool surface
// and reports per-prompt accuracy, token usage, and latency.
package bench

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Prompt pairs a natural language question with the answer fragment the
// model's reply is expected to contain.
type Prompt struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// LoadPrompts reads a JSON array of prompts from path.
func LoadPrompts(path string) ([]Prompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}

	var prompts []Prompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("decode prompts: %w", err)
	}

	if len(prompts) == 0 {
		return nil, errors.New("no prompts defined")
	}
	for i, p := range prompts {
		if strings.TrimSpace(p.Input) == "" {
			return nil, fmt.Errorf("prompt %d: empty input", i)
		}
	}

	return prompts, nil
}
