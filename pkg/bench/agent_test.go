package bench

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iot-data-space/dataspace"
	"github.com/iot-data-space/dataspace/pkg/catalog"
	"github.com/iot-data-space/dataspace/pkg/llm"
	"github.com/iot-data-space/dataspace/pkg/store/storetest"
)

// scriptedClient pops one turn per Chat call and records the messages it
// was handed.
type scriptedClient struct {
	turns []scriptedTurn
	calls [][]llm.Message
}

type scriptedTurn struct {
	response *llm.Response
	err      error
}

func (c *scriptedClient) Chat(ctx context.Context, messages []llm.Message, tools []llm.Tool) (*llm.Response, error) {
	c.calls = append(c.calls, append([]llm.Message(nil), messages...))
	if len(c.turns) == 0 {
		return nil, errors.New("scripted client exhausted")
	}
	turn := c.turns[0]
	c.turns = c.turns[1:]
	return turn.response, turn.err
}

func (c *scriptedClient) Close() error { return nil }

func toolCallResponse(id, name, arguments string, usage *llm.TokenUsage) scriptedTurn {
	return scriptedTurn{response: &llm.Response{
		ToolCalls:    []llm.ToolCall{{ID: id, Name: name, Arguments: arguments}},
		FinishReason: "tool_calls",
		Model:        "test-model",
		Usage:        usage,
	}}
}

func textResponse(content string, usage *llm.TokenUsage) scriptedTurn {
	return scriptedTurn{response: &llm.Response{
		Content:      content,
		FinishReason: "stop",
		Model:        "test-model",
		Usage:        usage,
	}}
}

func benchCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.TypeEntry{
		{
			Name:        "thermometer",
			Description: "Sensor that measures ambient air temperature",
			Attributes: []catalog.Attribute{
				{Name: "temperature", Description: "Current temperature reading in degrees Celsius"},
				{Name: "located_in", Description: "Identifier of the building the sensor is located in"},
			},
		},
		{
			Name:        "plug",
			Description: "Smart plug that meters power consumption",
			Attributes: []catalog.Attribute{
				{Name: "consumption", Description: "Momentary power consumption in kilowatts"},
				{Name: "located_in", Description: "Identifier of the building the plug is located in"},
			},
		},
	})
	require.NoError(t, err)
	return cat
}

func newTestRunner(t *testing.T, client llm.Client, st *storetest.Store, tracker *Tracker, cfg Config) *Runner {
	t.Helper()
	ds, err := dataspace.NewClient(st, benchCatalog(t), nil)
	require.NoError(t, err)

	runner, err := NewRunner(client, ds, tracker, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return runner
}

func TestNewRunnerValidation(t *testing.T) {
	st := storetest.New()
	ds, err := dataspace.NewClient(st, benchCatalog(t), nil)
	require.NoError(t, err)

	_, err = NewRunner(nil, ds, nil, Config{}, nil)
	assert.Error(t, err)

	_, err = NewRunner(&scriptedClient{}, nil, nil, Config{}, nil)
	assert.Error(t, err)

	runner, err := NewRunner(&scriptedClient{}, ds, nil, Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxTurns, runner.maxTurns)
	assert.Equal(t, DefaultSystemPrompt, runner.systemPrompt)
}

func TestRunnerAnswersWithToolCalls(t *testing.T) {
	client := &scriptedClient{turns: []scriptedTurn{
		toolCallResponse("call_1", "get_types", `{"keywords": "consumption"}`,
			&llm.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}),
		toolCallResponse("call_2", "read", `{"type_id": "plug", "filters": ["consumption > 0.5"]}`,
			&llm.TokenUsage{PromptTokens: 20, CompletionTokens: 5, TotalTokens: 25}),
		textResponse("  plug1 consumes 0.7 kilowatts.  ",
			&llm.TokenUsage{PromptTokens: 30, CompletionTokens: 10, TotalTokens: 40}),
	}}
	st := storetest.New().WithResponse([]any{
		map[string]any{"id": "urn:mcp:plug1", "type": "plug", "consumption": 0.7},
	})
	runner := newTestRunner(t, client, st, nil, Config{})

	records, err := runner.Run(context.Background(), []Prompt{
		{Input: "Which plugs consume more than 0.5 kW?", Expected: "plug1"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "plug1 consumes 0.7 kilowatts.", rec.Output)
	assert.True(t, rec.MatchesExpected)
	assert.Equal(t, 2, rec.MCPCalls)
	assert.Equal(t, 60, rec.InputTokens)
	assert.Equal(t, 20, rec.OutputTokens)
	assert.Equal(t, 80, rec.TotalTokens)
	assert.GreaterOrEqual(t, rec.ResponseTimeSeconds, rec.ExecutionTime)

	calls := st.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "plug", calls[0].Type)
	assert.Equal(t, "consumption>0.5", calls[0].Query)

	// Third model call sees the full transcript with tool results attached.
	require.Len(t, client.calls, 3)
	transcript := client.calls[2]
	require.Len(t, transcript, 6)
	assert.Equal(t, llm.RoleSystem, transcript[0].Role)
	assert.Equal(t, DefaultSystemPrompt, transcript[0].Content)
	assert.Equal(t, llm.RoleUser, transcript[1].Role)
	assert.Equal(t, llm.RoleAssistant, transcript[2].Role)
	require.Len(t, transcript[2].ToolCalls, 1)
	assert.Equal(t, llm.RoleTool, transcript[3].Role)
	assert.Equal(t, "call_1", transcript[3].ToolCallID)
	assert.Contains(t, transcript[3].Content, `"plug"`)
	assert.Equal(t, llm.RoleTool, transcript[5].Role)
	assert.Equal(t, "call_2", transcript[5].ToolCallID)
	assert.Contains(t, transcript[5].Content, "urn:mcp:plug1")
}

func TestRunnerFeedsToolErrorsBack(t *testing.T) {
	client := &scriptedClient{turns: []scriptedTurn{
		toolCallResponse("call_1", "read", `{"type_id": "spaceship"}`, nil),
		textResponse("There is no such type in the data space.", nil),
	}}
	st := storetest.New()
	runner := newTestRunner(t, client, st, nil, Config{})

	records, err := runner.Run(context.Background(), []Prompt{
		{Input: "List all spaceships", Expected: "no such type"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].MCPCalls)
	assert.True(t, records[0].MatchesExpected)
	assert.Zero(t, st.CallCount(), "validation failures must not reach the store")

	require.Len(t, client.calls, 2)
	errMsg := client.calls[1][3]
	assert.Equal(t, llm.RoleTool, errMsg.Role)
	assert.Contains(t, errMsg.Content, `"error"`)
	assert.Contains(t, errMsg.Content, "unknown type_id 'spaceship'")
}

func TestRunnerFeedsUnknownToolBack(t *testing.T) {
	client := &scriptedClient{turns: []scriptedTurn{
		toolCallResponse("call_1", "teleport", `{}`, nil),
		textResponse("done", nil),
	}}
	runner := newTestRunner(t, client, storetest.New(), nil, Config{})

	records, err := runner.Run(context.Background(), []Prompt{{Input: "Teleport plug1"}})
	require.NoError(t, err)
	require.Len(t, records, 1)

	errMsg := client.calls[1][3]
	assert.Contains(t, errMsg.Content, "unknown tool 'teleport'")
}

func TestRunnerAbortsOnModelFailure(t *testing.T) {
	client := &scriptedClient{turns: []scriptedTurn{
		textResponse("building1 hosts two plugs", nil),
		{err: llm.NewServerError(500, "boom")},
	}}
	runner := newTestRunner(t, client, storetest.New(), nil, Config{})

	records, err := runner.Run(context.Background(), []Prompt{
		{Input: "What is in building1?", Expected: "plugs"},
		{Input: "What is in building2?", Expected: "thermometer"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt 1")
	assert.True(t, llm.IsServer(err))
	require.Len(t, records, 1, "records collected before the failure are kept")
	assert.True(t, records[0].MatchesExpected)
}

func TestRunnerStopsAtTurnBudget(t *testing.T) {
	client := &scriptedClient{turns: []scriptedTurn{
		toolCallResponse("call_1", "get_types", `{"keywords": "temperature"}`, nil),
		toolCallResponse("call_2", "get_types", `{"keywords": "temperature"}`, nil),
		toolCallResponse("call_3", "get_types", `{"keywords": "temperature"}`, nil),
	}}
	runner := newTestRunner(t, client, storetest.New(), nil, Config{MaxTurns: 2})

	records, err := runner.Run(context.Background(), []Prompt{
		{Input: "What is the temperature?", Expected: "21.5"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Output)
	assert.False(t, records[0].MatchesExpected)
	assert.Equal(t, 2, records[0].MCPCalls)
	assert.Len(t, client.calls, 2)
}

func TestRunnerTracksTokenUsage(t *testing.T) {
	dir := t.TempDir()
	tracker, err := NewTracker(dir)
	require.NoError(t, err)

	client := &scriptedClient{turns: []scriptedTurn{
		toolCallResponse("call_1", "get_types", `{"keywords": "temperature"}`,
			&llm.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}),
		textResponse("thermometers measure temperature",
			&llm.TokenUsage{PromptTokens: 12, CompletionTokens: 6, TotalTokens: 18}),
	}}
	runner := newTestRunner(t, client, storetest.New(), tracker, Config{})

	_, err = runner.Run(context.Background(), []Prompt{
		{Input: "What measures temperature?", Expected: "thermometer"},
	})
	require.NoError(t, err)
	require.NoError(t, tracker.Close())

	usage := readUsageRecords(t, dir)
	require.Len(t, usage, 2)
	assert.Equal(t, "test-model", usage[0].Model)
	assert.Equal(t, 0, usage[0].PromptIndex)
	assert.Equal(t, 15, usage[0].TotalTokens)
	assert.Equal(t, 18, usage[1].TotalTokens)
}
