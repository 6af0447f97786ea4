package bench

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iot-data-space/dataspace"
	"github.com/iot-data-space/dataspace/pkg/llm"
)

// DefaultMaxTurns bounds the model round trips per prompt.
const DefaultMaxTurns = 10

// DefaultSystemPrompt steers the model toward the data space tools.
const DefaultSystemPrompt = `You are interacting with a data space that stores objects of multiple types. Each object has attributes relevant to its type, including a special attribute 'located_in' that indicates its location. Users may ask about attributes for specific objects, types, or locations. If the user asks about a specific object, call read with object_id. If the user asks about a specific type, call read with type_id. If the user asks about a location, use get_types to discover which types contain the requested attribute or type description, then read by type_id and filter with located_in.`

// Config tunes a benchmark run.
type Config struct {
	// MaxTurns bounds the model round trips per prompt. Zero means
	// DefaultMaxTurns.
	MaxTurns int
	// SystemPrompt overrides DefaultSystemPrompt when non-blank.
	SystemPrompt string
}

// Runner drives a model through the tool-call loop for each prompt and
// collects per-prompt records.
type Runner struct {
	client  llm.Client
	ds      dataspace.DataSpace
	tracker *Tracker
	logger  *slog.Logger

	maxTurns     int
	systemPrompt string
	tools        []llm.Tool
}

// NewRunner creates a runner. The tracker is optional; pass nil to skip
// token usage persistence.
func NewRunner(client llm.Client, ds dataspace.DataSpace, tracker *Tracker, cfg Config, logger *slog.Logger) (*Runner, error) {
	if client == nil {
		return nil, errors.New("llm client is required")
	}
	if ds == nil {
		return nil, errors.New("data space is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	systemPrompt := cfg.SystemPrompt
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}

	return &Runner{
		client:       client,
		ds:           ds,
		tracker:      tracker,
		logger:       logger,
		maxTurns:     maxTurns,
		systemPrompt: systemPrompt,
		tools:        Tools(),
	}, nil
}

// Run executes every prompt in order. A model failure aborts the run and
// returns the records collected so far alongside the error.
func (r *Runner) Run(ctx context.Context, prompts []Prompt) ([]Record, error) {
	records := make([]Record, 0, len(prompts))

	for i, prompt := range prompts {
		record, err := r.runPrompt(ctx, i, prompt)
		if err != nil {
			return records, fmt.Errorf("prompt %d: %w", i, err)
		}
		records = append(records, record)

		r.logger.Info("prompt completed",
			"index", i,
			"matches_expected", record.MatchesExpected,
			"mcp_calls", record.MCPCalls,
			"total_tokens", record.TotalTokens,
		)
	}

	return records, nil
}

// runPrompt runs the tool-call loop for one prompt until the model answers
// in plain text or the turn budget runs out.
func (r *Runner) runPrompt(ctx context.Context, index int, prompt Prompt) (Record, error) {
	record := Record{
		Input:    prompt.Input,
		Expected: prompt.Expected,
	}

	messages := []llm.Message{
		llm.NewSystemMessage(r.systemPrompt),
		llm.NewUserMessage(prompt.Input),
	}

	start := time.Now()
	answered := false

	for turn := 0; turn < r.maxTurns; turn++ {
		callStart := time.Now()
		resp, err := r.client.Chat(ctx, messages, r.tools)
		record.ExecutionTime += time.Since(callStart).Seconds()
		if err != nil {
			return record, err
		}

		if resp.Usage != nil {
			record.InputTokens += resp.Usage.PromptTokens
			record.OutputTokens += resp.Usage.CompletionTokens
			record.TotalTokens += resp.Usage.TotalTokens
		}
		if r.tracker != nil {
			if err := r.tracker.Record(index, resp.Model, resp.Usage); err != nil {
				r.logger.Warn("failed to record token usage", "error", err)
			}
		}

		if len(resp.ToolCalls) == 0 {
			record.Output = strings.TrimSpace(resp.Content)
			answered = true
			break
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			record.MCPCalls++
			messages = append(messages, llm.NewToolMessage(call.ID, r.dispatch(ctx, call)))
		}
	}

	if !answered {
		r.logger.Warn("turn budget exhausted without a final answer",
			"index", index,
			"max_turns", r.maxTurns,
		)
	}

	record.ResponseTimeSeconds = time.Since(start).Seconds()
	record.MatchesExpected = matchesExpected(record.Output, record.Expected)

	return record, nil
}

// dispatch executes one tool call and returns the payload handed back to
// the model. Dispatch failures are reported to the model as an error
// document rather than aborting the run.
func (r *Runner) dispatch(ctx context.Context, call llm.ToolCall) string {
	r.logger.Debug("dispatching tool call", "tool", call.Name, "arguments", call.Arguments)

	switch call.Name {
	case toolGetTypes:
		var args struct {
			Keywords string `json:"keywords"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return errorDocument(fmt.Errorf("invalid arguments: %w", err))
		}
		return jsonDocument(r.ds.ResolveTypes(args.Keywords))

	case toolRead:
		var args struct {
			TypeID     string   `json:"type_id"`
			ObjectID   string   `json:"object_id"`
			Attributes string   `json:"attributes"`
			Filters    []string `json:"filters"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return errorDocument(fmt.Errorf("invalid arguments: %w", err))
		}
		result, err := r.ds.Read(ctx, dataspace.ReadRequest{
			TypeID:     args.TypeID,
			ObjectID:   args.ObjectID,
			Attributes: args.Attributes,
			Filters:    args.Filters,
		})
		if err != nil {
			return errorDocument(err)
		}
		return jsonDocument(result)

	default:
		return errorDocument(fmt.Errorf("unknown tool '%s'", call.Name))
	}
}

// jsonDocument encodes v for the model.
func jsonDocument(v any) string {
	payload, err := json.Marshal(v)
	if err != nil {
		return errorDocument(fmt.Errorf("failed to encode result: %w", err))
	}
	return string(payload)
}

// errorDocument wraps err in a JSON object so the model can react to it.
func errorDocument(err error) string {
	payload, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(payload)
}
