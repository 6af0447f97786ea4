package bench

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// Record is one prompt's benchmark outcome.
type Record struct {
	Input           string
	Output          string
	Expected        string
	MatchesExpected bool

	InputTokens  int
	OutputTokens int
	TotalTokens  int

	// MCPCalls counts the tool invocations the model issued for this prompt.
	MCPCalls int

	// ExecutionTime is the time spent inside model calls, in seconds.
	ExecutionTime float64

	// ResponseTimeSeconds is the wall clock time for the whole prompt,
	// tool dispatches included, in seconds.
	ResponseTimeSeconds float64
}

var csvHeader = []string{
	"input",
	"output",
	"expected",
	"matches_expected",
	"input_tokens",
	"output_tokens",
	"total_tokens",
	"mcp_calls",
	"execution_time",
	"response_time_seconds",
}

// WriteCSV writes records to w with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Input,
			r.Output,
			r.Expected,
			strconv.FormatBool(r.MatchesExpected),
			strconv.Itoa(r.InputTokens),
			strconv.Itoa(r.OutputTokens),
			strconv.Itoa(r.TotalTokens),
			strconv.Itoa(r.MCPCalls),
			strconv.FormatFloat(r.ExecutionTime, 'f', 3, 64),
			strconv.FormatFloat(r.ResponseTimeSeconds, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// matchesExpected reports whether the model's output contains the expected
// answer fragment, ignoring case.
func matchesExpected(output, expected string) bool {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		return strings.TrimSpace(output) == ""
	}
	return strings.Contains(strings.ToLower(output), strings.ToLower(expected))
}
