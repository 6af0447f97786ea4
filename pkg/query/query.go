// Package query normalizes human-written filter expressions into the
// entity store's query grammar.
//
// A filter expression has the form "<attribute><operator><value>", with
// optional whitespace around each part. Normalization splits the
// expression at its operator, classifies the value, quotes it when the
// store's grammar requires it, and joins the resulting clauses into a
// single query string.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Operators lists the recognized comparison operators in match priority
// order. The order is load-bearing: two-character operators precede the
// one-character operators they contain, so "<=" is never split as "<".
var Operators = []string{"==", "!=", "<=", ">=", "<", ">", "contains"}

// clauseSeparator joins normalized clauses into one query string.
const clauseSeparator = ";"

// Clause is a single parsed filter condition. It is produced transiently
// by Parse and rendered back to the store grammar by String.
type Clause struct {
	Attribute string
	Operator  string
	Value     string
	// Numeric records whether Value parses as a floating-point literal.
	// Numeric values are rendered unquoted.
	Numeric bool
}

// String renders the clause as "attribute<operator>value" with no
// surrounding spaces. Values that are neither numeric nor already quoted
// are wrapped in double quotes.
func (c Clause) String() string {
	value := c.Value
	if !c.Numeric && !isQuoted(value) {
		value = `"` + value + `"`
	}
	return c.Attribute + c.Operator + value
}

// Parse splits a raw filter expression into a Clause. Operators are tried
// in priority order and the expression is split at the first occurrence
// of the first operator found anywhere in it; both sides are trimmed.
// An expression containing no recognized operator yields an
// *InvalidFilterError.
func Parse(filter string) (Clause, error) {
	for _, op := range Operators {
		if !strings.Contains(filter, op) {
			continue
		}
		parts := strings.SplitN(filter, op, 2)
		value := strings.TrimSpace(parts[1])
		return Clause{
			Attribute: strings.TrimSpace(parts[0]),
			Operator:  op,
			Value:     value,
			Numeric:   isNumber(value),
		}, nil
	}
	return Clause{}, NewInvalidFilterError(filter)
}

// Normalize parses every filter expression and joins the normalized
// clauses with ";" in input order. Normalization is all-or-nothing: a
// single invalid expression fails the whole batch and no partial query
// is returned. An empty or nil input yields an empty query string.
func Normalize(filters []string) (string, error) {
	if len(filters) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(filters))
	for _, filter := range filters {
		clause, err := Parse(filter)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, clause.String())
	}

	return strings.Join(clauses, clauseSeparator), nil
}

// isNumber reports whether value parses as a floating-point literal.
func isNumber(value string) bool {
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// isQuoted reports whether value starts and ends with the same quote
// character. Only the first and last characters are inspected; interior
// quotes are not validated.
func isQuoted(value string) bool {
	if len(value) < 2 {
		return false
	}
	return value[0] == value[len(value)-1] && (value[0] == '\'' || value[0] == '"')
}

// InvalidFilterError reports a filter expression that contains no
// recognized operator.
type InvalidFilterError struct {
	Filter string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter '%s': unsupported operator", e.Filter)
}

// Is implements errors.Is support for InvalidFilterError.
// This allows errors.Is(err, &InvalidFilterError{}) to work with wrapped errors.
func (e *InvalidFilterError) Is(target error) bool {
	_, ok := target.(*InvalidFilterError)
	return ok
}

// NewInvalidFilterError creates a new invalid filter error naming the
// offending expression.
func NewInvalidFilterError(filter string) *InvalidFilterError {
	return &InvalidFilterError{Filter: filter}
}
