package jsonvalue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"
)

// ErrNoSelection is returned when a selector matches nothing.
var ErrNoSelection = errors.New("jsonvalue: selector matched no value")

// Select narrows v to the sub-value addressed by a jq path expression such as
// ".data.items[0]". The expression is evaluated as path(expr), so the result
// is read back from v itself and keeps its member order. Only the first match
// is used. The returned string is the location of the match, e.g.
// "$.data.items[0]".
func Select(v Value, expression string) (Value, string, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" || expression == "." {
		return v, "$", nil
	}

	query, err := gojq.Parse("path(" + expression + ")")
	if err != nil {
		return Value{}, "", fmt.Errorf("jsonvalue: invalid selector %q: %w", expression, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return Value{}, "", fmt.Errorf("jsonvalue: compile selector %q: %w", expression, err)
	}

	iter := code.Run(v.toAny())
	result, ok := iter.Next()
	if !ok {
		return Value{}, "", fmt.Errorf("%w: %q", ErrNoSelection, expression)
	}
	if err, isErr := result.(error); isErr {
		return Value{}, "", fmt.Errorf("jsonvalue: selector %q: %w", expression, err)
	}
	steps, ok := result.([]any)
	if !ok {
		return Value{}, "", fmt.Errorf("jsonvalue: selector %q did not yield a path", expression)
	}
	return v.follow(steps, expression)
}

func (v Value) follow(steps []any, expression string) (Value, string, error) {
	current := v
	var location strings.Builder
	location.WriteString("$")

	for _, step := range steps {
		switch key := step.(type) {
		case string:
			next, ok := current.Get(key)
			if !ok {
				return Value{}, "", fmt.Errorf("%w: %q", ErrNoSelection, expression)
			}
			current = next
			location.WriteString("." + key)
		case int:
			if current.kind == KindArray && key < 0 {
				// jq counts negative indexes from the end.
				key += len(current.items)
			}
			if current.kind != KindArray || key < 0 || key >= len(current.items) {
				return Value{}, "", fmt.Errorf("%w: %q", ErrNoSelection, expression)
			}
			current = current.items[key]
			location.WriteString("[" + strconv.Itoa(key) + "]")
		default:
			return Value{}, "", fmt.Errorf("jsonvalue: selector %q must address a single value", expression)
		}
	}
	return current, location.String(), nil
}

// toAny converts the tree into the generic form gojq evaluates. Member order
// is lost here, which is why Select only asks gojq for paths.
func (v Value) toAny() any {
	switch v.kind {
	case KindBool:
		return v.text == "true"
	case KindNumber:
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil {
			return v.text
		}
		return f
	case KindString:
		return v.text
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.toAny()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.Len())
		for _, member := range v.Members() {
			out[member.Key] = member.Value.toAny()
		}
		return out
	default:
		return nil
	}
}
