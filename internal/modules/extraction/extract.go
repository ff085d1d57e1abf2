package extraction

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// Shape is the top-level JSON type a caller expects.
type Shape int

const (
	ShapeAny Shape = iota
	ShapeObject
	ShapeArray
)

func (s Shape) String() string {
	switch s {
	case ShapeObject:
		return "object"
	case ShapeArray:
		return "array"
	default:
		return "any"
	}
}

// fencedJSON matches a fenced block tagged exactly json, followed by a line
// break or blanks, so json5 and jsonc fences are not taken. The body is lazy
// so the first closing fence ends the block.
var fencedJSON = regexp.MustCompile("(?is)```[ \\t]*json(?:[ \\t]*\\r?\\n|[ \\t]+)(.*?)```")

// Extract turns raw backend text into a candidate JSON value. Strategies run
// in order and the first candidate located is final: if it fails to parse
// the result is MalformedOutput, later strategies are not tried.
//
//  1. a ```json fenced block
//  2. the whole trimmed text when it is bracketed as an object or array
//  3. the first balanced {...} or [...] span matching shape
func Extract(raw string, shape Shape) (any, error) {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		return decode(m[1], "fenced block")
	}

	trimmed := strings.TrimSpace(raw)
	if wholeBracketed(trimmed, shape) {
		return decode(trimmed, "whole text")
	}

	if span, ok := firstBalancedSpan(trimmed, shape); ok {
		return decode(span, "balanced span")
	}

	return nil, &MalformedOutputError{Reason: "no JSON " + shape.String() + " found"}
}

func wholeBracketed(s string, shape Shape) bool {
	if len(s) < 2 {
		return false
	}
	obj := s[0] == '{' && s[len(s)-1] == '}'
	arr := s[0] == '[' && s[len(s)-1] == ']'
	switch shape {
	case ShapeObject:
		return obj
	case ShapeArray:
		return arr
	default:
		return obj || arr
	}
}

// firstBalancedSpan scans for the first opener allowed by shape and returns
// the span up to its matching closer. Brackets inside JSON strings are
// ignored.
func firstBalancedSpan(s string, shape Shape) (string, bool) {
	for start := 0; start < len(s); start++ {
		c := s[start]
		if !opensShape(c, shape) {
			continue
		}
		if end, ok := matchClose(s, start); ok {
			return s[start : end+1], true
		}
	}
	return "", false
}

func opensShape(c byte, shape Shape) bool {
	switch shape {
	case ShapeObject:
		return c == '{'
	case ShapeArray:
		return c == '['
	default:
		return c == '{' || c == '['
	}
}

func matchClose(s string, start int) (int, bool) {
	var stack []byte
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func decode(candidate, strategy string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(candidate))))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &MalformedOutputError{Reason: "invalid JSON in " + strategy, Err: err}
	}
	if dec.More() {
		return nil, &MalformedOutputError{Reason: "trailing data after JSON in " + strategy}
	}
	return v, nil
}
