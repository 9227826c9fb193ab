package util

import (
	"errors"
	"strings"
)

var ErrNoJSONObject = errors.New("no JSON object in text")

// ExtractJSONObject returns the span from the first '{' to the last '}'.
// Models often wrap JSON in prose or code fences; everything outside the span is dropped.
func ExtractJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONObject
	}
	return s[start : end+1], nil
}
