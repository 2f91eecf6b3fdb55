package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkippedInputExt(t *testing.T) {
	tests := []struct {
		name      string
		extension string
		want      bool
	}{
		{"text file", ".txt", false},
		{"no extension", "", false},
		{"input file", ".in", false},
		{"result file", ".out", true},
		{"archive", ".zip", true},
		{"upper case image", ".PNG", true},
		{"no dot", "gz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SkippedInputExt(tt.extension), "mismatch for %s", tt.extension)
		})
	}
}

func TestListKeepsAppendOrder(t *testing.T) {
	list := &List[string]{}
	assert.Zero(t, list.Len())

	for _, value := range []string{"a", "b", "c"} {
		list.Append(value)
	}
	assert.Equal(t, 3, list.Len())

	var seen []string
	err := list.ForEach(func(value string) error {
		seen = append(seen, value)
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestListForEachStopsOnError(t *testing.T) {
	list := &List[int]{}
	list.Append(1)
	list.Append(2)
	list.Append(3)

	stop := errors.New("stop")
	visited := 0
	err := list.ForEach(func(value int) error {
		visited++
		if value == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, visited)
}

func TestErrorWithCodeUnwraps(t *testing.T) {
	inner := errors.New("inner")
	err := fmt.Errorf("outer: %w", &ErrorWithCode{StatusCode: ERROR_MALFORMED_INPUT, InternalError: inner})
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "outer: inner", err.Error())
}
