package whittle

import (
	"errors"
	"fmt"
)

var ErrIndexOutOfRange = errors.New("index out of range")
var ErrAllocationFailure = errors.New("node allocation failed")
var ErrEmptySequence = errors.New("sequence is empty")
var ErrNegativeCount = errors.New("count must not be negative")
var ErrNegativeSkip = errors.New("skip must not be negative")

// IndexError reports an indexed operation outside its valid range.
type IndexError struct {
	Op     string
	Index  int
	Length int
}

var _ error = &IndexError{}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v at index %v of sequence with length %v: %v", e.Op, e.Index, e.Length, ErrIndexOutOfRange)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
