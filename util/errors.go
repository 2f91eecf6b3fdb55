package util

const (
	ERROR_BAD_SOURCE_PATH      = 201
	ERROR_BAD_OUTPUT_PATH      = 202
	ERROR_MALFORMED_INPUT      = 203
	ERROR_ALLOCATION_FAILURE   = 204
	ERROR_BAD_PATTERN          = 205
	ERROR_NO_INPUT_FILES_FOUND = 206
	ERROR_BAD_OPTION           = 207
)

type ErrorWithCode struct {
	StatusCode    int
	InternalError error
}

var _ error = &ErrorWithCode{}

func (e ErrorWithCode) Error() string {
	return e.InternalError.Error()
}

func (e ErrorWithCode) Unwrap() error {
	return e.InternalError
}
