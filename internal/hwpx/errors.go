package hwpx

import (
	"errors"
	"fmt"
)

// Kind classifies operation errors so the protocol layer can translate them
// to stable error codes without matching message text.
type Kind int

const (
	KindIndexRange Kind = iota + 1
	KindInvalidArgument
	KindNotFound
	KindParse
	KindPermission
)

// Stable error codes exposed to MCP clients.
const (
	CodeParagraphIndexOutOfRange = "PARAGRAPH_INDEX_OUT_OF_RANGE"
	CodeTableIndexOutOfRange     = "TABLE_INDEX_OUT_OF_RANGE"
	CodeInvalidArgument          = "INVALID_ARGUMENT"
	CodeDocumentNotFound         = "DOCUMENT_NOT_FOUND"
	CodeElementNotFound          = "ELEMENT_NOT_FOUND"
	CodeParseError               = "PARSE_ERROR"
	CodePermissionDenied         = "PERMISSION_DENIED"
	CodeInternalError            = "INTERNAL_ERROR"
)

// OpError is the error type raised by all document operations.
type OpError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *OpError) Unwrap() error { return e.Err }

// IndexRangeError reports an out-of-bounds positional index.
func IndexRangeError(code, format string, args ...any) *OpError {
	return &OpError{Kind: KindIndexRange, Code: code, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgumentError reports malformed caller input.
func InvalidArgumentError(format string, args ...any) *OpError {
	return &OpError{Kind: KindInvalidArgument, Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing element or file that the operation's
// contract requires to exist.
func NotFoundError(code, format string, args ...any) *OpError {
	return &OpError{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

// ParseError reports an unreadable or malformed container.
func ParseError(message string, err error) *OpError {
	return &OpError{Kind: KindParse, Code: CodeParseError, Message: message, Err: err}
}

// PermissionError reports a path escaping the configured base directory.
func PermissionError(format string, args ...any) *OpError {
	return &OpError{Kind: KindPermission, Code: CodePermissionDenied, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode returns the stable code for err, or INTERNAL_ERROR when err is
// not an OpError.
func ErrorCode(err error) string {
	var op *OpError
	if errors.As(err, &op) {
		return op.Code
	}
	return CodeInternalError
}
