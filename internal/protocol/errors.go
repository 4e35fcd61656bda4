package protocol

import "errors"

var (
	ErrTruncated          = errors.New("protocol: truncated request")
	ErrUnknownOpcode      = errors.New("protocol: unknown opcode")
	ErrUnknownMark        = errors.New("protocol: unknown mark")
	ErrUnexpectedResponse = errors.New("protocol: unexpected response")
)
