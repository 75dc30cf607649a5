package importer

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch means the payload parsed fine but contained no item with a
// resolvable project name. Nothing is persisted.
var ErrEmptyBatch = errors.New("no importable projects found in payload")

// ParseError reports a payload that is not valid JSON. Batch-fatal.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse import payload: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError reports JSON that is neither a list nor an object carrying a
// list under a known envelope field. Batch-fatal.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string { return e.Msg }
