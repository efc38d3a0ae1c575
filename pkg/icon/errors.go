package icon

import (
	"errors"
	"fmt"
)

// Stage names the pipeline step a per-file error came from.
type Stage string

const (
	StageRead     Stage = "read"
	StageParse    Stage = "parse"
	StageExtract  Stage = "extract"
	StageValidate Stage = "validate"
	StageRewrite  Stage = "rewrite"
	StageAssemble Stage = "assemble"
	StageWrite    Stage = "write"
	StagePanic    Stage = "panic"
)

// ErrFallback is reported in strict mode when a default action was used.
var ErrFallback = errors.New("fallback action used")

// Error is a per-file conversion failure.
type Error struct {
	File  string
	Stage Stage
	Err   error
}

// NewError wraps err. An err that already is an *Error is returned as is.
func NewError(file string, stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{File: file, Stage: stage, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.File, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StageOf returns the stage of err, or "" when err is not an *Error.
func StageOf(err error) Stage {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return ""
}
