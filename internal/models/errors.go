package models

import (
	"errors"
	"fmt"
)

// Analysis related errors
var (
	ErrAnalysisNotFound = errors.New("analysis not found")
)

// Source related errors
var (
	ErrInvalidSourceURL = errors.New("invalid GitHub file URL")
	ErrEmptySource      = errors.New("source code is empty")
	ErrSourceTooLarge   = errors.New("source code is too large")
)

// Chat related errors
var (
	ErrInvalidChatHistory = errors.New("chat history contains an unknown role")
)

// FileError reports an uploaded or fetched file that cannot be used as
// source text. It is a recoverable input error.
type FileError struct {
	Issue string
}

func (fe FileError) Error() string {
	return fmt.Sprintf("invalid file: %v", fe.Issue)
}
