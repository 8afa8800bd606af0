package service

import (
	"errors"
	"fmt"
)

// Validation failures leave the session untouched; the caller corrects
// the input and submits again.
var (
	ErrMissingCredential = errors.New("please enter your API key first")
	ErrMissingIndustry   = errors.New("please enter an industry name")
	ErrSessionNotFound   = errors.New("session not found")
	ErrModelNotAllowed   = errors.New("requested model is not available")
)

// NoResultsError halts the pipeline before the report step. A fresh
// Generate request is required to retry.
type NoResultsError struct {
	Query string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no relevant Wikipedia pages found for %q, please try a different industry", e.Query)
}

// RetrievalError wraps a failure of the encyclopedia service.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("error retrieving data: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// GenerationError wraps a failure of the text-generation service. The
// session's report stays empty; no retry is attempted.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("error generating report: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
