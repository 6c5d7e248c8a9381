package model

import (
	"errors"
	"fmt"
)

// Fatal pipeline conditions. Everything else degrades per-item.
var (
	// ErrEmptyInput means the input sequence contained no slides.
	ErrEmptyInput = errors.New("no slides to analyze")

	// ErrNoFacts means every slide's extraction yielded zero facts.
	ErrNoFacts = errors.New("no facts extracted from any slide")
)

// ServiceError wraps a transport, auth, or API failure from the reasoning
// service. Fatal for the final analysis call, skippable per-item in the
// extraction and normalization passes.
type ServiceError struct {
	Op  string // Provider name: "openai", "anthropic"
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("reasoning service unavailable during %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the reasoning service replied, but the reply
// did not parse into the expected structure. Never fatal: the owning
// component falls back (skip the slide, pass the group through, drop the
// findings).
type MalformedResponseError struct {
	Op     string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response: %s", e.Op, e.Reason)
}
