// Package envelope renders the JSON envelopes every invocation ends with:
// one success or error object on stdout, exit code derived from the outcome.
package envelope

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matthiasdebernardini/lowmain/internal/actions"
	"github.com/matthiasdebernardini/lowmain/internal/apperr"
)

// Envelope is the top-level response object.
type Envelope struct {
	OK          bool                 `json:"ok"`
	Data        map[string]any       `json:"data,omitempty"`
	Error       *ErrorBody           `json:"error,omitempty"`
	Fix         string               `json:"fix,omitempty"`
	NextActions []actions.NextAction `json:"next_actions,omitempty"`
}

// ErrorBody carries the classified failure fields an agent branches on.
type ErrorBody struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

// Success wraps operation data and its suggested follow-ups.
func Success(data map[string]any, next []actions.NextAction) Envelope {
	return Envelope{OK: true, Data: data, NextActions: next}
}

// Failure wraps a classified error.
func Failure(err *apperr.Error) Envelope {
	return Envelope{
		OK: false,
		Error: &ErrorBody{
			Message:   err.Error(),
			Code:      err.Code(),
			Retryable: err.Retryable(),
		},
		Fix: err.Fix(),
	}
}

// Write renders the envelope as a single JSON line.
func (e Envelope) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	return enc.Encode(e)
}

// Panic returns the fixed crash envelope emitted when an invocation faults
// outside normal error handling.
func Panic(v any) string {
	msg := fmt.Sprintf("%v", v)
	body := Envelope{
		OK: false,
		Error: &ErrorBody{
			Message:   "Internal error: " + msg,
			Code:      "PANIC",
			Retryable: false,
		},
		Fix: "Report this bug",
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return `{"ok":false,"error":{"message":"Internal error","code":"PANIC","retryable":false},"fix":"Report this bug"}`
	}
	return string(raw)
}
