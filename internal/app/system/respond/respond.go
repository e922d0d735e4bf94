// Package respond defines the uniform result envelope returned by every
// business-logic operation and writes it as an HTTP JSON response.
//
// Expected failures (not found, duplicate, empty list) travel inside the
// envelope with Success=false; handlers decide status codes from envelope
// content, not from errors.
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorDetail is the structured error payload attached to not-found
// outcomes: {"code":404,"message":"User not found"}.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NullData marks an operation that succeeded but deliberately returns
// "data": null (the order-append path does not echo the updated list).
// A plain nil Data is omitted from the JSON entirely.
var NullData = json.RawMessage("null")

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// OK builds a success envelope carrying data.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope with no error payload
// (duplicate-user and empty-list outcomes).
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// NotFound builds the 404-style failure envelope.
func NotFound(message string) Envelope {
	return Envelope{
		Success: false,
		Message: message,
		Error:   ErrorDetail{Code: http.StatusNotFound, Message: message},
	}
}

// GenericMessage is the message carried by every unexpected-error
// envelope. Clients only ever see this string for infrastructure
// failures; details stay in the logs.
const GenericMessage = "Something went wrong"

// Unexpected builds the generic failure envelope for unexpected errors,
// with the raw underlying error attached opaquely.
func Unexpected(err error) Envelope {
	env := Envelope{Success: false, Message: GenericMessage}
	if err != nil {
		env.Error = err.Error()
	}
	return env
}

// Status maps an envelope to an HTTP status code. Success takes ok,
// unexpected errors always take 500, every other failure takes fail.
func Status(env Envelope, ok, fail int) int {
	switch {
	case env.Success:
		return ok
	case env.Message == GenericMessage:
		return http.StatusInternalServerError
	default:
		return fail
	}
}

// JSON writes env with the given status code. Encoding errors are logged,
// never surfaced; headers are already committed by then.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		zap.L().Error("failed to encode response envelope", zap.Error(err))
	}
}
