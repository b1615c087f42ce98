package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"

	"github.com/battletracker/battletracker/internal/errors"
)

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// WriteJSON writes data in an envelope. A non-nil err marks it unsuccessful.
func WriteJSON(w io.Writer, data interface{}, err error) error {
	env := JSONEnvelope{Success: err == nil, Data: data}
	if err != nil {
		env.Error = ErrorToJSON(err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts err to its machine-readable form.
func ErrorToJSON(err error) *JSONError {
	var btErr *errors.Error
	if stderrors.As(err, &btErr) {
		return &JSONError{
			Code:       btErr.Code,
			Message:    errors.Summary(btErr),
			Suggestion: btErr.Suggestion,
		}
	}
	return &JSONError{Code: "UNKNOWN", Message: err.Error()}
}
