package errx

import (
	"net/http"
)

// WrapLLM maps completion API errors to the unified AppError type.
// All LLM failures are treated identically upstream (retry then fallback),
// so no per-kind status mapping is attempted here.
func WrapLLM(err error) *AppError {
	if err == nil {
		return nil
	}

	return New(err, http.StatusBadGateway, LLMErrorMessage)
}
