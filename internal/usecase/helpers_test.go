package usecase_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DevNF/nfplugboleto/internal/domain"
	"github.com/DevNF/nfplugboleto/internal/usecase"
)

// rawJSON marshals a value for use as an envelope payload.
func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("could not marshal test payload: %v", err)
	}
	return data
}

// successResponse wraps a payload in a success envelope.
func successResponse(t *testing.T, data any) *domain.Response {
	t.Helper()
	return &domain.Response{
		Envelope: &domain.Envelope{
			Status: domain.StatusSuccess,
			Data:   rawJSON(t, data),
		},
		HTTPCode: 200,
	}
}

// errorResponse wraps a payload in an error envelope.
func errorResponse(t *testing.T, message string, data any) *domain.Response {
	t.Helper()
	env := &domain.Envelope{
		Status:  domain.StatusError,
		Message: message,
	}
	if data != nil {
		env.Data = rawJSON(t, data)
	}
	return &domain.Response{Envelope: env, HTTPCode: 200}
}

// recordedSleeper returns a sleeper option that appends every requested
// delay instead of blocking, so attempt budgets run instantly.
func recordedSleeper(slept *[]time.Duration) usecase.Option {
	return usecase.WithSleeper(func(d time.Duration) {
		*slept = append(*slept, d)
	})
}
