// Package usecase implements the asynchronous flows of the boleto
// service client: batch issuance with post-submission confirmation,
// settlement (return) file processing and print-job materialization.
package usecase

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// BoletoService orchestrates the asynchronous boleto flows on top of a
// Transport. It holds no per-operation state: every flow is local to
// one call chain, so a single service value is safe for concurrent use.
type BoletoService struct {
	transport Transport
	validate  *validator.Validate
	sleep     func(time.Duration)
}

// Option configures a BoletoService.
type Option func(*BoletoService)

// WithSleeper replaces the wall-clock sleep between poll attempts.
// Tests use it to run the full attempt budget without real delays.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(s *BoletoService) {
		s.sleep = sleep
	}
}

// NewBoletoService creates a new service instance on top of the given
// transport.
func NewBoletoService(transport Transport, opts ...Option) *BoletoService {
	s := &BoletoService{
		transport: transport,
		validate:  validator.New(),
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
