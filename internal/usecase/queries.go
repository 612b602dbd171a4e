package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/DevNF/nfplugboleto/internal/domain"
)

// Service paths consumed by the flows.
const (
	pathTitles      = "/boletos"
	pathTitleBatch  = "/boletos/lote"
	pathReturnFiles = "/boletos/retornos"
	pathPrintBatch  = "/boletos/impressao/lote"
)

// envelopeOf validates that a response carries the structured envelope
// and that the service did not flag it as an error. Anything else at a
// non-retryable step aborts the whole flow.
func envelopeOf(resp *domain.Response, op string) (*domain.Envelope, error) {
	if resp.Envelope == nil {
		return nil, &domain.TransportError{Op: op, HTTPCode: resp.HTTPCode}
	}
	if !resp.Envelope.OK() {
		return nil, &domain.SubmissionError{
			Message: resp.Envelope.Message,
			Reasons: resp.Envelope.FailureReasons(),
		}
	}
	return resp.Envelope, nil
}

// queryTitlesByIDs fetches full title records filtered by integration
// identifier, in a single page bounded to the exact candidate count so
// no blind second page is ever needed.
func (s *BoletoService) queryTitlesByIDs(ctx context.Context, ids []string) ([]domain.Title, error) {
	q := url.Values{}
	q.Set("idintegracao", strings.Join(ids, ","))
	q.Set("limit", strconv.Itoa(len(ids)))

	resp, err := s.transport.Get(ctx, pathTitles, q)
	if err != nil {
		return nil, err
	}
	env, err := envelopeOf(resp, "query titles")
	if err != nil {
		return nil, err
	}

	var titles []domain.Title
	if err := json.Unmarshal(env.Data, &titles); err != nil {
		return nil, fmt.Errorf("could not decode title list: %w", err)
	}
	return titles, nil
}
