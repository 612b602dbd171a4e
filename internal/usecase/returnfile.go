package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/DevNF/nfplugboleto/internal/banks"
	"github.com/DevNF/nfplugboleto/internal/domain"
)

const (
	returnPollInterval = 2 * time.Second
	returnPollAttempts = 70
)

// returnSubmission is the payload the service answers a return-file
// upload with.
type returnSubmission struct {
	Protocol string `json:"protocolo"`
}

// returnTitleSet is the payload listing which titles a processed
// operation touched. Reconciled entries carry at least the integration
// identifier; unreconciled ones are opaque and pass through unchanged.
type returnTitleSet struct {
	Titles       []domain.Title    `json:"titulos"`
	Unreconciled []json.RawMessage `json:"naoConciliados"`
}

// ProcessReturnFile submits a settlement (return) file, waits for the
// server-side processing to finish and translates every reconciled
// occurrence into its normalized action.
//
// Only the PROCESSANDO status is retried (2s interval, 70 attempts,
// page size bounded to the already-known processed count). Exhausting
// the budget is a soft-timeout: the flow proceeds with the best-known
// state instead of failing. Any transport failure, and any unexpected
// status outside PROCESSANDO/PROCESSADO, aborts the whole flow.
func (s *BoletoService) ProcessReturnFile(ctx context.Context, fileContent, layout string) (*domain.ReturnFileResult, error) {
	if layout != banks.Layout240 && layout != banks.Layout400 {
		return nil, fmt.Errorf("unsupported settlement layout version %q", layout)
	}

	resp, err := s.transport.Post(ctx, pathReturnFiles, map[string]string{
		"arquivo": fileContent,
		"layout":  layout,
	})
	if err != nil {
		return nil, err
	}
	env, err := envelopeOf(resp, "submit return file")
	if err != nil {
		return nil, err
	}
	var sub returnSubmission
	if err := json.Unmarshal(env.Data, &sub); err != nil {
		return nil, fmt.Errorf("could not decode return file protocol: %w", err)
	}

	op, err := s.queryReturnStatus(ctx, sub.Protocol, 0)
	if err != nil {
		return nil, err
	}
	if op.Status != domain.OperationProcessed && op.Status != domain.OperationProcessing {
		return nil, &domain.SubmissionError{
			Message: fmt.Sprintf("return file %s reported status %s", sub.Protocol, op.Status),
		}
	}

	if op.Status == domain.OperationProcessing {
		pageSize := op.Processed
		attempts := 0
		op, err = pollUntilReady(func() (*domain.AsyncOperation, error) {
			attempts++
			return s.queryReturnStatus(ctx, sub.Protocol, pageSize)
		}, func(o *domain.AsyncOperation) bool {
			return o.Status != domain.OperationProcessing
		}, returnPollInterval, returnPollAttempts, s.sleep)
		if err != nil {
			return nil, err
		}
		op.Interval = returnPollInterval
		op.MaxAttempts = returnPollAttempts
		op.Attempts = attempts
	}

	refs, unreconciled, err := s.queryReturnTitles(ctx, sub.Protocol)
	if err != nil {
		return nil, err
	}

	result := &domain.ReturnFileResult{
		Protocol:     sub.Protocol,
		Status:       op.Status,
		Processed:    op.Processed,
		Titles:       make(map[string][]domain.NormalizedAction, len(refs)),
		Unreconciled: unreconciled,
	}
	if len(refs) == 0 {
		return result, nil
	}

	full, err := s.queryTitlesByIDs(ctx, integrationIDs(refs))
	if err != nil {
		return nil, err
	}
	byID := correlate(full)
	for _, ref := range refs {
		t, ok := byID[ref.IntegrationID]
		if !ok {
			result.Unresolved = append(result.Unresolved, ref.IntegrationID)
			continue
		}
		actions := make([]domain.NormalizedAction, 0, len(t.Occurrences))
		for _, o := range t.Occurrences {
			actions = append(actions, banks.Translate(t.BankCode, layout, o, t))
		}
		result.Titles[t.IntegrationID] = actions
	}
	return result, nil
}

// queryReturnStatus fetches the processing state of one return file
// operation. A positive pageSize bounds the query to the records known
// to be processed so far.
func (s *BoletoService) queryReturnStatus(ctx context.Context, protocol string, pageSize int) (*domain.AsyncOperation, error) {
	var q url.Values
	if pageSize > 0 {
		q = url.Values{"limit": {strconv.Itoa(pageSize)}}
	}
	resp, err := s.transport.Get(ctx, pathReturnFiles+"/"+protocol, q)
	if err != nil {
		return nil, err
	}
	env, err := envelopeOf(resp, "query return file status")
	if err != nil {
		return nil, err
	}
	var op domain.AsyncOperation
	if err := json.Unmarshal(env.Data, &op); err != nil {
		return nil, fmt.Errorf("could not decode return file status: %w", err)
	}
	return &op, nil
}

// queryReturnTitles fetches the titles touched by one return file
// operation: the reconciled references and, separately, the entries the
// service could not match to any known title.
func (s *BoletoService) queryReturnTitles(ctx context.Context, protocol string) ([]domain.Title, []json.RawMessage, error) {
	resp, err := s.transport.Get(ctx, pathReturnFiles+"/"+protocol+"/titulos", nil)
	if err != nil {
		return nil, nil, err
	}
	env, err := envelopeOf(resp, "query return file titles")
	if err != nil {
		return nil, nil, err
	}
	var set returnTitleSet
	if err := json.Unmarshal(env.Data, &set); err != nil {
		return nil, nil, fmt.Errorf("could not decode return file titles: %w", err)
	}
	return set.Titles, set.Unreconciled, nil
}
