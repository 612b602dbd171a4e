package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DevNF/nfplugboleto/internal/domain"
)

// confirmationDelay is the single fixed wait between accepting a batch
// and querying the resolved statuses. This flow never loops: one wait,
// one follow-up query.
const confirmationDelay = 4 * time.Second

// Submit sends a batch of titles for issuance and reconciles the
// acceptance result against a follow-up status query.
//
// Accepted titles whose resolved status came back REJEITADO or FALHA
// are reclassified into the failure bucket; the rest stay in the
// success bucket enriched with the resolved fields (status, digitable
// line, barcode, document number). Accepted titles the follow-up query
// did not return at all land in the Unresolved bucket.
//
// The reclassification is a best-effort read after a fixed delay, not a
// consistent snapshot: a title still settling remotely may surface as
// unresolved or still-pending here and only reach its final status on a
// later query.
func (s *BoletoService) Submit(ctx context.Context, titles []domain.Title) (*domain.BatchResult, error) {
	if len(titles) == 0 {
		return nil, fmt.Errorf("no titles to submit")
	}
	for i := range titles {
		if err := s.validate.Struct(&titles[i]); err != nil {
			return nil, fmt.Errorf("invalid title %q: %w", titles[i].IntegrationID, err)
		}
	}

	resp, err := s.transport.Post(ctx, pathTitleBatch, titles)
	if err != nil {
		return nil, err
	}
	env, err := envelopeOf(resp, "submit batch")
	if err != nil {
		return nil, err
	}
	batch, err := env.BatchData()
	if err != nil {
		return nil, err
	}

	result := &domain.BatchResult{
		Status:  env.Status,
		Success: []domain.Title{},
		Errors:  []domain.BatchFailure{},
	}

	var accepted []domain.Title
	for _, raw := range batch.Succeeded {
		var t domain.Title
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("could not decode accepted title: %w", err)
		}
		accepted = append(accepted, t)
	}
	for _, f := range batch.Failed {
		result.Errors = append(result.Errors, batchFailure(f))
	}
	if len(accepted) == 0 {
		return result, nil
	}

	s.sleep(confirmationDelay)
	resolved, err := s.queryTitlesByIDs(ctx, integrationIDs(accepted))
	if err != nil {
		return nil, err
	}

	byID := correlate(resolved)
	for _, t := range accepted {
		r, ok := byID[t.IntegrationID]
		if !ok {
			result.Unresolved = append(result.Unresolved, t)
			continue
		}
		if reclassified(r.Status) {
			result.Errors = append(result.Errors, domain.BatchFailure{
				IntegrationID: t.IntegrationID,
				Status:        r.Status,
				Motive:        r.Motive,
			})
			continue
		}
		result.Success = append(result.Success, enrich(t, r))
	}
	return result, nil
}

// enrich copies the resolved fields of the follow-up query onto the
// accepted title.
func enrich(t, resolved domain.Title) domain.Title {
	t.Status = resolved.Status
	t.DigitableLine = resolved.DigitableLine
	t.Barcode = resolved.Barcode
	if resolved.DocumentNumber != "" {
		t.DocumentNumber = resolved.DocumentNumber
	}
	if resolved.OurNumber != "" {
		t.OurNumber = resolved.OurNumber
	}
	return t
}

// batchFailure converts one itemized wire failure into the failure
// bucket shape, pulling the title fields out of the item payload when
// present.
func batchFailure(f domain.FailureItem) domain.BatchFailure {
	bf := domain.BatchFailure{Code: f.Code, Message: f.Message}
	if len(f.Data) > 0 {
		var t domain.Title
		if err := json.Unmarshal(f.Data, &t); err == nil {
			bf.IntegrationID = t.IntegrationID
			bf.Status = t.Status
			bf.Motive = t.Motive
		}
	}
	return bf
}
