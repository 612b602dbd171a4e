package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DevNF/nfplugboleto/internal/domain"
)

const (
	printPollInterval = time.Second
	printPollAttempts = 10
)

// PrintRequest selects what a print job renders: either a list of
// integration identifiers or a free-form layout payload, never both.
type PrintRequest struct {
	IntegrationIDs []string        `json:"idsIntegracao,omitempty"`
	Layout         json.RawMessage `json:"layoutImpressao,omitempty"`
	Mode           string          `json:"tipoImpressao,omitempty"`
}

type printSubmission struct {
	Protocol string `json:"protocolo"`
}

// Print submits a print job and polls its result endpoint until the
// artifact materializes (1s interval, 10 attempts). A response that is
// not the structured status envelope is the artifact itself and is
// returned as-is; the structural sniffing is what tells a PDF from a
// JSON status body. Exhausting the attempt budget while the service
// keeps answering with a status envelope is a PrintError carrying the
// last status message and any per-item failure reasons.
func (s *BoletoService) Print(ctx context.Context, req PrintRequest) ([]byte, error) {
	if len(req.IntegrationIDs) == 0 && len(req.Layout) == 0 {
		return nil, fmt.Errorf("print request needs integration ids or a layout payload")
	}

	resp, err := s.transport.Post(ctx, pathPrintBatch, req)
	if err != nil {
		return nil, err
	}
	env, err := envelopeOf(resp, "submit print job")
	if err != nil {
		return nil, err
	}
	var sub printSubmission
	if err := json.Unmarshal(env.Data, &sub); err != nil {
		return nil, fmt.Errorf("could not decode print protocol: %w", err)
	}

	last, err := pollUntilReady(func() (*domain.Response, error) {
		return s.transport.Get(ctx, pathPrintBatch+"/"+sub.Protocol, nil)
	}, func(r *domain.Response) bool {
		return r.Envelope == nil
	}, printPollInterval, printPollAttempts, s.sleep)
	if err != nil {
		return nil, err
	}
	if last.Envelope != nil {
		return nil, &domain.PrintError{
			Message: last.Envelope.Message,
			Reasons: last.Envelope.FailureReasons(),
		}
	}
	return last.Raw, nil
}
