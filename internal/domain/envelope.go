package domain

import (
	"encoding/json"
	"fmt"
)

// Envelope status discriminators used by the boleto service.
const (
	StatusSuccess = "sucesso"
	StatusError   = "erro"
)

// Envelope is the structured wire envelope every JSON response of the
// boleto service is wrapped in.
type Envelope struct {
	Status  string          `json:"_status"`
	Message string          `json:"_mensagem"`
	Data    json.RawMessage `json:"_dados"`
}

// OK reports whether the service flagged the response as successful.
func (e *Envelope) OK() bool {
	return e.Status == StatusSuccess
}

// BatchData is the success/failure-partitioned payload of a batch
// submission response.
type BatchData struct {
	Succeeded []json.RawMessage `json:"_sucesso"`
	Failed    []FailureItem     `json:"_falha"`
}

// FailureItem is one itemized failure inside a batch payload.
type FailureItem struct {
	Code    string          `json:"_codigo"`
	Message string          `json:"_mensagem"`
	Data    json.RawMessage `json:"_dados"`
}

// BatchData decodes the envelope payload as a partitioned batch result.
func (e *Envelope) BatchData() (*BatchData, error) {
	var d BatchData
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return nil, fmt.Errorf("could not decode batch payload: %w", err)
	}
	return &d, nil
}

// FailureReasons collects the itemized failure messages of a batch
// payload, one line per item. A nil or non-batch payload yields nil.
func (e *Envelope) FailureReasons() []string {
	if len(e.Data) == 0 {
		return nil
	}
	d, err := e.BatchData()
	if err != nil {
		return nil
	}
	var reasons []string
	for _, f := range d.Failed {
		if f.Code != "" {
			reasons = append(reasons, fmt.Sprintf("%s: %s", f.Code, f.Message))
			continue
		}
		reasons = append(reasons, f.Message)
	}
	return reasons
}

// Response is what the transport hands back for one round trip. Envelope
// is nil when the body does not look like the structured envelope, in
// which case Raw holds the final artifact bytes (the print flow relies
// on this structural sniffing to tell a PDF from a status payload).
type Response struct {
	Envelope *Envelope
	Raw      []byte
	HTTPCode int
}
