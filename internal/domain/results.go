package domain

import "encoding/json"

// BatchResult is the outcome of a batch issuance, partitioned into the
// titles the service accepted (enriched with resolved fields once the
// follow-up query lands) and the ones it rejected or failed.
type BatchResult struct {
	Status  string         `json:"status"`
	Success []Title        `json:"success"`
	Errors  []BatchFailure `json:"errors"`

	// Unresolved lists accepted titles whose follow-up query returned
	// nothing, e.g. because remote processing was still in flight. They
	// are reported separately so callers can tell "not resolved yet"
	// apart from "resolved as failure".
	Unresolved []Title `json:"unresolved,omitempty"`
}

// BatchFailure is one title in the failure bucket, either rejected at
// submission or reclassified after the follow-up status query.
type BatchFailure struct {
	IntegrationID string      `json:"idintegracao,omitempty"`
	Status        TitleStatus `json:"situacao,omitempty"`
	Motive        string      `json:"motivo,omitempty"`
	Code          string      `json:"codigo,omitempty"`
	Message       string      `json:"mensagem,omitempty"`
}

// ReturnFileResult is the outcome of processing one settlement (return)
// file. Titles maps each reconciled integration identifier to its
// ordered list of normalized actions. Unreconciled carries the file
// entries the service could not match to a known title, passed through
// unchanged.
type ReturnFileResult struct {
	Protocol     string                        `json:"protocolo"`
	Status       OperationStatus               `json:"situacao"`
	Processed    int                           `json:"processados"`
	Titles       map[string][]NormalizedAction `json:"titulos"`
	Unreconciled []json.RawMessage             `json:"naoConciliados,omitempty"`

	// Unresolved lists reconciled references whose detail query came
	// back empty. They are reported, never silently dropped.
	Unresolved []string `json:"naoResolvidos,omitempty"`
}
