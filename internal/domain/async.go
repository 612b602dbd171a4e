package domain

import "time"

// OperationStatus is the processing state of a server-side batch
// operation. Wire values follow the service's Portuguese names.
type OperationStatus string

const (
	OperationProcessing OperationStatus = "PROCESSANDO"
	OperationProcessed  OperationStatus = "PROCESSADO"
	OperationError      OperationStatus = "ERRO"
)

// AsyncOperation tracks one in-flight batch submission awaiting
// server-side completion. It is local to a single call chain and is
// mutated only by the polling loop that owns it.
type AsyncOperation struct {
	Protocol    string          `json:"protocolo"`
	Status      OperationStatus `json:"situacao"`
	Processed   int             `json:"processados"`
	Interval    time.Duration   `json:"-"`
	MaxAttempts int             `json:"-"`
	Attempts    int             `json:"-"`
}

// Terminal reports whether the operation reached a final server-side
// state. Attempt exhaustion is handled by the caller, not here: an
// operation still PROCESSANDO after the attempt budget is a
// soft-timeout, not an error.
func (op *AsyncOperation) Terminal() bool {
	return op.Status == OperationProcessed || op.Status == OperationError
}
