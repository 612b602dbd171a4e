package domain

import (
	"github.com/shopspring/decimal"
)

// TitleStatus is the service-reported situation of a title. The wire
// values are the Portuguese names used by the boleto service.
type TitleStatus string

const (
	TitleStatusPending  TitleStatus = "SALVO"
	TitleStatusAccepted TitleStatus = "EMITIDO"
	TitleStatusRejected TitleStatus = "REJEITADO"
	TitleStatusPaid     TitleStatus = "PAGO"
	TitleStatusFailed   TitleStatus = "FALHA"
)

// Terminal reports whether the status can no longer move back to a
// pending or accepted state.
func (s TitleStatus) Terminal() bool {
	return s == TitleStatusRejected || s == TitleStatusPaid
}

// Title represents one bank slip (boleto) instance.
//
// IntegrationID is assigned by the caller, is unique per submission and
// is the sole correlation key between a submission and any follow-up
// query. Monetary fields are fixed-point decimals, never floats.
type Title struct {
	IntegrationID  string          `json:"idintegracao" validate:"required"`
	DocumentNumber string          `json:"TituloNumeroDocumento" validate:"required"`
	OurNumber      string          `json:"TituloNossoNumero,omitempty"`
	Value          decimal.Decimal `json:"TituloValor" validate:"required"`
	DueDate        string          `json:"TituloVencimento,omitempty" validate:"required"`
	BankCode       string          `json:"CedenteContaCodigoBanco" validate:"required,len=3,numeric"`
	Status         TitleStatus     `json:"situacao,omitempty"`
	Motive         string          `json:"motivo,omitempty"`
	DigitableLine  string          `json:"linhaDigitavel,omitempty"`
	Barcode        string          `json:"codigoBarras,omitempty"`
	Occurrences    []Occurrence    `json:"ocorrencias,omitempty"`
}

// Occurrence is one bank-reported event against a title, taken from a
// processed settlement (return) file. Occurrences are created only by
// the remote service and are immutable once received.
type Occurrence struct {
	Code      string          `json:"codigo"`
	Message   string          `json:"mensagem"`
	Date      string          `json:"data,omitempty"`
	PaidValue decimal.Decimal `json:"valorPago"`
	Discount  decimal.Decimal `json:"valorDesconto"`
	Rebate    decimal.Decimal `json:"valorAbatimento"`
	Sub       []SubOccurrence `json:"ocorrencias,omitempty"`
}

// SubOccurrence is a nested reason attached to an occurrence, usually a
// rejection detail code.
type SubOccurrence struct {
	Code    string `json:"codigo"`
	Message string `json:"mensagem"`
}
