package domain

import "github.com/shopspring/decimal"

// ActionKind is the closed set of bank-agnostic actions an occurrence
// can translate into.
type ActionKind string

const (
	ActionConfirmed          ActionKind = "confirmed"
	ActionPayed              ActionKind = "payed"
	ActionRejected           ActionKind = "rejected"
	ActionCanceled           ActionKind = "canceled"
	ActionAbatementCompleted ActionKind = "abatementCompleted"
	ActionAbatementCanceled  ActionKind = "abatementCanceled"
	ActionChangeDueDate      ActionKind = "changeDueDate"
	ActionRemovePayed        ActionKind = "removePayed"
	ActionDefault            ActionKind = "default"
)

// NormalizedAction is the bank-agnostic translation of one occurrence.
// Code and Date carry the raw occurrence code and timestamp so callers
// can trace an action back to the settlement file entry that produced
// it. Data is a kind-specific payload (PayedData, ReferenceData, ...).
type NormalizedAction struct {
	Kind    ActionKind      `json:"acao"`
	Code    string          `json:"codigo,omitempty"`
	Date    string          `json:"data,omitempty"`
	Message string          `json:"mensagem,omitempty"`
	Data    any             `json:"dados,omitempty"`
	Sub     []SubOccurrence `json:"ocorrencias,omitempty"`
}

// PayedData is the payload of a payed action.
type PayedData struct {
	DocumentNumber string          `json:"numeroDocumento"`
	OccurrenceDate string          `json:"dataOcorrencia"`
	Discount       decimal.Decimal `json:"valorDesconto"`
	PaidValue      decimal.Decimal `json:"valorPago"`
	Interest       decimal.Decimal `json:"valorJuros"`
}

// ReferenceData is the payload of actions that only point back at the
// bank-assigned reference (confirmed, canceled, removePayed).
type ReferenceData struct {
	OurNumber string `json:"nossoNumero"`
}

// RejectedData is the payload of a rejected action.
type RejectedData struct {
	OurNumber      string `json:"nossoNumero"`
	DocumentNumber string `json:"numeroDocumento"`
}

// RebateData is the payload of abatement actions.
type RebateData struct {
	OurNumber string          `json:"nossoNumero"`
	Rebate    decimal.Decimal `json:"valorAbatimento"`
}

// DueDateData is the payload of a changeDueDate action.
type DueDateData struct {
	OurNumber  string `json:"nossoNumero"`
	NewDueDate string `json:"novoVencimento"`
}
