// Package banks translates bank- and layout-specific occurrence codes
// from settlement (return) files into bank-agnostic normalized actions.
//
// The translation is a pure function of (bank code, layout version,
// occurrence, title snapshot): no hidden state, deterministic and
// idempotent for identical inputs, safe for concurrent use.
package banks

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DevNF/nfplugboleto/internal/domain"
)

// generator builds the normalized action for one occurrence. Each rule
// table entry references one of the shared generators below, so the
// bank-to-action mapping stays auditable as data.
type generator func(t domain.Title, o domain.Occurrence) domain.NormalizedAction

func confirmed(t domain.Title, o domain.Occurrence) domain.NormalizedAction {
	return domain.NormalizedAction{
		Kind:    domain.ActionConfirmed,
		Message: "Entrada confirmada",
		Data:    domain.ReferenceData{OurNumber: t.OurNumber},
	}
}

// payed reports a settlement with no interest: most banks either report
// interest as zero or derive it elsewhere in the file.
func payed(t domain.Title, o domain.Occurrence) domain.NormalizedAction {
	return payedAction(t, o, decimal.Zero)
}

// payedWithInterest reports a settlement for the banks whose layout
// encodes interest only implicitly, as the amount paid beyond the face
// value. This is a documented per-bank exception, not a general rule.
func payedWithInterest(t domain.Title, o domain.Occurrence) domain.NormalizedAction {
	return payedAction(t, o, o.PaidValue.Sub(t.Value))
}

func payedAction(t domain.Title, o domain.Occurrence, interest decimal.Decimal) domain.NormalizedAction {
	return domain.NormalizedAction{
		Kind:    domain.ActionPayed,
		Message: "Título liquidado",
		Data: domain.PayedData{
			DocumentNumber: t.DocumentNumber,
			OccurrenceDate: dateOnly(o.Date),
			Discount:       o.Discount,
			PaidValue:      o.PaidValue,
			Interest:       interest,
		},
	}
}

func rejected(t domain.Title, o domain.Occurrence) domain.NormalizedAction {
	return domain.NormalizedAction{
		Kind:    domain.ActionRejected,
		Message: fmt.Sprintf("Entrada rejeitada: %s", o.Message),
		Data: domain.RejectedData{
			OurNumber:      t.OurNumber,
			DocumentNumber: t.DocumentNumber,
		},
		Sub: o.Sub,
	}
}

func canceled(t domain.Title, o domain.Occurrence) domain.NormalizedAction {
	return domain.NormalizedAction{
		Kind:    domain.ActionCanceled,
		Message: "Título baixado",
		Data:    domain.ReferenceData{OurNumber: t.OurNumber},
	}
}

func abatementCompleted(t domain.Title, o domain.Occurrence) domain.NormalizedAction {
	return domain.NormalizedAction{
		Kind:    domain.ActionAbatementCompleted,
		Message: "Abatimento concedido",
		Data: domain.RebateData{
			OurNumber: t.OurNumber,
			Rebate:    o.Rebate,
		},
	}
}

func abatementCanceled(t domain.Title, o domain.Occurrence) domain.NormalizedAction {
	return domain.NormalizedAction{
		Kind:    domain.ActionAbatementCanceled,
		Message: "Abatimento cancelado",
		Data: domain.RebateData{
			OurNumber: t.OurNumber,
			Rebate:    o.Rebate,
		},
	}
}

func changeDueDate(t domain.Title, o domain.Occurrence) domain.NormalizedAction {
	return domain.NormalizedAction{
		Kind:    domain.ActionChangeDueDate,
		Message: "Vencimento alterado",
		Data: domain.DueDateData{
			OurNumber:  t.OurNumber,
			NewDueDate: dateOnly(o.Date),
		},
	}
}

func removePayed(t domain.Title, o domain.Occurrence) domain.NormalizedAction {
	return domain.NormalizedAction{
		Kind:    domain.ActionRemovePayed,
		Message: "Liquidação estornada",
		Data:    domain.ReferenceData{OurNumber: t.OurNumber},
	}
}

// defaultAction handles genuinely unclassified or informational codes.
// It carries no structured data, just the bank's own message.
func defaultAction(t domain.Title, o domain.Occurrence) domain.NormalizedAction {
	return domain.NormalizedAction{
		Kind:    domain.ActionDefault,
		Message: o.Message,
		Sub:     o.Sub,
	}
}

// dateOnly strips the time-of-day portion of a service timestamp,
// e.g. "15/03/2024 14:32:05" -> "15/03/2024".
func dateOnly(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
