package banks

import "github.com/DevNF/nfplugboleto/internal/domain"

// Settlement-file layout versions supported by the rule table.
const (
	Layout240 = "240"
	Layout400 = "400"
)

type codeMap map[string]generator

// with copies base and applies bank-specific overrides on top, so each
// bank entry below reads as "the standard table, except...".
func with(base codeMap, over codeMap) codeMap {
	m := make(codeMap, len(base)+len(over))
	for code, gen := range base {
		m[code] = gen
	}
	for code, gen := range over {
		m[code] = gen
	}
	return m
}

// cnab400Base holds the occurrence codes most banks share in the CNAB
// 400 return layout.
var cnab400Base = codeMap{
	"02": confirmed,          // entrada confirmada
	"03": rejected,           // entrada rejeitada
	"06": payed,              // liquidação normal
	"08": payed,              // liquidação em cartório
	"09": canceled,           // baixa simples
	"10": canceled,           // baixa por instrução
	"12": abatementCompleted, // abatimento concedido
	"13": abatementCanceled,  // abatimento cancelado
	"14": changeDueDate,      // vencimento alterado
	"15": payed,              // liquidação em cartório
	"17": payed,              // liquidação após baixa
}

// cnab240Base holds the FEBRABAN CNAB 240 movement codes most banks
// share.
var cnab240Base = codeMap{
	"02": confirmed,          // entrada confirmada
	"03": rejected,           // entrada rejeitada
	"06": payed,              // liquidação
	"09": canceled,           // baixa
	"12": abatementCompleted, // abatimento concedido
	"13": abatementCanceled,  // cancelamento de abatimento
	"14": changeDueDate,      // alteração de vencimento
	"17": payed,              // liquidação após baixa
	"25": canceled,           // protestado e baixado
	"44": removePayed,        // estorno de baixa/liquidação
}

// ruleTable maps (bank code, layout version, occurrence code) to the
// generator that builds the normalized action. Entries are static and
// read-only: adding a bank is a data change here, never new branching.
//
// Bank 341 encodes interest only as the amount paid beyond face value,
// hence payedWithInterest on its liquidation codes. Bank 104 kept a
// legacy table in the 400 layout that shares nothing with the FEBRABAN
// numbering. Bank 077 only ever issued 240-layout return files.
var ruleTable = map[string]map[string]codeMap{
	"001": {
		Layout240: cnab240Base,
		Layout400: with(cnab400Base, codeMap{
			"05": payed, // liquidado sem registro
			"07": payed, // liquidação por conta
		}),
	},
	"004": {
		Layout240: cnab240Base,
		Layout400: cnab400Base,
	},
	"033": {
		Layout240: with(cnab240Base, codeMap{
			"26": rejected, // instrução rejeitada
		}),
		Layout400: with(cnab400Base, codeMap{
			"16": canceled, // título já baixado/liquidado
		}),
	},
	"041": {
		Layout240: cnab240Base,
		Layout400: cnab400Base,
	},
	"077": {
		Layout240: cnab240Base,
	},
	"104": {
		Layout240: cnab240Base,
		Layout400: codeMap{
			"01": confirmed,          // entrada confirmada
			"02": canceled,           // baixa manual confirmada
			"03": abatementCompleted, // abatimento concedido
			"04": abatementCanceled,  // abatimento cancelado
			"05": changeDueDate,      // vencimento alterado
			"21": payed,              // liquidação normal
			"22": payed,              // liquidação em cartório
			"23": canceled,           // baixa por devolução
			"30": rejected,           // rejeição do título
		},
	},
	"237": {
		Layout240: cnab240Base,
		Layout400: with(cnab400Base, codeMap{
			"16": canceled, // título já baixado/liquidado
			"25": canceled, // protestado e baixado
		}),
	},
	"341": {
		Layout240: with(cnab240Base, codeMap{
			"06": payedWithInterest,
			"17": payedWithInterest,
		}),
		Layout400: with(cnab400Base, codeMap{
			"06": payedWithInterest,
			"08": payedWithInterest,
			"15": payedWithInterest,
			"17": payedWithInterest,
		}),
	},
	"748": {
		Layout240: with(cnab240Base, codeMap{
			"27": confirmed, // confirmação de alteração de dados
		}),
		Layout400: cnab400Base,
	},
	"756": {
		Layout240: cnab240Base,
		Layout400: cnab400Base,
	},
}

// Translate maps one occurrence of a title to its normalized action.
// Unknown banks, layouts or codes fall back to the default generator;
// translation never fails. The raw occurrence code and timestamp are
// attached to the produced action for traceability.
func Translate(bankCode, layout string, o domain.Occurrence, t domain.Title) domain.NormalizedAction {
	gen := generator(defaultAction)
	if layouts, ok := ruleTable[bankCode]; ok {
		if codes, ok := layouts[layout]; ok {
			if g, ok := codes[o.Code]; ok {
				gen = g
			}
		}
	}
	act := gen(t, o)
	act.Code = o.Code
	act.Date = o.Date
	return act
}
