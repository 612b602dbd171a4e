package usecase_test

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/DevNF/nfplugboleto/internal/domain"
	"github.com/DevNF/nfplugboleto/internal/usecase"
	mock_usecase "github.com/DevNF/nfplugboleto/internal/usecase/mocks"
)

const returnFileContent = "02RETORNO01COBRANCA..."

func TestProcessReturnFile_TranslatesReconciledTitles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mock_usecase.NewMockTransport(ctrl)
	var slept []time.Duration
	svc := usecase.NewBoletoService(transport, recordedSleeper(&slept))

	unmatched := json.RawMessage(`{"nossoNumero":"999","valorPago":"50.00"}`)

	transport.EXPECT().
		Post(gomock.Any(), "/boletos/retornos", map[string]string{
			"arquivo": returnFileContent,
			"layout":  "240",
		}).
		Return(successResponse(t, map[string]any{"protocolo": "PROT-1"}), nil)

	gomock.InOrder(
		transport.EXPECT().
			Get(gomock.Any(), "/boletos/retornos/PROT-1", gomock.Nil()).
			Return(successResponse(t, map[string]any{
				"protocolo": "PROT-1", "situacao": "PROCESSANDO", "processados": 2,
			}), nil),
		transport.EXPECT().
			Get(gomock.Any(), "/boletos/retornos/PROT-1", url.Values{"limit": {"2"}}).
			Return(successResponse(t, map[string]any{
				"protocolo": "PROT-1", "situacao": "PROCESSANDO", "processados": 2,
			}), nil),
		transport.EXPECT().
			Get(gomock.Any(), "/boletos/retornos/PROT-1", url.Values{"limit": {"2"}}).
			Return(successResponse(t, map[string]any{
				"protocolo": "PROT-1", "situacao": "PROCESSADO", "processados": 2,
			}), nil),
	)

	transport.EXPECT().
		Get(gomock.Any(), "/boletos/retornos/PROT-1/titulos", gomock.Nil()).
		Return(successResponse(t, map[string]any{
			"titulos":        []map[string]any{{"idintegracao": "T1"}},
			"naoConciliados": []json.RawMessage{unmatched},
		}), nil)
	transport.EXPECT().
		Get(gomock.Any(), "/boletos", url.Values{"idintegracao": {"T1"}, "limit": {"1"}}).
		Return(successResponse(t, []map[string]any{{
			"idintegracao":            "T1",
			"TituloNumeroDocumento":   "DOC-T1",
			"TituloNossoNumero":       "NN-T1",
			"TituloValor":             "100.00",
			"CedenteContaCodigoBanco": "341",
			"ocorrencias": []map[string]any{
				{"codigo": "02", "mensagem": "Entrada confirmada", "data": "09/02/2024 08:00:00"},
				{"codigo": "06", "mensagem": "Liquidação", "data": "10/02/2024 09:15:00", "valorPago": "105.50"},
			},
		}}), nil)

	result, err := svc.ProcessReturnFile(context.Background(), returnFileContent, "240")

	assert.NoError(t, err)
	assert.Equal(t, "PROT-1", result.Protocol)
	assert.Equal(t, domain.OperationProcessed, result.Status)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, []time.Duration{2 * time.Second}, slept)

	// The occurrence order of the service is preserved action by action.
	actions := result.Titles["T1"]
	assert.Len(t, actions, 2)
	assert.Equal(t, domain.ActionConfirmed, actions[0].Kind)
	assert.Equal(t, "02", actions[0].Code)
	assert.Equal(t, domain.ActionPayed, actions[1].Kind)
	assert.Equal(t, "06", actions[1].Code)
	assert.Equal(t, "10/02/2024 09:15:00", actions[1].Date)

	payed, ok := actions[1].Data.(domain.PayedData)
	assert.True(t, ok)
	assert.True(t, payed.Interest.Equal(decimal.RequireFromString("5.50")))

	// Entries the service could not match pass through unchanged, and
	// only there.
	assert.Equal(t, []json.RawMessage{unmatched}, result.Unreconciled)
	assert.NotContains(t, result.Titles, "999")
}

func TestProcessReturnFile_SoftTimeoutProceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mock_usecase.NewMockTransport(ctrl)
	var slept []time.Duration
	svc := usecase.NewBoletoService(transport, recordedSleeper(&slept))

	transport.EXPECT().
		Post(gomock.Any(), "/boletos/retornos", gomock.Any()).
		Return(successResponse(t, map[string]any{"protocolo": "PROT-9"}), nil)
	transport.EXPECT().
		Get(gomock.Any(), "/boletos/retornos/PROT-9", gomock.Nil()).
		Return(successResponse(t, map[string]any{
			"situacao": "PROCESSANDO", "processados": 5,
		}), nil)
	transport.EXPECT().
		Get(gomock.Any(), "/boletos/retornos/PROT-9", url.Values{"limit": {"5"}}).
		Return(successResponse(t, map[string]any{
			"situacao": "PROCESSANDO", "processados": 5,
		}), nil).
		Times(71)
	transport.EXPECT().
		Get(gomock.Any(), "/boletos/retornos/PROT-9/titulos", gomock.Nil()).
		Return(successResponse(t, map[string]any{
			"titulos":        []map[string]any{},
			"naoConciliados": []map[string]any{},
		}), nil)

	result, err := svc.ProcessReturnFile(context.Background(), returnFileContent, "400")

	// Attempt exhaustion is a soft-timeout: the flow proceeds with the
	// best-known state instead of failing.
	assert.NoError(t, err)
	assert.Equal(t, domain.OperationProcessing, result.Status)
	assert.Equal(t, 5, result.Processed)
	assert.Len(t, slept, 70)
	assert.Empty(t, result.Titles)
}

func TestProcessReturnFile_SkipsPollingWhenAlreadyProcessed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mock_usecase.NewMockTransport(ctrl)
	var slept []time.Duration
	svc := usecase.NewBoletoService(transport, recordedSleeper(&slept))

	transport.EXPECT().
		Post(gomock.Any(), "/boletos/retornos", gomock.Any()).
		Return(successResponse(t, map[string]any{"protocolo": "PROT-2"}), nil)
	transport.EXPECT().
		Get(gomock.Any(), "/boletos/retornos/PROT-2", gomock.Nil()).
		Return(successResponse(t, map[string]any{
			"situacao": "PROCESSADO", "processados": 0,
		}), nil)
	transport.EXPECT().
		Get(gomock.Any(), "/boletos/retornos/PROT-2/titulos", gomock.Nil()).
		Return(successResponse(t, map[string]any{}), nil)

	result, err := svc.ProcessReturnFile(context.Background(), returnFileContent, "400")

	assert.NoError(t, err)
	assert.Empty(t, slept)
	assert.Equal(t, domain.OperationProcessed, result.Status)
}

func TestProcessReturnFile_ReportsUnresolvedReferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mock_usecase.NewMockTransport(ctrl)
	svc := usecase.NewBoletoService(transport, recordedSleeper(&[]time.Duration{}))

	transport.EXPECT().
		Post(gomock.Any(), "/boletos/retornos", gomock.Any()).
		Return(successResponse(t, map[string]any{"protocolo": "PROT-3"}), nil)
	transport.EXPECT().
		Get(gomock.Any(), "/boletos/retornos/PROT-3", gomock.Nil()).
		Return(successResponse(t, map[string]any{
			"situacao": "PROCESSADO", "processados": 2,
		}), nil)
	transport.EXPECT().
		Get(gomock.Any(), "/boletos/retornos/PROT-3/titulos", gomock.Nil()).
		Return(successResponse(t, map[string]any{
			"titulos": []map[string]any{{"idintegracao": "T1"}, {"idintegracao": "T2"}},
		}), nil)
	transport.EXPECT().
		Get(gomock.Any(), "/boletos", url.Values{"idintegracao": {"T1,T2"}, "limit": {"2"}}).
		Return(successResponse(t, []map[string]any{{
			"idintegracao":            "T1",
			"CedenteContaCodigoBanco": "033",
		}}), nil)

	result, err := svc.ProcessReturnFile(context.Background(), returnFileContent, "400")

	assert.NoError(t, err)
	assert.Contains(t, result.Titles, "T1")
	assert.NotContains(t, result.Titles, "T2")
	assert.Equal(t, []string{"T2"}, result.Unresolved)
}

func TestProcessReturnFile_ErrorStatusAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mock_usecase.NewMockTransport(ctrl)
	svc := usecase.NewBoletoService(transport)

	transport.EXPECT().
		Post(gomock.Any(), "/boletos/retornos", gomock.Any()).
		Return(successResponse(t, map[string]any{"protocolo": "PROT-4"}), nil)
	transport.EXPECT().
		Get(gomock.Any(), "/boletos/retornos/PROT-4", gomock.Nil()).
		Return(successResponse(t, map[string]any{"situacao": "ERRO"}), nil)

	_, err := svc.ProcessReturnFile(context.Background(), returnFileContent, "400")

	var subErr *domain.SubmissionError
	assert.ErrorAs(t, err, &subErr)
	assert.Contains(t, err.Error(), "ERRO")
}

func TestProcessReturnFile_SubmissionRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mock_usecase.NewMockTransport(ctrl)
	svc := usecase.NewBoletoService(transport)

	transport.EXPECT().
		Post(gomock.Any(), "/boletos/retornos", gomock.Any()).
		Return(errorResponse(t, "Arquivo inválido", nil), nil)

	_, err := svc.ProcessReturnFile(context.Background(), returnFileContent, "400")

	var subErr *domain.SubmissionError
	assert.ErrorAs(t, err, &subErr)
	assert.Equal(t, "Arquivo inválido", err.Error())
}

func TestProcessReturnFile_RejectsUnknownLayout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: nothing may reach the wire.
	transport := mock_usecase.NewMockTransport(ctrl)
	svc := usecase.NewBoletoService(transport)

	_, err := svc.ProcessReturnFile(context.Background(), returnFileContent, "444")

	assert.ErrorContains(t, err, "unsupported settlement layout")
}
