// Package gateway implements the HTTP transport against the boleto
// service.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DevNF/nfplugboleto/internal/domain"
)

const (
	productionBaseURL = "https://plugboleto.com.br/api/v1"
	sandboxBaseURL    = "https://homologacao.plugboleto.com.br/api/v1"

	defaultTimeout = 60 * time.Second
)

// Config carries the credentials and environment selection for the
// boleto service. It is passed explicitly to the constructor; nothing
// here is ambient or mutated after construction.
type Config struct {
	SoftwareHouseCNPJ  string // cnpj-sh header
	SoftwareHouseToken string // token-sh header
	AssignorCNPJ       string // cnpj-cedente header
	Sandbox            bool
	Timeout            time.Duration
}

// PlugBoleto is the HTTP client for the boleto service. It implements
// the usecase Transport interface.
type PlugBoleto struct {
	cfg     Config
	baseURL string
	client  *http.Client
}

// NewPlugBoleto creates a transport for the environment selected in
// cfg. All three credentials are required.
func NewPlugBoleto(cfg Config) (*PlugBoleto, error) {
	if cfg.SoftwareHouseCNPJ == "" || cfg.SoftwareHouseToken == "" || cfg.AssignorCNPJ == "" {
		return nil, fmt.Errorf("gateway: software house cnpj/token and assignor cnpj are required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	baseURL := productionBaseURL
	if cfg.Sandbox {
		baseURL = sandboxBaseURL
	}
	return &PlugBoleto{
		cfg:     cfg,
		baseURL: baseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Get executes a GET against the service.
func (c *PlugBoleto) Get(ctx context.Context, path string, query url.Values) (*domain.Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, query)
}

// Post executes a POST with a JSON body against the service.
func (c *PlugBoleto) Post(ctx context.Context, path string, body any) (*domain.Response, error) {
	return c.do(ctx, http.MethodPost, path, body, nil)
}

func (c *PlugBoleto) do(ctx context.Context, method, path string, body any, query url.Values) (*domain.Response, error) {
	op := method + " " + path

	endpoint := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: could not encode request body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: could not build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("cnpj-sh", c.cfg.SoftwareHouseCNPJ)
	req.Header.Set("token-sh", c.cfg.SoftwareHouseToken)
	req.Header.Set("cnpj-cedente", c.cfg.AssignorCNPJ)

	httpResp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	resp := &domain.Response{
		Raw:      raw,
		HTTPCode: httpResp.StatusCode,
		Envelope: sniffEnvelope(raw),
	}
	// A server failure outside the structured envelope carries no
	// service message the caller could act on.
	if resp.Envelope == nil && httpResp.StatusCode >= http.StatusInternalServerError {
		return nil, &domain.TransportError{Op: op, HTTPCode: httpResp.StatusCode}
	}
	return resp, nil
}

// sniffEnvelope decodes the body as the structured envelope when it
// looks like one. The decision is structural, not content-type based:
// the print result endpoint answers with either a JSON status envelope
// or the raw artifact bytes on the same route.
func sniffEnvelope(raw []byte) *domain.Envelope {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var env domain.Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Status == "" {
		return nil
	}
	return &env
}
