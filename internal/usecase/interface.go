package usecase

import (
	"context"
	"net/url"

	"github.com/DevNF/nfplugboleto/internal/domain"
)

// Transport executes one round trip against the boleto service. The
// flows in this package depend on this interface, not on a concrete
// HTTP client.
//
// Implementations must return a Response with a decoded Envelope when
// the body is the structured wire envelope, and with Envelope nil (raw
// bytes only) when it is not. Network and HTTP level failures are
// returned as errors and are never retried by this layer.
//
//go:generate mockgen -destination=mocks/mock_transport.go -source=interface.go Transport
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) (*domain.Response, error)
	Post(ctx context.Context, path string, body any) (*domain.Response, error)
}
