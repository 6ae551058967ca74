package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/aalvaropc/navlink/internal/ports"
)

const userAgent = "navlink-check/1"

// Prober checks link targets with HEAD, retrying with GET when the server
// does not allow HEAD.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// ProberOption allows configuring a Prober.
type ProberOption func(*Prober)

// WithTimeout sets the per-probe timeout.
func WithTimeout(timeout time.Duration) ProberOption {
	return func(p *Prober) { p.timeout = timeout }
}

// WithClient sets a custom HTTP client.
func WithClient(client *http.Client) ProberOption {
	return func(p *Prober) { p.client = client }
}

// NewProber builds a Prober with a default client and timeout.
func NewProber(opts ...ProberOption) *Prober {
	cfg := DefaultConfig()
	p := &Prober{
		client:  New(cfg),
		timeout: cfg.Timeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ ports.LinkProber = (*Prober)(nil)

// Probe returns the final status code and total duration for url.
func (p *Prober) Probe(ctx context.Context, url string) (ports.ProbeResult, error) {
	start := time.Now()
	ctxWithTimeout := ctx
	cancel := func() {}
	if p.timeout > 0 {
		ctxWithTimeout, cancel = context.WithTimeout(ctx, p.timeout)
	}
	defer cancel()

	status, err := p.do(ctxWithTimeout, http.MethodHead, url)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		status, err = p.do(ctxWithTimeout, http.MethodGet, url)
	}

	res := ports.ProbeResult{StatusCode: status, Duration: time.Since(start)}
	if err != nil {
		return res, err
	}
	return res, nil
}

func (p *Prober) do(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Drain a bounded amount so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	return resp.StatusCode, nil
}
