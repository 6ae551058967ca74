package ports

import (
	"context"
	"time"
)

// ProbeResult is what a LinkProber observed for one URL.
type ProbeResult struct {
	StatusCode int
	Duration   time.Duration
}

// LinkProber checks that a URL is reachable.
type LinkProber interface {
	Probe(ctx context.Context, url string) (ProbeResult, error)
}
