package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
)

func cloudSidebar() domain.Sidebar {
	return domain.Sidebar{
		ID: "gx_cloud",
		Items: []domain.Node{
			&domain.Category{
				Label: "About GX Cloud",
				Link:  &domain.CategoryLink{Type: domain.TargetDoc, ID: "overview"},
				Items: []domain.Node{
					&domain.Link{Label: "Overview", Href: "/cloud/overview"},
					&domain.Link{Label: "Core intro", Href: "/docs/core/introduction"},
				},
			},
			&domain.Link{Label: "Changelog", Href: "https://example.com/releases"},
			&domain.Link{Label: "Stray", Href: "/blog/post"},
			&domain.DocRef{ID: "about_gx"},
		},
	}
}

func cloudVersions() domain.Versions {
	return domain.Versions{
		{ID: "v2", Path: "/cloud/v2"},
		{ID: "current", Path: "/cloud"},
		{ID: "1.1.1", Path: "/docs/1.1.1"},
	}
}

type fakeFinder struct {
	sb  domain.Sidebar
	err error
}

func (f fakeFinder) Find(_ string, id string) (domain.Sidebar, string, error) {
	if f.err != nil {
		return domain.Sidebar{}, "", f.err
	}
	if id != f.sb.ID {
		return domain.Sidebar{}, "", &domain.OpError{
			Op:   "fake.find",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("sidebar %q: %w", id, domain.ErrNotFound),
		}
	}
	return f.sb, "sidebars/" + id + ".yaml", nil
}

type fakeVersions struct {
	vs    domain.Versions
	err   error
	calls int
}

func (f *fakeVersions) LoadVersions(_ string) (domain.Versions, error) {
	f.calls++
	return f.vs, f.err
}

// stubProber answers from a status map keyed by URL; unknown URLs get 200.
type stubProber struct {
	mu     sync.Mutex
	status map[string]int
	errs   map[string]error
	seen   []string
}

func (p *stubProber) Probe(_ context.Context, url string) (ports.ProbeResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, url)
	if err := p.errs[url]; err != nil {
		return ports.ProbeResult{Duration: time.Millisecond}, err
	}
	code, ok := p.status[url]
	if !ok {
		code = 200
	}
	return ports.ProbeResult{StatusCode: code, Duration: 3 * time.Millisecond}, nil
}

// blockingProber waits for the context to end.
type blockingProber struct{}

func (blockingProber) Probe(ctx context.Context, _ string) (ports.ProbeResult, error) {
	<-ctx.Done()
	return ports.ProbeResult{}, ctx.Err()
}

type memStore struct {
	saved []domain.LinkReport
}

func (s *memStore) SaveReport(r domain.LinkReport) (string, error) {
	s.saved = append(s.saved, r)
	return fmt.Sprintf("report-%d", len(s.saved)), nil
}

type errStore struct{ err error }

func (s errStore) SaveReport(_ domain.LinkReport) (string, error) { return "", s.err }

type fakeInitializer struct {
	spec  domain.WorkspaceSpec
	force bool
	err   error
}

func (f *fakeInitializer) Init(spec domain.WorkspaceSpec, force bool) error {
	f.spec, f.force = spec, force
	return f.err
}

var (
	_ ports.SidebarFinder        = fakeFinder{}
	_ ports.VersionLoader        = (*fakeVersions)(nil)
	_ ports.LinkProber           = (*stubProber)(nil)
	_ ports.LinkProber           = blockingProber{}
	_ ports.ReportStore          = (*memStore)(nil)
	_ ports.ReportStore          = errStore{}
	_ ports.WorkspaceInitializer = (*fakeInitializer)(nil)

	errBoom = errors.New("boom")
)
