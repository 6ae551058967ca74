package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/aalvaropc/navlink/internal/ctxlog"
	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

type CheckLinks struct {
	sidebars    ports.SidebarFinder
	versions    ports.VersionLoader
	prober      ports.LinkProber
	store       ports.ReportStore
	resolver    *domain.Resolver
	concurrency int
	now         func() time.Time
}

type CheckOption func(*CheckLinks)

// WithConcurrency bounds the number of in-flight probes.
func WithConcurrency(n int) CheckOption {
	return func(uc *CheckLinks) {
		if n > 0 {
			uc.concurrency = n
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) CheckOption {
	return func(uc *CheckLinks) { uc.now = now }
}

// NewCheckLinks wires the link checker. store may be nil, in which case no
// report is persisted.
func NewCheckLinks(sf ports.SidebarFinder, vl ports.VersionLoader, p ports.LinkProber, store ports.ReportStore, r *domain.Resolver, opts ...CheckOption) *CheckLinks {
	if r == nil {
		r = domain.NewResolver()
	}
	uc := &CheckLinks{
		sidebars:    sf,
		versions:    vl,
		prober:      p,
		store:       store,
		resolver:    r,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CheckQuery selects what to check and where the site is served.
type CheckQuery struct {
	SidebarQuery
	BaseURL string
}

type pending struct {
	check domain.LinkCheck
	probe bool
}

// Execute resolves every link of the sidebar for the query's location and
// probes root-relative targets against BaseURL. Results keep sidebar order.
// It returns the report and, when a store is configured, the saved report id.
func (uc *CheckLinks) Execute(ctx context.Context, q CheckQuery) (domain.LinkReport, string, error) {
	in, err := load(uc.sidebars, uc.versions, q.SidebarQuery)
	if err != nil {
		return domain.LinkReport{}, "", err
	}

	base := strings.TrimRight(q.BaseURL, "/")
	report := domain.LinkReport{
		SidebarID:   in.sidebar.ID,
		SidebarPath: in.sidebarPath,
		Location:    in.location,
		BaseURL:     base,
		StartedAt:   uc.now(),
	}
	if v, ok := uc.resolver.ActiveVersion(in.location, in.versions); ok {
		report.Version = v.ID
	}

	var items []pending
	_ = domain.Walk(in.sidebar.Items, func(n domain.Node, trail []string, _ string) error {
		l, ok := n.(*domain.Link)
		if !ok {
			return nil
		}
		c := domain.LinkCheck{Label: l.Label, Trail: trail, Href: l.Href}
		switch {
		case domain.IsExternal(l.Href):
			c.ResolvedHref = l.Href
			c.Skipped = true
			items = append(items, pending{check: c})
		default:
			resolved, err := uc.resolver.Resolve(l.Href, in.location, in.versions)
			if err != nil {
				c.ResolvedHref = l.Href
				c.Error = err.Error()
				items = append(items, pending{check: c})
				return nil
			}
			c.ResolvedHref = resolved
			c.URL = base + resolved
			items = append(items, pending{check: c, probe: true})
		}
		return nil
	})

	log := ctxlog.FromContext(ctx).With("sidebar", report.SidebarID, "location", report.Location)
	log.Info("check.start", "links", len(items), "concurrency", uc.concurrency)

	results := make([]domain.LinkCheck, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, it := range items {
		results[i] = it.check
		if !it.probe {
			continue
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := uc.prober.Probe(gctx, results[i].URL)
			results[i].StatusCode = res.StatusCode
			results[i].LatencyMS = res.Duration.Milliseconds()
			if err != nil {
				results[i].Error = err.Error()
			}
			log.Debug("check.probe",
				"url", results[i].URL,
				"status", res.StatusCode,
				"latency_ms", results[i].LatencyMS,
			)
			// Probe failures are recorded on the result, not returned.
			return nil
		})
	}

	waitErr := g.Wait()
	report.Results = results
	report.EndedAt = uc.now()
	if err := ctx.Err(); err != nil {
		log.Warn("check.canceled", "err", err)
		return report, "", err
	}
	if waitErr != nil {
		return report, "", waitErr
	}

	log.Info("check.done", "links", len(results), "failures", report.Failures())

	if uc.store == nil {
		return report, "", nil
	}
	id, err := uc.store.SaveReport(report)
	if err != nil {
		return report, "", err
	}
	return report, id, nil
}
