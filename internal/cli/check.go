package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
	"github.com/aalvaropc/navlink/internal/usecase"
)

func checkCmd() *cobra.Command {
	var wf workspaceFlags
	var vf viewFlags
	var baseURL string
	var concurrency int
	var noSave bool
	var format string

	c := &cobra.Command{
		Use:   "check <sidebar>",
		Short: "Probe every resolved sidebar link against the site base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(wf)
			if err != nil {
				return err
			}

			base := strings.TrimSpace(baseURL)
			if base == "" {
				base = ws.cfg.Site.BaseURL
			}
			if base == "" {
				return errors.New("base url is required (set site.base_url in navlink.yaml or pass --base-url)")
			}

			n := ws.cfg.Check.Concurrency
			if concurrency > 0 {
				n = concurrency
			}

			var store ports.ReportStore = ws.store
			if noSave {
				store = nil
			}

			uc := usecase.NewCheckLinks(ws.sidebars, ws.versions, ws.prober, store, ws.resolver,
				usecase.WithConcurrency(n),
			)

			report, id, err := uc.Execute(cmd.Context(), usecase.CheckQuery{
				SidebarQuery: ws.query(args[0], vf),
				BaseURL:      base,
			})
			if err != nil {
				_ = printReport(cmd.OutOrStdout(), report, id, format)
				return err
			}

			if err := printReport(cmd.OutOrStdout(), report, id, format); err != nil {
				return err
			}

			if fails := report.Failures(); fails > 0 {
				return fmt.Errorf("check failed (%d broken link(s))", fails)
			}
			return nil
		},
	}

	wf.register(c)
	vf.register(c)
	c.Flags().StringVar(&baseURL, "base-url", "", "Site base URL (overrides site.base_url)")
	c.Flags().IntVar(&concurrency, "concurrency", 0, "Concurrent probes (overrides check.concurrency)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save the report under reports/")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printReport(w io.Writer, r domain.LinkReport, id string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"report_id": id,
			"report":    r,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyReport(w, r, id)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyReport(w io.Writer, r domain.LinkReport, id string) {
	total := r.EndedAt.Sub(r.StartedAt)
	if r.StartedAt.IsZero() || r.EndedAt.IsZero() {
		total = 0
	}
	version := r.Version
	if version == "" {
		version = "(default)"
	}

	fmt.Fprintf(w, "Sidebar:  %s\n", r.SidebarID)
	fmt.Fprintf(w, "Location: %s\n", r.Location)
	fmt.Fprintf(w, "Version:  %s\n", version)
	fmt.Fprintf(w, "Base URL: %s\n", r.BaseURL)
	fmt.Fprintf(w, "Duration: %s\n", total.Round(time.Millisecond))
	if id != "" {
		fmt.Fprintf(w, "Report:   %s\n", id)
	}
	fmt.Fprintln(w)

	for _, c := range r.Results {
		status := "OK"
		switch {
		case c.Skipped:
			status = "SKIP"
		case c.Failed():
			status = "FAIL"
		}

		where := c.Label
		if len(c.Trail) > 0 {
			where = strings.Join(c.Trail, " › ") + " › " + c.Label
		}
		fmt.Fprintf(w, "- [%s] %s\n", status, where)

		switch {
		case c.Skipped:
			fmt.Fprintf(w, "  external: %s\n", c.Href)
		case c.Error != "" && c.URL == "":
			fmt.Fprintf(w, "  href: %s\n  error: %s\n", c.Href, c.Error)
		case c.Error != "":
			fmt.Fprintf(w, "  %s\n  error: %s\n", c.URL, c.Error)
		default:
			fmt.Fprintf(w, "  %s  %d  %dms\n", c.URL, c.StatusCode, c.LatencyMS)
		}
	}

	fmt.Fprintf(w, "\n%d link(s), %d broken\n", len(r.Results), r.Failures())
}
