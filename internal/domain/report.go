package domain

import "time"

// LinkCheck is the outcome of probing one resolved sidebar link.
type LinkCheck struct {
	Label        string   `json:"label"`
	Trail        []string `json:"trail,omitempty"`
	Href         string   `json:"href"`
	ResolvedHref string   `json:"resolved_href"`
	URL          string   `json:"url,omitempty"`
	StatusCode   int      `json:"status_code,omitempty"`
	LatencyMS    int64    `json:"latency_ms"`
	Skipped      bool     `json:"skipped,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Failed reports whether the link is broken.
func (c LinkCheck) Failed() bool {
	if c.Skipped {
		return false
	}
	if c.Error != "" {
		return true
	}
	return c.StatusCode < 200 || c.StatusCode >= 400
}

// LinkReport is the artifact of a link check run.
type LinkReport struct {
	SidebarID   string      `json:"sidebar_id"`
	SidebarPath string      `json:"sidebar_path"`
	Location    string      `json:"location"`
	Version     string      `json:"version,omitempty"`
	BaseURL     string      `json:"base_url"`
	StartedAt   time.Time   `json:"started_at"`
	EndedAt     time.Time   `json:"ended_at"`
	Results     []LinkCheck `json:"results"`
}

// Failures counts failed link checks.
func (r LinkReport) Failures() int {
	n := 0
	for _, c := range r.Results {
		if c.Failed() {
			n++
		}
	}
	return n
}
