package reportstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const defaultReportsDir = "reports"

type JSONStore struct {
	rootDir        string
	reportsDirName string
	writeIndex     bool
	now            func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: reports/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	dir := cfg.Paths.ReportsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultReportsDir
	}

	s := &JSONStore{
		rootDir:        root,
		reportsDirName: dir,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ReportStore = (*JSONStore)(nil)

func (s *JSONStore) SaveReport(report domain.LinkReport) (string, error) {
	dir := filepath.Join(s.rootDir, s.reportsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := report.StartedAt
	if ts.IsZero() {
		ts = s.now()
		report.StartedAt = ts
	}
	ts = ts.UTC()

	name := report.SidebarID
	if report.Version != "" {
		name += " " + report.Version
	}
	slug := slugify(name)
	if slug == "" {
		slug = "report"
	}

	base := fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug)
	id, path, err := uniquePath(dir, base)
	if err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.stat",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "reportstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filepath.Base(path), report)
	}

	return id, nil
}

// uniquePath picks base.json, then base-2.json, base-3.json, ...
func uniquePath(dir, base string) (string, string, error) {
	id := base
	for i := 2; ; i++ {
		path := filepath.Join(dir, id+".json")
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return id, path, nil
		}
		if err != nil {
			return "", "", err
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *JSONStore) appendIndex(dir, id, filename string, r domain.LinkReport) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Sidebar   string    `json:"sidebar"`
		Version   string    `json:"version,omitempty"`
		Links     int       `json:"links"`
		Failures  int       `json:"failures"`
		StartedAt time.Time `json:"started_at"`
	}
	line, err := json.Marshal(idx{
		ID:        id,
		File:      filename,
		Sidebar:   r.SidebarID,
		Version:   r.Version,
		Links:     len(r.Results),
		Failures:  r.Failures(),
		StartedAt: r.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// slugify produces a safe filename component. Accents are folded to their
// base letters before anything non-alphanumeric collapses into a dash.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
