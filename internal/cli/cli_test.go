package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/usecase"
)

// --- fileExists ---

func TestFileExists(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "exists.txt")
	if err := os.WriteFile(p, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !fileExists(p) {
		t.Errorf("expected fileExists=true for %s", p)
	}
	if fileExists(filepath.Join(tmp, "not_there.txt")) {
		t.Error("expected fileExists=false for non-existent file")
	}
}

// --- parseVersionMaps ---

func TestParseVersionMaps(t *testing.T) {
	vs, err := parseVersionMaps([]string{"v2=/cloud/v2", " 1.1.1 = /docs/1.1.1 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(vs.IDs(), ","); got != "v2,1.1.1" {
		t.Fatalf("unexpected ids %q", got)
	}
	if vs[1].Path != "/docs/1.1.1" {
		t.Fatalf("expected trimmed path, got %q", vs[1].Path)
	}
}

func TestParseVersionMaps_Invalid(t *testing.T) {
	for _, in := range [][]string{{"v2"}, {"v2=cloud/v2"}, {"a=/x", "a=/y"}} {
		if _, err := parseVersionMaps(in); !domain.IsKind(err, domain.KindInvalidArgument) {
			t.Errorf("parseVersionMaps(%v): expected KindInvalidArgument, got %v", in, err)
		}
	}
}

// --- pickVersionsPath ---

func TestPickVersionsPath(t *testing.T) {
	tmp := t.TempDir()
	cfg := domain.DefaultConfig()

	if got := pickVersionsPath(tmp, cfg, ""); got != "" {
		t.Fatalf("expected no registry, got %q", got)
	}

	gd := filepath.Join(tmp, cfg.Paths.GlobalData)
	if err := os.MkdirAll(filepath.Dir(gd), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(gd, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := pickVersionsPath(tmp, cfg, ""); got != gd {
		t.Fatalf("expected global data fallback, got %q", got)
	}

	vf := filepath.Join(tmp, cfg.Paths.VersionsFile)
	if err := os.WriteFile(vf, []byte("versions: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := pickVersionsPath(tmp, cfg, ""); got != vf {
		t.Fatalf("expected versions file first, got %q", got)
	}

	if got := pickVersionsPath(tmp, cfg, "other.yaml"); got != filepath.Join(tmp, "other.yaml") {
		t.Fatalf("expected flag relative to root, got %q", got)
	}
}

// --- versionLoader ---

type recordingLoader struct{ called *string }

func (r recordingLoader) LoadVersions(path string) (domain.Versions, error) {
	*r.called = path
	return nil, nil
}

func TestVersionLoader_DispatchesByExtension(t *testing.T) {
	var y, j string
	l := versionLoader{yaml: recordingLoader{&y}, json: recordingLoader{&j}}

	_, _ = l.LoadVersions("a/globalData.JSON")
	_, _ = l.LoadVersions("a/versions.yml")
	if j != "a/globalData.JSON" || y != "a/versions.yml" {
		t.Fatalf("unexpected dispatch: yaml=%q json=%q", y, j)
	}
}

// --- printers ---

func sampleReport() domain.LinkReport {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return domain.LinkReport{
		SidebarID: "gx_cloud",
		Location:  "/cloud/v2/",
		Version:   "v2",
		BaseURL:   "https://docs.example.com",
		StartedAt: now,
		EndedAt:   now.Add(150 * time.Millisecond),
		Results: []domain.LinkCheck{
			{Label: "Overview", Trail: []string{"About"}, Href: "/cloud/overview", ResolvedHref: "/cloud/v2/overview",
				URL: "https://docs.example.com/cloud/v2/overview", StatusCode: 200, LatencyMS: 12},
			{Label: "Gone", Href: "/cloud/gone", ResolvedHref: "/cloud/v2/gone",
				URL: "https://docs.example.com/cloud/v2/gone", StatusCode: 404, LatencyMS: 9},
			{Label: "Changelog", Href: "https://example.com/releases", Skipped: true},
			{Label: "Stray", Href: "/blog/x", Error: "not root-relative"},
		},
	}
}

func TestPrintReport_JSON_ValidOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, sampleReport(), "abc123", "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if payload["report_id"] != "abc123" {
		t.Errorf("expected report_id=abc123, got %v", payload["report_id"])
	}
	if payload["report"] == nil {
		t.Error("expected 'report' key in JSON output")
	}
}

func TestPrintReport_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, sampleReport(), "run-42", "pretty"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Report:   run-42",
		"[OK] About › Overview",
		"[FAIL] Gone",
		"[SKIP] Changelog",
		"error: not root-relative",
		"4 link(s), 2 broken",
		"Duration: 150ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestPrinters_UnknownFormat_ReturnsError(t *testing.T) {
	var buf bytes.Buffer
	errs := []error{
		printReport(&buf, domain.LinkReport{}, "", "xml"),
		printRendered(&buf, domain.RenderedSidebar{}, "xml"),
		printValidation(&buf, usecase.ValidationResult{}, "xml"),
		printResolved(&buf, nil, "xml"),
	}
	for i, err := range errs {
		if err == nil || !strings.Contains(err.Error(), "xml") {
			t.Errorf("printer %d: expected error mentioning format, got %v", i, err)
		}
	}
}

func TestPrintRendered_Pretty(t *testing.T) {
	sb := domain.RenderedSidebar{
		ID:       "gx_cloud",
		Location: "/cloud/v2/",
		Version:  "v2",
		Items: []domain.RenderedNode{
			{Type: domain.NodeCategory, Label: "Connect", ResolvedHref: "/cloud/v2/connect/connect_lp", Items: []domain.RenderedNode{
				{Type: domain.NodeDoc, ID: "connect/connect_postgresql", ResolvedHref: "/cloud/v2/connect/connect_postgresql"},
			}},
			{Type: domain.NodeLink, Label: "Stray", Href: "/blog/x", ResolvedHref: "/blog/x", Error: "bad"},
		},
	}
	var buf bytes.Buffer
	if err := printRendered(&buf, sb, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"▸ Connect  → /cloud/v2/connect/connect_lp",
		"  - connect/connect_postgresql  → /cloud/v2/connect/connect_postgresql",
		"[unresolved: bad]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestPrintValidation_Pretty(t *testing.T) {
	res := usecase.ValidationResult{
		SidebarID: "gx_cloud",
		Contexts:  []string{"default", "v2"},
		Checked:   4,
		Issues: []usecase.ValidationIssue{
			{Versions: []string{"default", "v2"}, Field: "gx_cloud[2]", Label: "Stray", Href: "/blog/x", Error: "nope"},
		},
	}
	var buf bytes.Buffer
	if err := printValidation(&buf, res, "pretty"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `- [default,v2] gx_cloud[2] "Stray" /blog/x`) {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestPrintResolved(t *testing.T) {
	rs := []resolveResult{{Path: "/docs/a", Location: "/docs/1.1.1/x", Resolved: "/docs/1.1.1/a", Version: "1.1.1"}}

	var buf bytes.Buffer
	if err := printResolved(&buf, rs, "pretty"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "/docs/1.1.1/a\n" {
		t.Fatalf("unexpected pretty output %q", buf.String())
	}

	buf.Reset()
	if err := printResolved(&buf, rs, "json"); err != nil {
		t.Fatal(err)
	}
	var decoded []resolveResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Version != "1.1.1" {
		t.Fatalf("unexpected decoded output %+v", decoded)
	}
}

// --- command structure ---

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"init", "version", "resolve", "validate", "render", "check", "sidebars", "versions", "browse"} {
		if !names[expected] {
			t.Errorf("expected subcommand %q to be registered", expected)
		}
	}
}

func TestCheckCmd_Flags(t *testing.T) {
	cmd := checkCmd()
	for _, flag := range []string{"workspace", "versions", "match", "location", "version", "base-url", "concurrency", "no-save", "format"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on check command", flag)
		}
	}
}

func TestInitCmd_Flags(t *testing.T) {
	cmd := initCmd()
	for _, flag := range []string{"path", "force", "base-url"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on init command", flag)
		}
	}
}

func TestListCmds_HaveListSubcommand(t *testing.T) {
	for _, parent := range []string{"sidebars", "versions"} {
		cmd := newRootCmd()
		sub, _, err := cmd.Find([]string{parent, "list"})
		if err != nil || sub.Name() != "list" {
			t.Errorf("expected 'list' subcommand under %s, err=%v", parent, err)
		}
	}
}

// --- resolveWorkspaceRoot ---

func TestResolveWorkspaceRoot_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	got, err := resolveWorkspaceRoot(tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tmp {
		t.Errorf("expected %q, got %q", tmp, got)
	}
}

func TestResolveWorkspaceRoot_RelativePath(t *testing.T) {
	got, err := resolveWorkspaceRoot(".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}
