package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func initWorkspace(t *testing.T, baseURL string) string {
	t.Helper()
	tmp := t.TempDir()
	args := []string{"init", "--path", tmp}
	if baseURL != "" {
		args = append(args, "--base-url", baseURL)
	}
	if _, err := runCLI(t, args...); err != nil {
		t.Fatalf("init: %v", err)
	}
	return tmp
}

func TestCLI_ResolveWithMaps(t *testing.T) {
	out, err := runCLI(t, "resolve", "/docs/my-doc",
		"-w", t.TempDir(),
		"--location", "/docs/1.1.1/intro",
		"--map", "1.1.1=/docs/1.1.1",
	)
	if err == nil {
		// -w points at a dir without navlink.yaml, so loading must fail.
		t.Fatalf("expected missing config error, got output %q", out)
	}

	ws := initWorkspace(t, "")
	out, err = runCLI(t, "resolve", "/docs/my-doc", "/cloud/overview",
		"-w", ws,
		"--location", "/docs/1.1.1/intro",
		"--map", "1.1.1=/docs/1.1.1",
	)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out != "/docs/1.1.1/my-doc\n/docs/1.1.1/overview\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCLI_ResolveUsesWorkspaceRegistry(t *testing.T) {
	ws := initWorkspace(t, "")
	out, err := runCLI(t, "resolve", "/cloud/overview", "-w", ws, "--location", "/cloud/v2/x")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if strings.TrimSpace(out) != "/cloud/v2/overview" {
		t.Fatalf("unexpected output %q", out)
	}

	_, err = runCLI(t, "resolve", "/blog/post", "-w", ws)
	if err == nil {
		t.Fatalf("expected error for path outside the roots")
	}
}

func TestCLI_RenderAndValidate(t *testing.T) {
	ws := initWorkspace(t, "")

	out, err := runCLI(t, "render", "gx_cloud", "-w", ws, "--version", "v2")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Version:  v2") || !strings.Contains(out, "/cloud/v2/overview/gx_cloud_overview#gx-cloud-concepts") {
		t.Fatalf("unexpected render output:\n%s", out)
	}

	out, err = runCLI(t, "validate", "gx_cloud", "-w", ws)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "OK") {
		t.Fatalf("expected OK, got:\n%s", out)
	}

	out, err = runCLI(t, "sidebars", "list", "-w", ws)
	if err != nil || !strings.Contains(out, "- gx_cloud") {
		t.Fatalf("sidebars list: %v\n%s", err, out)
	}

	out, err = runCLI(t, "versions", "list", "-w", ws)
	if err != nil || !strings.Contains(out, "- v2  /cloud/v2") {
		t.Fatalf("versions list: %v\n%s", err, out)
	}
}

func TestCLI_MalformedSidebarReportsFieldPath(t *testing.T) {
	ws := initWorkspace(t, "")
	bad := filepath.Join(ws, "sidebars", "gx_cloud.yaml")
	if err := os.WriteFile(bad, []byte("gx_cloud:\n  - type: link\n    label: x\n"), 0o644); err != nil {
		t.Fatalf("write sidebar: %v", err)
	}

	out, err := runCLI(t, "validate", "gx_cloud", "-w", ws)
	if err == nil {
		t.Fatalf("expected validate to fail, got:\n%s", out)
	}
	if !strings.Contains(err.Error(), "gx_cloud[0].href") {
		t.Fatalf("expected field path in error, got: %v", err)
	}
	if strings.Contains(err.Error(), "not found") {
		t.Fatalf("malformed sidebar reported as missing: %v", err)
	}

	out, err = runCLI(t, "sidebars", "list", "-w", ws)
	if err == nil {
		t.Fatalf("expected sidebars list to fail on a broken file, got:\n%s", out)
	}
	if !strings.Contains(out, "! sidebars/gx_cloud.yaml") || !strings.Contains(out, "gx_cloud[0].href") {
		t.Fatalf("expected broken file in listing, got:\n%s", out)
	}
}

func TestCLI_CheckAgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "connect_airflow") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ws := initWorkspace(t, server.URL)

	out, err := runCLI(t, "check", "gx_cloud", "-w", ws, "--no-save")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "0 broken") {
		t.Fatalf("expected no broken links, got:\n%s", out)
	}
	if entries, _ := os.ReadDir(filepath.Join(ws, "reports")); len(entries) != 0 {
		t.Fatalf("expected --no-save to skip the report, found %d file(s)", len(entries))
	}
}

func TestCLI_CheckSavesReportAndFailsOnBrokenLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/cloud/v2/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ws := initWorkspace(t, server.URL)

	out, err := runCLI(t, "check", "gx_cloud", "-w", ws, "--version", "v2", "--concurrency", "4")
	if err == nil {
		t.Fatalf("expected failure for broken links, got:\n%s", out)
	}
	if !strings.Contains(err.Error(), "broken link") {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(ws, "reports", "index.jsonl")); statErr != nil {
		t.Fatalf("expected report index, err=%v", statErr)
	}
}

func TestCLI_Version(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "navlink ") {
		t.Fatalf("unexpected version output %q", out)
	}
}
