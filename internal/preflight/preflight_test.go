package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cratesort/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir, AccessReadWrite)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), AccessRead)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f, AccessRead)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDirectoryAccess_ReadOnlyDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission bits")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	if result := CheckDirectoryAccess("test", dir, AccessRead); !result.Passed {
		t.Fatalf("read access should pass on read-only dir, got: %s", result.Detail)
	}
	if result := CheckDirectoryAccess("test", dir, AccessReadWrite); result.Passed {
		t.Fatal("write access should fail on read-only dir")
	}
}

func TestCheckLookupService_OK(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	result := CheckLookupService(context.Background(), "MusicBrainz", srv.URL, "cratesort/test")
	if !result.Passed {
		t.Fatalf("any HTTP answer should count as reachable, got: %s", result.Detail)
	}
	if !result.Optional {
		t.Fatal("lookup checks must be optional")
	}
	if gotAgent != "cratesort/test" {
		t.Fatalf("User-Agent = %q", gotAgent)
	}
}

func TestCheckLookupService_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	result := CheckLookupService(context.Background(), "Last.fm", srv.URL, "")
	if result.Passed {
		t.Fatal("expected failure for closed server")
	}
	if !result.Optional {
		t.Fatal("lookup checks must be optional")
	}
}

func TestRunAllSkipsLookupWhenInactive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	root := t.TempDir()

	results := RunAll(context.Background(), cfg, root, AccessReadWrite, false)
	if len(results) != 2 {
		t.Fatalf("results = %d, want music + log dir only", len(results))
	}
	if Fatal(results) {
		t.Fatalf("unexpected fatal results: %+v", Failed(results))
	}
}

func TestRunAllProbesLookupWhenActive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	defer srv.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithLookup(srv.URL, srv.URL, "key"))
	results := RunAll(context.Background(), cfg, t.TempDir(), AccessRead, true)
	if len(results) != 4 {
		t.Fatalf("results = %d, want dirs plus two lookup probes", len(results))
	}
	if Fatal(results) {
		t.Fatalf("unexpected fatal results: %+v", Failed(results))
	}
}

func TestRunAllChecksReportDirWhenConfigured(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.ReportDir = filepath.Join(t.TempDir(), "missing")

	results := RunAll(context.Background(), cfg, t.TempDir(), AccessRead, false)
	if !Fatal(results) {
		t.Fatal("missing report dir should be fatal")
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Report directory" {
		t.Fatalf("failed = %+v", failed)
	}
}

func TestFatalIgnoresOptionalFailures(t *testing.T) {
	results := []Result{
		{Name: "Music directory", Passed: true},
		{Name: "MusicBrainz", Optional: true, Detail: "reachability check timed out"},
	}
	if Fatal(results) {
		t.Fatal("optional failure should not be fatal")
	}
	if got := Failed(results); len(got) != 1 || got[0].Name != "MusicBrainz" {
		t.Fatalf("Failed = %+v", got)
	}
}
