package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/five82/setlist/internal/catalog"
	"github.com/five82/setlist/internal/fallback"
)

// offlineConfig writes a config whose service answers every request with
// 503, so each command runs against the offline catalog.
func offlineConfig(t *testing.T, extra string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	body := `api_base_url = "` + srv.URL + `"
request_timeout = "2s"
data_dir = "` + filepath.ToSlash(filepath.Join(dir, "data")) + `"
log_level = "error"
` + extra
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	root, c := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	prefsPath := filepath.Join(filepath.Dir(configPath), "prefs.toml")
	root.SetArgs(append([]string{"--config", configPath, "--prefs", prefsPath}, args...))

	err := root.ExecuteContext(context.Background())
	if closeErr := c.close(); closeErr != nil {
		t.Fatalf("close: %v", closeErr)
	}
	return out.String(), err
}

func TestShows_OfflineListsSeedCatalog(t *testing.T) {
	cfg := offlineConfig(t, "")

	out, err := execute(t, cfg, "shows")
	if err != nil {
		t.Fatalf("shows returned error: %v", err)
	}
	for _, want := range []string{"Rock Legends Live", "Jazz Under the Stars", "Electronic Pulse", "Total: 3 show(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShows_JSONSortedByTitle(t *testing.T) {
	cfg := offlineConfig(t, "")

	out, err := execute(t, cfg, "shows", "--sort", "title", "--json")
	if err != nil {
		t.Fatalf("shows returned error: %v", err)
	}
	var shows []catalog.Show
	if err := json.Unmarshal([]byte(out), &shows); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(shows) != 3 || shows[0].Title != "Electronic Pulse" {
		t.Fatalf("shows = %+v, want Electronic Pulse first", shows)
	}
}

func TestShows_FiltersAndRejectsUnknownSort(t *testing.T) {
	cfg := offlineConfig(t, "")

	out, err := execute(t, cfg, "shows", "--genre", "Jazz")
	if err != nil {
		t.Fatalf("shows returned error: %v", err)
	}
	if !strings.Contains(out, "Jazz Under the Stars") || strings.Contains(out, "Rock Legends Live") {
		t.Fatalf("genre filter output:\n%s", out)
	}

	out, err = execute(t, cfg, "shows", "--search", "polka")
	if err != nil || !strings.Contains(out, "No shows found.") {
		t.Fatalf("empty search: err=%v out=%q", err, out)
	}

	if _, err := execute(t, cfg, "shows", "--sort", "rating"); err == nil {
		t.Fatalf("unknown sort key returned nil error")
	}
}

func TestShow_NotFound(t *testing.T) {
	cfg := offlineConfig(t, "")
	_, err := execute(t, cfg, "show", "999")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("show 999 error = %v, want not found", err)
	}
	if _, err := execute(t, cfg, "show", "abc"); err == nil {
		t.Fatalf("show abc returned nil error")
	}
}

func TestBandCreate_OfflineIsKeptAcrossRuns(t *testing.T) {
	cfg := offlineConfig(t, "")

	out, err := execute(t, cfg, "band", "create",
		"--name", "Velvet Static", "--genre", "Indie",
		"--description", "Fuzzy guitars and quiet vocals", "--formed-year", "2012")
	if err != nil {
		t.Fatalf("band create returned error: %v", err)
	}
	if !strings.Contains(out, "saved locally") {
		t.Fatalf("band create output = %q, want saved locally", out)
	}

	out, err = execute(t, cfg, "bands", "--pending", "--json")
	if err != nil {
		t.Fatalf("bands returned error: %v", err)
	}
	var bands []catalog.Band
	if err := json.Unmarshal([]byte(out), &bands); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(bands) != 1 || bands[0].Name != "Velvet Static" {
		t.Fatalf("pending bands = %+v", bands)
	}

	out, err = execute(t, cfg, "bands")
	if err != nil {
		t.Fatalf("bands returned error: %v", err)
	}
	if !strings.Contains(out, "Velvet Static") || !strings.Contains(out, "Total: 4 band(s)") {
		t.Fatalf("bands output:\n%s", out)
	}
}

func TestBandCreate_ValidationError(t *testing.T) {
	cfg := offlineConfig(t, "")
	_, err := execute(t, cfg, "band", "create", "--name", "X", "--genre", "Rock")
	if err == nil || !strings.Contains(err.Error(), "invalid band") {
		t.Fatalf("error = %v, want invalid band", err)
	}
}

func TestReviewLifecycleOffline(t *testing.T) {
	cfg := offlineConfig(t, "")

	out, err := execute(t, cfg, "review", "create", "--json",
		"--show", "1", "--rating", "4", "--comment", "Loud and glorious night", "--name", "sam")
	if err != nil {
		t.Fatalf("review create returned error: %v", err)
	}
	var res fallback.Result[catalog.Review]
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"state": "pending"`) || res.Record.ShowID != 1 {
		t.Fatalf("review create output:\n%s", out)
	}

	out, err = execute(t, cfg, "reviews", "1")
	if err != nil {
		t.Fatalf("reviews returned error: %v", err)
	}
	if !strings.Contains(out, "Loud and glorious night") || !strings.Contains(out, "Amazing show!") {
		t.Fatalf("reviews output:\n%s", out)
	}

	id := strconv.FormatInt(res.Record.ID, 10)
	out, err = execute(t, cfg, "review", "delete", id)
	if err != nil {
		t.Fatalf("review delete returned error: %v", err)
	}
	if !strings.Contains(out, "deleted") {
		t.Fatalf("delete output = %q", out)
	}

	out, err = execute(t, cfg, "reviews", "1")
	if err != nil {
		t.Fatalf("reviews returned error: %v", err)
	}
	if strings.Contains(out, "Loud and glorious night") {
		t.Fatalf("deleted review still listed:\n%s", out)
	}
}

func TestStatus_Offline(t *testing.T) {
	cfg := offlineConfig(t, "")

	out, err := execute(t, cfg, "status")
	if err != nil {
		t.Fatalf("status returned error: %v", err)
	}
	if !strings.Contains(out, "Backend Offline") || !strings.Contains(out, "Pending: 0 band(s), 0 review(s)") {
		t.Fatalf("status output:\n%s", out)
	}
}

func TestLogs(t *testing.T) {
	cfg := offlineConfig(t, "")
	if _, err := execute(t, cfg, "logs"); err == nil {
		t.Fatalf("logs without log_file returned nil error")
	}

	logPath := filepath.Join(t.TempDir(), "setlist.log")
	lines := strings.Join([]string{
		"2024-06-01 12:00:00\tINFO\tmonitor\tmonitor/monitor.go:190\tservice availability changed",
		"2024-06-01 12:00:01\tWARN\tfallback\tfallback/client.go:158\tpersist local record failed\t{\"op\": \"create band\"}",
	}, "\n") + "\n"
	if err := os.WriteFile(logPath, []byte(lines), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg = offlineConfig(t, `log_file = "`+filepath.ToSlash(logPath)+`"`+"\n")

	out, err := execute(t, cfg, "logs", "--level", "warn")
	if err != nil {
		t.Fatalf("logs returned error: %v", err)
	}
	if strings.Contains(out, "availability changed") || !strings.Contains(out, "persist local record failed") {
		t.Fatalf("logs output:\n%s", out)
	}
}
