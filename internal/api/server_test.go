package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/pagemerge/internal/config"
	"github.com/dgallion1/pagemerge/internal/pipeline"
	"github.com/dgallion1/pagemerge/internal/translate"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T, translator *translate.Client) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		APIKey:                 testAPIKey,
		DefaultMaxChars:        2000,
		ChunkPadWidth:          3,
		WorkerCount:            1,
		MaxQueueSize:           4,
		MaxConcurrentTranslate: 1,
		JobTTL:                 time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	orch := pipeline.NewOrchestrator(cfg, translator, log)
	srv := httptest.NewServer(NewServer(cfg, orch, log).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, auth bool) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+testAPIKey)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestHealth_NoAuthRequired(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if m := decodeBody(t, resp); m["status"] != "ok" {
		t.Errorf("unexpected health body %v", m)
	}
}

func TestAuth_Rejected(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/merge", map[string]string{}, false)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/merge", bytes.NewReader(nil))
	req.Header.Set("Authorization", "Bearer wrong-key")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong key, got %d", resp2.StatusCode)
	}
}

func TestMerge_ValidationErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	cases := []map[string]any{
		{"output_dir": "/tmp/out"},
		{"source": "/tmp/pages"},
		{"source": "/tmp/pages", "output_dir": "/tmp/out", "max_chars": -1},
	}
	for _, body := range cases {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/merge", body, true)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %v: expected 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestMerge_AsyncSubmitAndStatus(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/merge", map[string]any{
		"source":     "/tmp/pages",
		"output_dir": "/tmp/out",
	}, true)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	jobID, _ := body["job_id"].(string)
	if jobID == "" {
		t.Fatalf("expected job_id in response, got %v", body)
	}

	statusResp := doJSON(t, http.MethodGet, srv.URL+"/api/merge/"+jobID+"/status", nil, true)
	if statusResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", statusResp.StatusCode)
	}
	statusBody := decodeBody(t, statusResp)
	if statusBody["status"] != string(pipeline.StatusQueued) {
		t.Errorf("expected queued job, got %v", statusBody["status"])
	}
}

func TestMergeStatus_UnknownJob(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/merge/nope/status", nil, true)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestMergeSync_RunsToCompletion(t *testing.T) {
	pages := t.TempDir()
	if err := os.WriteFile(filepath.Join(pages, "001.md"), []byte("Hello world.\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()

	srv := newTestServer(t, nil)
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/merge/sync", map[string]any{
		"source":     pages,
		"output_dir": out,
	}, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != string(pipeline.StatusCompleted) {
		t.Fatalf("expected completed job, got %v", body)
	}

	data, err := os.ReadFile(filepath.Join(out, "chunk_001.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Hello world." {
		t.Errorf("unexpected chunk content %q", string(data))
	}
}

func TestMergeSync_FailureIs422(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/merge/sync", map[string]any{
		"source":     "/does/not/exist",
		"output_dir": t.TempDir(),
	}, true)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestLLMStats(t *testing.T) {
	disabled := newTestServer(t, nil)
	resp := doJSON(t, http.MethodGet, disabled.URL+"/api/stats/llm", nil, true)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503 when translation disabled, got %d", resp.StatusCode)
	}

	enabled := newTestServer(t, translate.NewClient("http://localhost:11434", "gemma3:4b"))
	resp2 := doJSON(t, http.MethodGet, enabled.URL+"/api/stats/llm", nil, true)
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp2.StatusCode)
	}
	body := decodeBody(t, resp2)
	if body["model"] != "gemma3:4b" {
		t.Errorf("expected model in stats, got %v", body)
	}
}
