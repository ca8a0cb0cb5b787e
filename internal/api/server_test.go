package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seoku/promptforge/internal/fetch"
	"github.com/seoku/promptforge/internal/service"
	"github.com/seoku/promptforge/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	svc := service.NewWithStore(store, fetch.NewClient(0))
	// No URL configured, so this publishes the bundled document.
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(NewServer(svc, 0).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response) Response {
	t.Helper()
	defer resp.Body.Close()
	var r Response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestHandleModels(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/models")
	if err != nil {
		t.Fatal(err)
	}
	r := decode(t, resp)

	if !r.Success {
		t.Fatalf("success=false: %s", r.Error)
	}
	list, ok := r.Data.([]interface{})
	if !ok || len(list) == 0 {
		t.Errorf("expected model list, got %T", r.Data)
	}
}

func TestHandleBuild(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(BuildRequest{
		Model:   "midjourney",
		Engine:  "v6.1",
		Text:    "a red shoe, on a wooden table",
		Aspect:  "16:9",
		Stylize: 80,
	})
	resp, err := http.Post(srv.URL+"/api/v1/build", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	r := decode(t, resp)

	if !r.Success {
		t.Fatalf("success=false: %s", r.Error)
	}
	data, ok := r.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data type %T", r.Data)
	}
	if data["params"] == "" || data["full"] == "" {
		t.Errorf("empty build result: %+v", data)
	}
}

func TestHandleBuildUnknownModel(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(BuildRequest{Model: "missing", Text: "x"})
	resp, err := http.Post(srv.URL+"/api/v1/build", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if r := decode(t, resp); r.Success {
		t.Error("expected success=false")
	}
}

func TestHandleBuildMissingModelField(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/build", "application/json", bytes.NewReader([]byte(`{"text":"x"}`)))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestHandleModelByID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/models/midjourney")
	if err != nil {
		t.Fatal(err)
	}
	r := decode(t, resp)
	if !r.Success {
		t.Fatalf("success=false: %s", r.Error)
	}

	resp, err = http.Get(srv.URL + "/api/v1/models/nope")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestHandleRefreshAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	if r := decode(t, resp); !r.Success {
		t.Fatalf("refresh failed: %s", r.Error)
	}

	resp, err = http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatal(err)
	}
	r := decode(t, resp)
	if !r.Success {
		t.Fatalf("health failed: %s", r.Error)
	}
	data := r.Data.(map[string]interface{})
	if data["status"] != "ok" {
		t.Errorf("status = %v", data["status"])
	}
	if data["guidelineSource"] != "local" {
		t.Errorf("guidelineSource = %v", data["guidelineSource"])
	}
}
