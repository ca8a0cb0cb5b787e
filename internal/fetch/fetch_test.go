package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleDoc = `{
	"version": "2.1.0",
	"updatedAt": "2026-08-01T00:00:00Z",
	"models": [
		{"id": "midjourney", "name": "Midjourney", "latest": "v6",
		 "engines": ["v6"], "params": {"aspectKey": "--ar", "stylizeKey": "--s"},
		 "template": "{subject}. Parameters: {aspect} {stylize}"}
	],
	"lexicon": {"유리": "glass"}
}`

func TestGuidelineFetchAndParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cache-Control") != "no-cache" {
			t.Errorf("missing no-cache header")
		}
		w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	doc, raw, err := NewClient(0).Guideline(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Guideline() error: %v", err)
	}

	if doc.Version != "2.1.0" {
		t.Errorf("Version = %q", doc.Version)
	}
	if len(doc.Models) != 1 || doc.Models[0].ID != "midjourney" {
		t.Errorf("Models = %+v", doc.Models)
	}
	if doc.Models[0].Params.AspectKey != "--ar" {
		t.Errorf("AspectKey = %q", doc.Models[0].Params.AspectKey)
	}
	if string(raw) != sampleDoc {
		t.Error("raw payload does not match served bytes")
	}
}

func TestGuidelineNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, _, err := NewClient(0).Guideline(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestGuidelineMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	if _, _, err := NewClient(0).Guideline(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestGuidelineUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, _, err := NewClient(0).Guideline(context.Background(), url); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
