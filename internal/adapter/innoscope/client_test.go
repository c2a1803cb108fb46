package innoscope

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFeasibilityCollectsStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feasibility/assess-from-summary-stream" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Accept") != "text/event-stream" {
			t.Fatalf("unexpected accept header: %s", r.Header.Get("Accept"))
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["summary"] != "project summary" {
			t.Fatalf("unexpected summary: %s", body["summary"])
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "## Feasibility\n\n\nMarket looks viable.\n\nNext steps follow.\n")
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	text, err := client.FeasibilityFromSummary(context.Background(), "project summary")
	if err != nil {
		t.Fatalf("FeasibilityFromSummary failed: %v", err)
	}
	// Blank stream lines are dropped, content lines joined.
	want := "## Feasibility\nMarket looks viable.\nNext steps follow."
	if text != want {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestRoadmapStreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/roadmap/generate-from-summary-stream" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream unavailable")
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.RoadmapFromSummary(context.Background(), "s")
	if err == nil {
		t.Fatal("expected error")
	}
}
