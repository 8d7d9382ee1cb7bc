package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTextSimilarity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/similarity/text" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req TextSimilarityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.TextA != "black wallet" || req.TextB != "dark wallet" {
			t.Errorf("unexpected payload: %+v", req)
		}
		json.NewEncoder(w).Encode(SimilarityResponse{Similarity: 0.83})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.TextSimilarity(context.Background(), "black wallet", "dark wallet")
	if err != nil {
		t.Fatalf("TextSimilarity: %v", err)
	}
	if got != 0.83 {
		t.Errorf("similarity = %v, want 0.83", got)
	}
}

func TestImageSimilarity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/similarity/image" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(SimilarityResponse{Similarity: 0.71})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.ImageSimilarity(context.Background(), "a.jpg", "b.jpg")
	if err != nil {
		t.Fatalf("ImageSimilarity: %v", err)
	}
	if got != 0.71 {
		t.Errorf("similarity = %v, want 0.71", got)
	}
}

func TestSimilarityServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.TextSimilarity(context.Background(), "a", "b"); err == nil {
		t.Error("expected error on 503 response")
	}
	if _, err := client.TextImageSimilarity(context.Background(), "a", "b.jpg"); err == nil {
		t.Error("expected error on 503 response")
	}
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(HealthResponse{
			Status:           "ok",
			TextModelLoaded:  true,
			ImageModelLoaded: true,
			ClipModelLoaded:  true,
			Device:           "cpu",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	health, err := client.HealthCheck(context.Background())
	if err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	if health.Status != "ok" || !health.TextModelLoaded {
		t.Errorf("unexpected health response: %+v", health)
	}
}

func TestHealthCheckUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	if _, err := client.HealthCheck(context.Background()); err == nil {
		t.Error("expected error for unreachable service")
	}
}
