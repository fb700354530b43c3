package ollama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"github.com/FindHao/relgen/internal/logging"
)

func testLogger() logging.Logger {
	return logging.New(logr.Discard())
}

func TestGenerate_AccumulatesStreamedFragments(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		io.WriteString(w, `{"response":"## Bug Fixes:\n"}`+"\n")
		io.WriteString(w, `{"response":"- Fixes a crash (#123)."}`+"\n")
		io.WriteString(w, `{"done":true}`+"\n")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-model", 0, testLogger())
	out, err := client.Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "## Bug Fixes:\n- Fixes a crash (#123)." {
		t.Fatalf("unexpected accumulated response %q", out)
	}

	if gotBody["model"] != "test-model" || gotBody["prompt"] != "the prompt" {
		t.Fatalf("unexpected request body %v", gotBody)
	}
	opts, ok := gotBody["options"].(map[string]any)
	if !ok || opts["stream"] != true {
		t.Fatalf("expected streaming option in request, got %v", gotBody["options"])
	}
}

func TestGenerate_SkipsMalformedFragments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"response":"hello"}`+"\n")
		io.WriteString(w, "this is not json\n")
		io.WriteString(w, `{"response":" world","done":true}`+"\n")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "m", 0, testLogger())
	out, err := client.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "hello world" {
		t.Fatalf("unexpected response %q", out)
	}
}

func TestGenerate_StopsAtDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"response":"kept","done":true}`+"\n")
		io.WriteString(w, `{"response":" dropped"}`+"\n")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "m", 0, testLogger())
	out, err := client.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "kept" {
		t.Fatalf("expected fragments after done to be ignored, got %q", out)
	}
}

func TestGenerate_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "m", 0, testLogger())
	out, err := client.Generate(context.Background(), "p")
	if err == nil {
		t.Fatalf("expected error for non-200 status")
	}
	if out != "" {
		t.Fatalf("expected empty result, got %q", out)
	}
}

func TestGenerate_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(srv.URL, "m", 50*time.Millisecond, testLogger())
	_, err := client.Generate(context.Background(), "p")
	if err == nil {
		t.Fatalf("expected timeout error")
	}
}
