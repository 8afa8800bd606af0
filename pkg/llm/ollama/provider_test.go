package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"market-research-be/pkg/llm"
)

func TestChatSendsOptionsAndParsesReply(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"model": "llama3", "message": {"role": "assistant", "content": "hello"}, "done": true}`)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	reply, err := p.Chat(context.Background(),
		[]llm.Message{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "hi"},
		},
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(800),
	)
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if reply != "hello" {
		t.Errorf("reply = %q, want %q", reply, "hello")
	}

	if got.Model != "llama3" {
		t.Errorf("model = %q", got.Model)
	}
	if got.Stream {
		t.Error("stream must be disabled")
	}
	if got.Options == nil || got.Options.Temperature != 0.2 || got.Options.NumPredict != 800 {
		t.Errorf("options = %+v", got.Options)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestChatMapsModelRoleToAssistant(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"message": {"role": "assistant", "content": "ok"}, "done": true}`)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	if _, err := p.Chat(context.Background(), []llm.Message{{Role: "model", Content: "prior"}}); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if got.Messages[0].Role != "assistant" {
		t.Errorf("role = %q, want assistant", got.Messages[0].Role)
	}
}

func TestChatUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "missing")
	if _, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}
