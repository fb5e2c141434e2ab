package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func newLLMTestServer(t *testing.T, reply string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Expected Bearer test-token, got %s", r.Header.Get("Authorization"))
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("Expected test-model, got %s", req.Model)
		}

		resp := ChatResponse{
			Choices: []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			}{
				{
					Message: struct {
						Content string `json:"content"`
					}{Content: reply},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateSummary(t *testing.T) {
	server := newLLMTestServer(t, "A short test summary.")
	defer server.Close()

	os.Setenv("LLM_BASE_URL", server.URL)
	os.Setenv("LLM_TOKEN", "test-token")
	os.Setenv("LLM_MODEL", "test-model")

	// 重置单例以便重新加载配置
	llmService = nil
	s := GetLLMService()

	summary, err := s.GenerateSummary("Test title", "Test content")
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if summary != "A short test summary." {
		t.Errorf("Expected summary, got %s", summary)
	}
}

func TestGenerateDraftUnsuitable(t *testing.T) {
	server := newLLMTestServer(t, ContentUnsuitable)
	defer server.Close()

	os.Setenv("LLM_BASE_URL", server.URL)
	os.Setenv("LLM_TOKEN", "test-token")
	os.Setenv("LLM_MODEL", "test-model")

	llmService = nil
	s := GetLLMService()

	draft, err := s.GenerateDraft("Bad topic", "outline")
	if err != nil {
		t.Fatalf("GenerateDraft failed: %v", err)
	}
	if draft != ContentUnsuitable {
		t.Errorf("Expected CONTENT_UNSUITABLE, got %s", draft)
	}
}

func TestLLMNotConfigured(t *testing.T) {
	os.Unsetenv("LLM_BASE_URL")
	llmService = nil
	s := GetLLMService()

	if s.Enabled() {
		t.Fatal("expected service disabled without LLM_BASE_URL")
	}
	if _, err := s.GenerateSummary("t", "c"); err == nil {
		t.Error("expected error when not configured")
	}
}
