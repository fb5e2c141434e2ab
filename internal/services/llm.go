package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// LLMService 调用 OpenAI 兼容接口辅助撰稿：生成草稿、摘要。
// 未配置 LLM_BASE_URL 时服务不可用，接口返回错误。
type LLMService struct {
	BaseURL string
	Token   string
	Model   string
	client  *http.Client
}

// ContentUnsuitable 模型判定内容不适合发布时返回的哨兵值
const ContentUnsuitable = "CONTENT_UNSUITABLE"

var llmService *LLMService

// GetLLMService 获取单例 LLM 服务
func GetLLMService() *LLMService {
	if llmService == nil {
		llmService = &LLMService{
			BaseURL: os.Getenv("LLM_BASE_URL"),
			Token:   os.Getenv("LLM_TOKEN"),
			Model:   os.Getenv("LLM_MODEL"),
			client:  &http.Client{Timeout: 60 * time.Second},
		}
	}
	return llmService
}

// Enabled 是否配置了 LLM 接口
func (s *LLMService) Enabled() bool {
	return s.BaseURL != ""
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chat 发送一轮对话请求，返回首个回复文本
func (s *LLMService) chat(system, user string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("llm service not configured")
	}

	reqBody := ChatRequest{
		Model: s.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	raw, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", strings.TrimSuffix(s.BaseURL, "/")+"/chat/completions", bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.Token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("llm request failed: %d %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// GenerateDraft 根据标题和提纲生成 Markdown 草稿
func (s *LLMService) GenerateDraft(title, outline string) (string, error) {
	system := "You are an editorial assistant for an online publication. " +
		"Write a well-structured article draft in Markdown. " +
		"If the requested topic is unsuitable for publication, reply with exactly CONTENT_UNSUITABLE."
	user := fmt.Sprintf("Title: %s\n\nOutline:\n%s", title, outline)
	return s.chat(system, user)
}

// GenerateSummary 为文章生成 1-2 句摘要，用于列表页和通讯
func (s *LLMService) GenerateSummary(title, content string) (string, error) {
	system := "You summarize articles in one or two sentences for a publication's listing page. " +
		"Reply with the summary only. " +
		"If the content is unsuitable for publication, reply with exactly CONTENT_UNSUITABLE."
	user := fmt.Sprintf("Title: %s\n\n%s", title, content)
	return s.chat(system, user)
}
