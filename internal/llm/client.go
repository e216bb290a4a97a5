package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// LLMClient define la interfaz para generar respuestas con un LLM.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateChat(ctx context.Context, system string, messages []ChatMessage) (string, error)
}

// ChatMessage es un turno de conversación en formato chat completions.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type logger interface {
	Printf(format string, v ...interface{})
}

// HTTPClient habla con una API OpenAI-compatible (OpenRouter incluido).
// Si el modelo primario falla, reintenta una vez con el modelo de fallback.
type HTTPClient struct {
	baseURL       string
	apiKey        string
	model         string
	fallbackModel string
	referer       string
	appTitle      string
	client        *http.Client
	logger        logger
}

// NewHTTPClient construye un cliente HTTP apuntando a la API de chat completions.
func NewHTTPClient(baseURL, apiKey, model, fallbackModel string, log any) *HTTPClient {
	l, _ := log.(logger)
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &HTTPClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		model:         model,
		fallbackModel: fallbackModel,
		client:        &http.Client{Timeout: 60 * time.Second},
		logger:        l,
	}
}

// WithAttribution agrega los headers de atribución que pide OpenRouter.
func (c *HTTPClient) WithAttribution(referer, appTitle string) *HTTPClient {
	c.referer = referer
	c.appTitle = appTitle
	return c
}

// Generate envía un prompt único como mensaje de usuario.
func (c *HTTPClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.GenerateChat(ctx, "", []ChatMessage{{Role: "user", Content: prompt}})
}

// GenerateChat envía un system prompt más el historial de la conversación.
func (c *HTTPClient) GenerateChat(ctx context.Context, system string, messages []ChatMessage) (string, error) {
	reply, err := c.complete(ctx, c.model, system, messages)
	if err == nil {
		return reply, nil
	}
	if c.fallbackModel == "" || c.fallbackModel == c.model {
		return "", err
	}
	if c.logger != nil {
		c.logger.Printf("llm primary model failed, retrying with %s: %v", c.fallbackModel, err)
	}
	return c.complete(ctx, c.fallbackModel, system, messages)
}

func (c *HTTPClient) complete(ctx context.Context, model, system string, messages []ChatMessage) (string, error) {
	all := make([]ChatMessage, 0, len(messages)+1)
	if system != "" {
		all = append(all, ChatMessage{Role: "system", Content: system})
	}
	all = append(all, messages...)

	reqBody := chatRequest{
		Model:       model,
		Messages:    all,
		Temperature: 0.7,
		MaxTokens:   600,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if c.logger != nil {
			c.logger.Printf("llm error status %d: %s", resp.StatusCode, string(respBody))
		}
		return "", fmt.Errorf("llm http error: status=%d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if cr.Error != nil {
		return "", fmt.Errorf("llm api error: %s", cr.Error.Message)
	}

	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("llm empty response")
	}

	return cr.Choices[0].Message.Content, nil
}

// CreateEmbedding devuelve el embedding del texto para búsqueda por similitud.
func (c *HTTPClient) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	reqBody := embeddingRequest{
		Model: "text-embedding-3-small",
		Input: text,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("embedding http error: status=%d", resp.StatusCode)
	}

	var er embeddingResponse
	if err := json.Unmarshal(respBody, &er); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(er.Data) == 0 {
		return nil, fmt.Errorf("embedding empty response")
	}
	return er.Data[0].Embedding, nil
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.appTitle != "" {
		req.Header.Set("X-Title", c.appTitle)
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}
