// Package ai implements the completion-API client used by the chat
// assistant. The API is treated as a black box: one call in, one text
// answer out.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pocketfin/pocketfin/pkg/config"
)

const completionsPath = "/v1/chat/completions"

// Client calls a chat-completions style API over HTTP.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Choices []struct {
		Index   int               `json:"index"`
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

// New builds a client from config. The HTTP timeout bounds every call; a
// hung provider fails the request instead of hanging it forever.
func New(cfg *config.AI) (*Client, error) {
	if cfg.ApiKey == "" {
		return nil, errors.New("AI_API_KEY is not set")
	}
	return &Client{
		apiKey:  cfg.ApiKey,
		baseURL: cfg.ApiUrl,
		model:   cfg.Model,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
	}, nil
}

// Complete sends the system context and the user question, returning the
// first text answer.
func (c *Client) Complete(
	ctx context.Context,
	systemContext, question string,
) (string, error) {
	payload := completionRequest{
		Model: c.model,
		Messages: []completionMessage{
			{Role: "system", Content: systemContext},
			{Role: "user", Content: question},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+completionsPath, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion API status %d", resp.StatusCode)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	answer := out.firstText()
	if answer == "" {
		return "", errors.New("completion API returned no answer")
	}
	return answer, nil
}

func (r *completionResponse) firstText() string {
	for _, choice := range r.Choices {
		if choice.Message.Content != "" {
			return choice.Message.Content
		}
	}
	return ""
}
