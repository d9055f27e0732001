package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
)

const (
	completionTemperature = 0.7
	completionMaxTokens   = 10
)

// Transport issues one completion request and returns the raw message
// content. Implementations report any non-success response as an error.
type Transport interface {
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatClient talks to a chat-completions style endpoint over HTTP.
type ChatClient struct {
	endpoint string
	model    string
	timeout  time.Duration
	http     *fasthttp.Client
}

func NewChatClient(baseURL, model string, timeout time.Duration) *ChatClient {
	return &ChatClient{
		endpoint: baseURL + "/chat/completions",
		model:    model,
		timeout:  timeout,
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
	}
}

// Complete - sends the prompt as a single user message and returns the
// content of the first choice. The call blocks for at most the configured
// timeout; there is no mid-flight cancellation once the request is sent.
func (that *ChatClient) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:       that.model,
		Messages:    []completionMessage{{Role: "user", Content: prompt}},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI(that.endpoint)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.SetBody(payload)

	timeout := that.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if err = that.http.DoTimeout(req, resp, timeout); err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return "", fmt.Errorf("completion request failed: status %d", status)
	}

	// a malformed body is a parse failure, not a transport failure: the
	// retry loop treats the two differently
	var parsed completionResponse
	if err = json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed completion response: %v", apperror.ErrParse, err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: completion response has no choices", apperror.ErrParse)
	}

	return parsed.Choices[0].Message.Content, nil
}
