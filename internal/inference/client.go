// Package inference is the fallback extraction path: when the
// heuristic workbook extractor cannot produce records, the file is
// described to a generative text-inference service which returns a
// structured JSON extraction. The pipeline around the client handles
// retries, quota degradation and response repair.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
)

// Client issues a single inference request. Implementations classify
// their failures through *domain.InferenceError so the pipeline can
// decide between retry, degradation and abort.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GeminiClient talks to the Gemini generateContent endpoint over plain
// HTTP. Constructed explicitly and injected into the pipeline; there
// is deliberately no package-level client.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &GeminiClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &domain.InferenceError{Kind: domain.InferenceTerminal, Err: err}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &domain.InferenceError{Kind: domain.InferenceTerminal, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network failures and timeouts are worth another attempt.
		return "", &domain.InferenceError{Kind: domain.InferenceTransient, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.InferenceError{Kind: domain.InferenceTransient, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &domain.InferenceError{
			Kind: domain.InferenceQuota,
			Err:  fmt.Errorf("cuota excedida (429): %s", truncate(body, 200)),
		}
	case resp.StatusCode >= 500:
		return "", &domain.InferenceError{
			Kind: domain.InferenceTransient,
			Err:  fmt.Errorf("estado %d: %s", resp.StatusCode, truncate(body, 200)),
		}
	case resp.StatusCode != http.StatusOK:
		// 400/401/403: the request itself is wrong, retrying cannot help.
		return "", &domain.InferenceError{
			Kind: domain.InferenceTerminal,
			Err:  fmt.Errorf("estado %d: %s", resp.StatusCode, truncate(body, 200)),
		}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &domain.InferenceError{Kind: domain.InferenceTransient, Err: err}
	}
	if parsed.Error != nil {
		return "", &domain.InferenceError{
			Kind: domain.InferenceTerminal,
			Err:  fmt.Errorf("error de la API: %s", parsed.Error.Message),
		}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &domain.InferenceError{
			Kind: domain.InferenceTransient,
			Err:  errors.New("la respuesta no contiene candidatos"),
		}
	}

	var out bytes.Buffer
	for _, part := range parsed.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	return out.String(), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
