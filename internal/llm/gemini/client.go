package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elten-metaal/drawings-extractor/internal/llm"
)

// Request/response wire shapes (minimal fields of the generateContent API).

type gmPart struct {
	Text string `json:"text"`
}

type gmContent struct {
	Role  string   `json:"role,omitempty"`
	Parts []gmPart `json:"parts"`
}

type gmRequest struct {
	Contents []gmContent `json:"contents"`
}

type gmResponse struct {
	Candidates []struct {
		Content struct {
			Parts []gmPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Generate implements llm.TextGenerator against the Gemini REST API. A blocked
// prompt and an empty candidate list are reported through GenerateResult, not
// as errors; the error value is reserved for transport/service failures.
func (c *Client) Generate(ctx context.Context, prompt string) (llm.GenerateResult, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Debug("llm.generate.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"prompt_len", len(prompt),
	)

	body := gmRequest{
		Contents: []gmContent{
			{Role: "user", Parts: []gmPart{{Text: prompt}}},
		},
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") +
		"/v1beta/models/" + url.PathEscape(c.cfg.Model) + ":generateContent" +
		"?key=" + url.QueryEscape(c.cfg.APIKey)

	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.logger.Error("llm.generate.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.GenerateResult{}, err
	}

	var resp gmResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.logger.Error("llm.generate.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.GenerateResult{}, fmt.Errorf("decode gemini response: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		c.logger.Warn("llm.generate.blocked",
			"req_id", rid, "reason", resp.PromptFeedback.BlockReason,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.GenerateResult{Blocked: true, BlockReason: resp.PromptFeedback.BlockReason}, nil
	}

	var text string
	if len(resp.Candidates) > 0 && len(resp.Candidates[0].Content.Parts) > 0 {
		text = resp.Candidates[0].Content.Parts[0].Text
	}
	c.logger.Debug("llm.generate.ok",
		"req_id", rid,
		"text_len", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return llm.GenerateResult{Text: text}, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini http error: %w", err)
	}
	defer func(rc io.ReadCloser) {
		if cerr := rc.Close(); cerr != nil {
			c.logger.Warn("gemini response body close error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
