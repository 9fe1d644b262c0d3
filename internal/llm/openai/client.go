package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-reconciler/internal/llm"
	"github.com/joseph-ayodele/invoice-reconciler/internal/recon"
)

// ParseDocument implements llm.DocumentParser over chat/completions
// with a JSON-object response format. The reply is fence-stripped,
// schema-validated, and decoded; coercion of the numeric noise is left
// to the reconciliation engine.
func (c *Client) ParseDocument(ctx context.Context, req llm.ParseRequest) (recon.RawDocument, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.parse.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"kind", req.Kind,
		"text_len", len(req.Text),
		"filename", req.FilenameHint,
	)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "user", "content": llm.BuildUserPrompt(req)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("llm.parse.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return recon.RawDocument{}, nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.parse.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return recon.RawDocument{}, raw, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.parse.no_choices", "req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds())
		return recon.RawDocument{}, raw, fmt.Errorf("no choices in openai response")
	}

	content := []byte(llm.StripCodeFences(cc.Choices[0].Message.Content))

	if err := llm.ValidateJSONAgainstSchema(llm.BuildDocumentJSONSchema(), content); err != nil {
		c.log.Error("llm.parse.schema_validation_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return recon.RawDocument{}, content, fmt.Errorf("schema validation failed: %w", err)
	}

	doc, err := llm.DecodeDocument(content)
	if err != nil {
		c.log.Error("llm.parse.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return recon.RawDocument{}, content, err
	}

	c.log.Info("llm.parse.ok",
		"req_id", rid,
		"kind", req.Kind,
		"vendor", doc.VendorName,
		"items", len(doc.Items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return doc, content, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.log.Warn("llm.parse.body_close_error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, raw)
	}
	return raw, nil
}
