package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joseph-ayodele/invoice-reconciler/internal/llm"
)

func chatReply(content string) []byte {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return b
}

func TestParseDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(chatReply("```json\n" + `{
			"vendor_name": "Acme Corp",
			"customer_name": "Globex Inc",
			"po_number": "PO-1001",
			"invoice_number": "INV-2002",
			"total_amount": "$50.00",
			"items": [{"description": "Widget A", "quantity": 10, "unit_price": 5.0, "total": 50}]
		}` + "\n```"))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	doc, raw, err := c.ParseDocument(context.Background(), llm.ParseRequest{
		Text: "INVOICE ...", Kind: llm.KindInvoice, FilenameHint: "invoice.pdf",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.VendorName != "Acme Corp" || len(doc.Items) != 1 {
		t.Errorf("doc = %+v", doc)
	}
	if len(raw) == 0 {
		t.Error("raw content should be returned for auditing")
	}
}

func TestParseDocumentSchemaRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(chatReply(`{"vendor_name": "Acme"}`)) // missing required fields
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	if _, _, err := c.ParseDocument(context.Background(), llm.ParseRequest{Text: "x", Kind: llm.KindInvoice}); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestParseDocumentHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	if _, _, err := c.ParseDocument(context.Background(), llm.ParseRequest{Text: "x", Kind: llm.KindPurchaseOrder}); err == nil {
		t.Fatal("expected http error")
	}
}
