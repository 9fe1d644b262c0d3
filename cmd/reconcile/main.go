package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/invoice-reconciler/constants"
	"github.com/joseph-ayodele/invoice-reconciler/internal/common"
	"github.com/joseph-ayodele/invoice-reconciler/internal/extract"
	"github.com/joseph-ayodele/invoice-reconciler/internal/llm/openai"
	"github.com/joseph-ayodele/invoice-reconciler/internal/ocr"
	"github.com/joseph-ayodele/invoice-reconciler/internal/pipeline"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 3 {
		logger.Error("usage", "cmd", "reconcile <invoice-file> <po-file>")
		os.Exit(2)
	}
	invoicePath, poPath := os.Args[1], os.Args[2]
	for _, p := range []string{invoicePath, poPath} {
		if !constants.IsAllowedExt(filepath.Ext(p)) {
			logger.Error("unsupported file type (want pdf, jpg, jpeg or png)", "file", p)
			os.Exit(2)
		}
	}

	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if cfg.LLM.APIKey == "" {
		logger.Error("OPENAI_API_KEY required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ocrx := ocr.NewExtractor(ocr.Config{
		Pdftotext:     cfg.OCR.Pdftotext,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
	}, logger)
	parser := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	matcher := pipeline.NewMatcher(extract.NewOCRAdapter(ocrx, logger), parser, nil, logger)

	invoice, err := readUpload(invoicePath)
	if err != nil {
		logger.Error("read invoice", "file", invoicePath, "error", err)
		os.Exit(1)
	}
	po, err := readUpload(poPath)
	if err != nil {
		logger.Error("read purchase order", "file", poPath, "error", err)
		os.Exit(1)
	}

	report, err := matcher.Match(ctx, invoice, po)
	if err != nil {
		logger.Error("reconciliation failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Error("encode report", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if report.Status != constants.StatusApproved {
		os.Exit(3)
	}
}

func readUpload(path string) (pipeline.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Upload{}, err
	}
	return pipeline.Upload{Filename: filepath.Base(path), Data: data}, nil
}
