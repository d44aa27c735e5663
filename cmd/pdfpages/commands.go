package main

import (
	"fmt"
	"io"
	"log"

	"learning-log/internal/config"
	"learning-log/internal/domain"
	"learning-log/internal/service"
	"learning-log/pkg/logger"

	"github.com/abiiranathan/goflag"
)

type cliConfig struct {
	File     string
	Page     int
	Backend  string
	LogLevel string
}

func defaultConfig() *cliConfig {
	return &cliConfig{
		Page:     1,
		Backend:  config.PDFBackendFitz,
		LogLevel: "warn",
	}
}

func defineFlags(cfg *cliConfig, out io.Writer) *goflag.Context {
	fileFlag := goflag.Flag{
		FlagType:  goflag.FlagFilePath,
		Name:      "file",
		ShortName: "f",
		Value:     &cfg.File,
		Usage:     "The PDF file to inspect",
		Required:  true,
		Validator: nil,
	}

	ctx := goflag.NewContext()

	// global flags
	ctx.AddFlag(goflag.FlagString, "backend", "b", &cfg.Backend,
		"Text extraction backend: fitz or native", false)
	ctx.AddFlag(goflag.FlagString, "log-level", "l", &cfg.LogLevel,
		"Log level: debug, info, warn or error", false)

	ctx.AddSubCommand("count", "Print the number of pages", func() {
		if err := runCount(cfg, out); err != nil {
			log.Fatalln(err)
		}
	}).AddFlagPtr(&fileFlag)

	ctx.AddSubCommand("page", "Print the text of one page (out of range numbers are clamped)", func() {
		if err := runPage(cfg, out); err != nil {
			log.Fatalln(err)
		}
	}).AddFlagPtr(&fileFlag).
		AddFlag(goflag.FlagInt, "number", "n", &cfg.Page, "The page number to print", false)

	ctx.AddSubCommand("validate", "Check the PDF structure", func() {
		if err := runValidate(cfg, out); err != nil {
			log.Fatalln(err)
		}
	}).AddFlagPtr(&fileFlag)

	return ctx
}

func extractPages(cfg *cliConfig) ([]domain.PageText, error) {
	extractor, err := service.NewPageExtractor(cfg.Backend, logger.NewLogger(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	return extractor.ExtractPages(cfg.File)
}

func runCount(cfg *cliConfig, out io.Writer) error {
	pages, err := extractPages(cfg)
	if err != nil {
		return err
	}

	var empty, failed int
	for _, p := range pages {
		switch p.Status {
		case domain.PageStatusEmpty:
			empty++
		case domain.PageStatusFailed:
			failed++
		}
	}
	fmt.Fprintf(out, "%s: %d pages (%d without text, %d failed)\n", cfg.File, len(pages), empty, failed)
	return nil
}

func runPage(cfg *cliConfig, out io.Writer) error {
	pages, err := extractPages(cfg)
	if err != nil {
		return err
	}

	content := make([]string, len(pages))
	for i, p := range pages {
		content[i] = p.Display()
	}

	view := service.Paginate(content, cfg.Page, 1)
	if len(view.Items) == 0 {
		fmt.Fprintf(out, "%s has no pages\n", cfg.File)
		return nil
	}
	fmt.Fprintf(out, "--- page %d of %d ---\n%s\n", view.Number, view.TotalPages, view.Items[0])
	return nil
}

func runValidate(cfg *cliConfig, out io.Writer) error {
	if err := service.NewPDFValidator().Validate(cfg.File); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: ok\n", cfg.File)
	return nil
}
