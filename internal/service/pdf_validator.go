package service

import (
	"fmt"

	"learning-log/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFValidator checks uploads for structural PDF validity.
type PDFValidator struct {
	conf *model.Configuration
}

// NewPDFValidator creates a validator using relaxed validation.
func NewPDFValidator() *PDFValidator {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFValidator{conf: conf}
}

// Validate returns an error wrapping domain.ErrInvalidFile when path is not a valid PDF.
func (v *PDFValidator) Validate(path string) error {
	if err := api.ValidateFile(path, v.conf); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidFile, err)
	}
	return nil
}
