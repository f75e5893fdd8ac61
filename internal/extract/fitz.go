package extract

import (
	"github.com/hireloop/screenline/internal/pdf"
)

// fitzTextReader adapts the in-process PDF renderer to PDFTextReader.
type fitzTextReader struct{}

func (fitzTextReader) ExtractText(pdfData []byte, maxChars int) (string, error) {
	return pdf.ExtractText(pdfData, maxChars)
}

// fitzRasterizer adapts the in-process PDF renderer to Rasterizer.
type fitzRasterizer struct{}

func (fitzRasterizer) RenderPages(pdfData []byte, maxPages int) ([][]byte, error) {
	return pdf.RenderPages(pdfData, maxPages)
}
