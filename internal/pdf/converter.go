package pdf

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
)

// ExtractText reads the native text layer page by page, concatenating pages
// with newline separators. Output is capped at maxChars to bound the cost of
// pathological documents; maxChars <= 0 means no cap.
func ExtractText(pdfData []byte, maxChars int) (string, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var buf strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to read text of page %d: %w", i, err)
		}
		buf.WriteString(text)
		buf.WriteString("\n")

		if maxChars > 0 && buf.Len() >= maxChars {
			return buf.String()[:maxChars], nil
		}
	}

	return buf.String(), nil
}

// RenderPages rasterizes PDF pages to PNG images, at most maxPages of them.
// maxPages <= 0 renders every page.
func RenderPages(pdfData []byte, maxPages int) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if maxPages > 0 && pageCount > maxPages {
		pageCount = maxPages
	}

	images := make([][]byte, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", i, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", i, err)
		}
		images = append(images, buf.Bytes())
	}

	return images, nil
}
