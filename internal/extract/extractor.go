package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"code.sajari.com/docconv"

	"github.com/hireloop/screenline/pkg/logx"
)

// Method records which extraction phase produced the text.
type Method string

const (
	MethodTxt       Method = "txt"
	MethodDocx      Method = "docx"
	MethodPDFNative Method = "pdf-native"
	MethodPDFOCR    Method = "pdf-ocr"
)

// Sentinel errors forming the extraction failure taxonomy. Callers match
// them with errors.Is and translate them into user-facing responses.
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrInsufficientText  = errors.New("insufficient extractable text")
	ErrToolUnavailable   = errors.New("ocr tooling unavailable")
	ErrToolTimeout       = errors.New("external tool timed out")
)

// Result is the extractor output: plain text plus the phase that produced it.
type Result struct {
	Text   string
	Method Method
}

// PDFTextReader reads the native text layer of a PDF.
type PDFTextReader interface {
	ExtractText(pdfData []byte, maxChars int) (string, error)
}

// Rasterizer renders PDF pages to images for OCR.
type Rasterizer interface {
	RenderPages(pdfData []byte, maxPages int) ([][]byte, error)
}

// OCRBackend recognizes text in a single page image. Implementations must
// honor the context deadline and terminate any external process on expiry.
type OCRBackend interface {
	Available() error
	Recognize(ctx context.Context, workDir string, image []byte) (string, error)
}

// Options bound the cost of a single extraction attempt.
type Options struct {
	// MinTextLength is the floor below which extracted text is rejected.
	MinTextLength int

	// NativeSufficiencyLength is the native-PDF text length at which OCR
	// is skipped entirely.
	NativeSufficiencyLength int

	// MaxNativeChars caps native text-layer reads on pathological PDFs.
	MaxNativeChars int

	// MaxOCRPages caps how many pages are rasterized and recognized.
	MaxOCRPages int

	// OCRBudget is the total wall-clock budget for the OCR phase,
	// pro-rated across pages.
	OCRBudget time.Duration
}

// DefaultOptions returns the production thresholds.
func DefaultOptions() Options {
	return Options{
		MinTextLength:           40,
		NativeSufficiencyLength: 400,
		MaxNativeChars:          2_000_000,
		MaxOCRPages:             18,
		OCRBudget:               120 * time.Second,
	}
}

// Extractor turns raw document bytes into plain text, choosing the cheapest
// phase that yields enough of it.
type Extractor struct {
	pdfText PDFTextReader
	raster  Rasterizer
	ocr     OCRBackend
	opts    Options
}

// New creates an extractor from explicit capabilities, mainly for tests.
func New(pdfText PDFTextReader, raster Rasterizer, ocr OCRBackend, opts Options) *Extractor {
	return &Extractor{
		pdfText: pdfText,
		raster:  raster,
		ocr:     ocr,
		opts:    opts,
	}
}

// NewDefault creates an extractor backed by the in-process PDF renderer and
// the given OCR backend. A nil backend disables the OCR fallback.
func NewDefault(ocr OCRBackend) *Extractor {
	return New(fitzTextReader{}, fitzRasterizer{}, ocr, DefaultOptions())
}

// Extract converts document bytes into plain text. The file type is taken
// from the extension, falling back to magic-byte sniffing when the extension
// is missing or unknown.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (*Result, error) {
	switch detectType(filename, data) {
	case "txt":
		return e.extractTxt(data)
	case "docx":
		return e.extractDocx(data)
	case "pdf":
		return e.extractPDF(ctx, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func (e *Extractor) extractTxt(data []byte) (*Result, error) {
	text := NormalizeText(string(data))
	if len(text) < e.opts.MinTextLength {
		return nil, fmt.Errorf("%w: txt yielded %d chars", ErrInsufficientText, len(text))
	}
	return &Result{Text: text, Method: MethodTxt}, nil
}

func (e *Extractor) extractDocx(data []byte) (*Result, error) {
	res, err := docconv.Convert(bytes.NewReader(data), "application/vnd.openxmlformats-officedocument.wordprocessingml.document", true)
	if err != nil {
		return nil, fmt.Errorf("%w: docx conversion failed: %v", ErrUnsupportedFormat, err)
	}

	text := NormalizeText(res.Body)
	if len(text) < e.opts.MinTextLength {
		return nil, fmt.Errorf("%w: docx yielded %d chars", ErrInsufficientText, len(text))
	}
	return &Result{Text: text, Method: MethodDocx}, nil
}

func (e *Extractor) extractPDF(ctx context.Context, data []byte) (*Result, error) {
	native, nativeErr := e.pdfText.ExtractText(data, e.opts.MaxNativeChars)
	if nativeErr == nil {
		text := NormalizeText(native)
		if len(text) >= e.opts.NativeSufficiencyLength {
			return &Result{Text: text, Method: MethodPDFNative}, nil
		}
	} else {
		logx.Debugf("native PDF text extraction failed, trying OCR: %v", nativeErr)
	}

	return e.extractPDFViaOCR(ctx, data)
}

func (e *Extractor) extractPDFViaOCR(ctx context.Context, data []byte) (*Result, error) {
	if e.ocr == nil {
		return nil, fmt.Errorf("%w: no OCR backend configured", ErrToolUnavailable)
	}
	if err := e.ocr.Available(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToolUnavailable, err)
	}

	// All on-disk artifacts live in a per-attempt directory that is removed
	// on every exit path.
	workDir, err := os.MkdirTemp("", "resume-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("create OCR work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	images, err := e.raster.RenderPages(data, e.opts.MaxOCRPages)
	if err != nil {
		return nil, fmt.Errorf("%w: rasterization failed: %v", ErrInsufficientText, err)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: PDF has no pages", ErrInsufficientText)
	}

	budgetCtx, cancel := context.WithTimeout(ctx, e.opts.OCRBudget)
	defer cancel()

	perPage := e.opts.OCRBudget / time.Duration(len(images))

	var buf strings.Builder
	var lastErr error
	for i, img := range images {
		pageCtx, pageCancel := context.WithTimeout(budgetCtx, perPage)
		text, err := e.ocr.Recognize(pageCtx, workDir, img)
		pageCancel()

		if err != nil {
			if ctx.Err() != nil {
				// Caller cancellation wins over our own deadlines.
				return nil, ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: OCR of page %d exceeded budget", ErrToolTimeout, i+1)
			}
			lastErr = fmt.Errorf("page %d: %w", i+1, err)
			logx.Warnf("OCR failed on page %d: %v", i+1, err)
			continue
		}

		if text != "" {
			buf.WriteString(text)
			buf.WriteString("\n\n")
		}
	}

	text := NormalizeText(buf.String())
	if len(text) < e.opts.MinTextLength {
		if lastErr != nil {
			return nil, fmt.Errorf("%w: OCR yielded %d chars (last error: %v)", ErrInsufficientText, len(text), lastErr)
		}
		return nil, fmt.Errorf("%w: OCR yielded %d chars", ErrInsufficientText, len(text))
	}

	return &Result{Text: text, Method: MethodPDFOCR}, nil
}

// detectType resolves the document type from the filename extension, falling
// back to magic bytes when the extension is absent or unknown.
func detectType(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return "txt"
	case ".docx":
		return "docx"
	case ".pdf":
		return "pdf"
	}

	if bytes.HasPrefix(data, []byte("%PDF")) {
		return "pdf"
	}
	return ""
}
