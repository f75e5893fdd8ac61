package extract

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePDFText struct {
	text string
	err  error
}

func (f fakePDFText) ExtractText(pdfData []byte, maxChars int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if maxChars > 0 && len(f.text) > maxChars {
		return f.text[:maxChars], nil
	}
	return f.text, nil
}

type fakeRasterizer struct {
	pages int
	err   error
}

func (f fakeRasterizer) RenderPages(pdfData []byte, maxPages int) ([][]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	n := f.pages
	if maxPages > 0 && n > maxPages {
		n = maxPages
	}
	images := make([][]byte, n)
	for i := range images {
		images[i] = []byte{0x89, 'P', 'N', 'G'}
	}
	return images, nil
}

type fakeOCR struct {
	pageText     string
	availableErr error
	recognizeErr error
	workDirs     []string
}

func (f *fakeOCR) Available() error {
	return f.availableErr
}

func (f *fakeOCR) Recognize(ctx context.Context, workDir string, image []byte) (string, error) {
	f.workDirs = append(f.workDirs, workDir)
	if f.recognizeErr != nil {
		return "", f.recognizeErr
	}
	return f.pageText, nil
}

func newTestExtractor(pdfText PDFTextReader, raster Rasterizer, ocr OCRBackend) *Extractor {
	return New(pdfText, raster, ocr, DefaultOptions())
}

func TestExtractTxt(t *testing.T) {
	e := newTestExtractor(fakePDFText{}, fakeRasterizer{}, nil)

	t.Run("accepts plain text above the floor", func(t *testing.T) {
		text := "Senior software engineer with ten years of backend experience."
		res, err := e.Extract(context.Background(), "resume.txt", []byte(text))
		require.NoError(t, err)
		assert.Equal(t, MethodTxt, res.Method)
		assert.Equal(t, text, res.Text)
	})

	t.Run("rejects text below the floor", func(t *testing.T) {
		_, err := e.Extract(context.Background(), "resume.txt", []byte("too short"))
		assert.ErrorIs(t, err, ErrInsufficientText)
	})

	t.Run("normalizes line endings and control chars", func(t *testing.T) {
		raw := "line one with some resume content here\r\nline two with more content\x00\x01 trailing"
		res, err := e.Extract(context.Background(), "resume.txt", []byte(raw))
		require.NoError(t, err)
		assert.NotContains(t, res.Text, "\r")
		assert.NotContains(t, res.Text, "\x00")
	})
}

func TestExtractUnsupportedFormat(t *testing.T) {
	e := newTestExtractor(fakePDFText{}, fakeRasterizer{}, nil)

	_, err := e.Extract(context.Background(), "resume.xlsx", []byte("whatever content this holds"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractMagicByteSniffing(t *testing.T) {
	native := strings.Repeat("native pdf text layer content ", 20)
	e := newTestExtractor(fakePDFText{text: native}, fakeRasterizer{}, nil)

	// No extension at all, but the payload carries the PDF magic.
	res, err := e.Extract(context.Background(), "upload", []byte("%PDF-1.7 rest of file"))
	require.NoError(t, err)
	assert.Equal(t, MethodPDFNative, res.Method)
}

func TestExtractPDFNative(t *testing.T) {
	native := strings.Repeat("experienced engineer shipping systems ", 20)
	e := newTestExtractor(fakePDFText{text: native}, fakeRasterizer{}, nil)

	res, err := e.Extract(context.Background(), "resume.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, MethodPDFNative, res.Method)
	assert.GreaterOrEqual(t, len(res.Text), 400)
}

func TestExtractPDFOCRFallback(t *testing.T) {
	pageText := "Led platform migrations and improved deployment reliability across teams."
	ocr := &fakeOCR{pageText: pageText}

	// Native text is below the sufficiency threshold, so OCR kicks in.
	e := newTestExtractor(fakePDFText{text: "sparse"}, fakeRasterizer{pages: 3}, ocr)

	res, err := e.Extract(context.Background(), "scan.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, MethodPDFOCR, res.Method)
	assert.Contains(t, res.Text, "platform migrations")
	require.Len(t, ocr.workDirs, 3)

	// The scoped work dir must be gone after extraction.
	_, statErr := os.Stat(ocr.workDirs[0])
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractPDFOCRUnavailable(t *testing.T) {
	t.Run("no backend configured", func(t *testing.T) {
		e := newTestExtractor(fakePDFText{text: "sparse"}, fakeRasterizer{pages: 1}, nil)
		_, err := e.Extract(context.Background(), "scan.pdf", []byte("%PDF"))
		assert.ErrorIs(t, err, ErrToolUnavailable)
	})

	t.Run("backend probe fails", func(t *testing.T) {
		ocr := &fakeOCR{availableErr: errors.New("tesseract not found")}
		e := newTestExtractor(fakePDFText{text: "sparse"}, fakeRasterizer{pages: 1}, ocr)
		_, err := e.Extract(context.Background(), "scan.pdf", []byte("%PDF"))
		assert.ErrorIs(t, err, ErrToolUnavailable)
	})
}

func TestExtractPDFOCRTimeout(t *testing.T) {
	ocr := &fakeOCR{recognizeErr: context.DeadlineExceeded}
	e := newTestExtractor(fakePDFText{text: "sparse"}, fakeRasterizer{pages: 2}, ocr)

	_, err := e.Extract(context.Background(), "scan.pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, ErrToolTimeout)
}

func TestExtractPDFOCRInsufficient(t *testing.T) {
	ocr := &fakeOCR{pageText: ""}
	e := newTestExtractor(fakePDFText{err: errors.New("no text layer")}, fakeRasterizer{pages: 2}, ocr)

	_, err := e.Extract(context.Background(), "scan.pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, ErrInsufficientText)
}

func TestExtractPDFOCRPageCap(t *testing.T) {
	ocr := &fakeOCR{pageText: "Recognized text for one rasterized resume page with enough length."}
	e := newTestExtractor(fakePDFText{text: "sparse"}, fakeRasterizer{pages: 40}, ocr)

	res, err := e.Extract(context.Background(), "scan.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, MethodPDFOCR, res.Method)
	assert.Len(t, ocr.workDirs, DefaultOptions().MaxOCRPages)
}

func TestExtractCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ocr := &fakeOCR{recognizeErr: context.Canceled}
	e := newTestExtractor(fakePDFText{text: "sparse"}, fakeRasterizer{pages: 1}, ocr)

	_, err := e.Extract(ctx, "scan.pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses blank runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"trims surrounding space", "  padded  \n", "padded"},
		{"strips invalid utf8", "ok\xff\xfe text", "ok text"},
		{"keeps tabs", "col1\tcol2", "col1\tcol2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}
