package resume

import (
	"net/http"

	"github.com/hireloop/screenline/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

// Error codes - Ingest & Extraction
var (
	CodeResumeNotFound     = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found")
	CodeFileTooLarge       = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "Uploaded file exceeds the size limit")
	CodeUnsupportedFormat  = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Unsupported file format, upload a PDF, DOCX or TXT file")
	CodeInsufficientText   = ErrRegistry.Register("INSUFFICIENT_TEXT", errx.TypeValidation, http.StatusUnprocessableEntity, "No extractable text found, re-upload a text-based version of the document")
	CodeToolUnavailable    = ErrRegistry.Register("TOOL_UNAVAILABLE", errx.TypeUnavailable, http.StatusServiceUnavailable, "OCR tooling is unavailable, try again later")
	CodeToolTimeout        = ErrRegistry.Register("TOOL_TIMEOUT", errx.TypeTimeout, http.StatusGatewayTimeout, "Document processing timed out")
	CodeStorageDownload    = ErrRegistry.Register("STORAGE_DOWNLOAD_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to download resume from storage")
	CodeStorageUpload      = ErrRegistry.Register("STORAGE_UPLOAD_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store uploaded resume")
	CodePersistFailed      = ErrRegistry.Register("PERSIST_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to save resume record")
	CodeQueueEnqueueFailed = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue re-parse job")
	CodeQueueStatsFailed   = ErrRegistry.Register("QUEUE_STATS_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to read queue statistics")
)

// Helper functions
func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrUnsupportedFormat() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat)
}

func ErrInsufficientText() *errx.Error {
	return ErrRegistry.New(CodeInsufficientText)
}

func ErrToolUnavailable() *errx.Error {
	return ErrRegistry.New(CodeToolUnavailable)
}

func ErrToolTimeout() *errx.Error {
	return ErrRegistry.New(CodeToolTimeout)
}

func ErrStorageDownload(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStorageDownload, cause)
}

func ErrStorageUpload(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStorageUpload, cause)
}

func ErrPersistFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodePersistFailed, cause)
}

func ErrQueueEnqueueFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeQueueEnqueueFailed, cause)
}

func ErrQueueStatsFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeQueueStatsFailed, cause)
}
