package job

import (
	"net/http"

	"github.com/hireloop/screenline/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("JOB")

var (
	CodeJobNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeFetchFailed = ErrRegistry.Register("FETCH_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to load job")
)

func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrFetchFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeFetchFailed, cause)
}
