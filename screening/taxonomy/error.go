package taxonomy

import (
	"net/http"

	"github.com/hireloop/screenline/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("TAXONOMY")

var (
	CodeFetchFailed = ErrRegistry.Register("FETCH_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to load skill taxonomy")
)

func ErrFetchFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeFetchFailed, cause)
}
