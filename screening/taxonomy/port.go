package taxonomy

import (
	"context"
)

// Repository loads the skill taxonomy. Every parse and ranking operation
// fetches a fresh snapshot; no cache layer sits in between.
type Repository interface {
	// ListAll returns every taxonomy entry with locale aliases merged.
	ListAll(ctx context.Context) ([]Entry, error)
}
