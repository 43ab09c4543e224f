package providers

import (
	"context"
	"errors"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

// ErrTemporary marks failures worth retrying.
var ErrTemporary = errors.New("temporary provider failure")

// Provider acquires browsing sessions able to reach the airline site.
type Provider interface {
	Name() string
	Acquire(ctx context.Context, params models.SearchParams) (Session, error)
}

// Session runs searches against one stateful browsing session. Searches on
// a session are sequential.
type Session interface {
	Search(ctx context.Context, mode models.SearchMode) ([]models.RawObservation, error)
	Close() error
}

type ProviderError struct {
	Provider string
	Mode     models.SearchMode
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Mode == "" {
		return e.Provider + ": " + e.Err.Error()
	}
	return e.Provider + " (" + string(e.Mode) + "): " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, mode models.SearchMode, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Mode:     mode,
		Err:      err,
	}
}

func IsTemporary(err error) bool {
	return errors.Is(err, ErrTemporary)
}
