package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/liminalpurple/sticker-gallery/internal/api"
)

// Listing fetch errors distinguished for user messaging.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Lister is the backend listing call the fetcher depends on.
type Lister interface {
	ListStickerSets(ctx context.Context, credential string) (json.RawMessage, error)
}

// Fetch retrieves the sticker-set listing and normalizes it into an ordered
// record sequence. credential may be empty in public mode.
func Fetch(ctx context.Context, lister Lister, credential string) ([]Record, error) {
	body, err := lister.ListStickerSets(ctx, credential)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			switch statusErr.Code {
			case http.StatusUnauthorized:
				return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
			case http.StatusForbidden:
				return nil, fmt.Errorf("%w: %v", ErrForbidden, err)
			}
		}
		return nil, fmt.Errorf("failed to fetch sticker sets: %w", err)
	}

	return Normalize(body), nil
}

// Normalize accepts either a paginated envelope with a "content" sequence or
// a bare sequence. Only the first page of an envelope is consumed. Any other
// shape degrades to an empty gallery rather than an error, so minor backend
// shape drift never crashes the view.
func Normalize(body []byte) []Record {
	var envelope struct {
		Content []Record `json:"content"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Content != nil {
		return envelope.Content
	}

	var bare []Record
	if err := json.Unmarshal(body, &bare); err == nil && bare != nil {
		return bare
	}

	return []Record{}
}
