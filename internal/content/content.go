// Package content models the memorization corpus as an opaque paginated
// resource. The engine never interprets unit text; it only windows over it.
package content

import (
	"context"
	"errors"
)

// Unit is one content unit (a verse or line) of the corpus.
type Unit struct {
	// Ref is a stable human-readable reference, e.g. "2:255".
	Ref string `json:"ref"`

	// Page is the page the unit belongs to.
	Page int `json:"page"`

	// Ordinal is the unit's position within its page, starting at 1.
	Ordinal int `json:"ordinal"`

	// Text is the unit's full text.
	Text string `json:"text"`
}

// ErrPageEmpty is returned by providers when a page has no units. Callers
// treat this as content-unavailable, not as a transport failure.
var ErrPageEmpty = errors.New("content: page has no units")

// Provider serves ordered windows of content units by page number.
// Implementations must be idempotent and side-effect-free; the engine may
// fetch the same page repeatedly (e.g. while filling distractor windows).
type Provider interface {
	// FetchWindow returns the units of one page, in corpus order.
	// An existing page with no units yields ErrPageEmpty.
	FetchWindow(ctx context.Context, page int) ([]Unit, error)

	// PageCount reports the total size of the content space.
	PageCount() int
}
