package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"
)

// Completion is the raw text a generative model returned for one prompt,
// plus the provider's token count when it reports one.
type Completion struct {
	Text   string
	Tokens int
}

// TextEngine accepts a prompt and returns a completion.
type TextEngine interface {
	Name() string
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// VisionEngine accepts image bytes plus a prompt and returns a completion.
type VisionEngine interface {
	Name() string
	CompleteImage(ctx context.Context, image []byte, prompt string) (Completion, error)
}

const retryDelay = 300 * time.Millisecond

// IsTransient reports whether err is a retriable provider failure
// (rate limiting or a 5xx) as opposed to a permanent one.
func IsTransient(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500
	}
	return false
}

// Complete calls the engine, retrying exactly once on a transient failure.
func Complete(ctx context.Context, eng TextEngine, prompt string) (Completion, error) {
	out, err := eng.Complete(ctx, prompt)
	if err == nil || !IsTransient(err) {
		return out, err
	}
	if werr := wait(ctx); werr != nil {
		return Completion{}, werr
	}
	return eng.Complete(ctx, prompt)
}

// CompleteImage is Complete for vision engines.
func CompleteImage(ctx context.Context, eng VisionEngine, image []byte, prompt string) (Completion, error) {
	out, err := eng.CompleteImage(ctx, image, prompt)
	if err == nil || !IsTransient(err) {
		return out, err
	}
	if werr := wait(ctx); werr != nil {
		return Completion{}, werr
	}
	return eng.CompleteImage(ctx, image, prompt)
}

func wait(ctx context.Context) error {
	t := time.NewTimer(retryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
