package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

type scriptedEngine struct {
	errs  []error
	calls int
}

func (s *scriptedEngine) Name() string { return "scripted" }

func (s *scriptedEngine) Complete(ctx context.Context, prompt string) (Completion, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return Completion{}, s.errs[idx]
	}
	return Completion{Text: "ok", Tokens: 1}, nil
}

func (s *scriptedEngine) CompleteImage(ctx context.Context, image []byte, prompt string) (Completion, error) {
	return s.Complete(ctx, prompt)
}

func transientErr() error {
	return &googleapi.Error{Code: http.StatusServiceUnavailable, Message: "backend error"}
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&googleapi.Error{Code: http.StatusTooManyRequests}))
	assert.True(t, IsTransient(&googleapi.Error{Code: http.StatusInternalServerError}))
	assert.True(t, IsTransient(&googleapi.Error{Code: http.StatusServiceUnavailable}))
	assert.False(t, IsTransient(&googleapi.Error{Code: http.StatusBadRequest}))
	assert.False(t, IsTransient(&googleapi.Error{Code: http.StatusUnauthorized}))
	assert.False(t, IsTransient(errors.New("plain failure")))
	assert.False(t, IsTransient(nil))
}

func TestComplete_RetriesOnceOnTransient(t *testing.T) {
	eng := &scriptedEngine{errs: []error{transientErr(), nil}}

	out, err := Complete(context.Background(), eng, "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Text)
	assert.Equal(t, 2, eng.calls)
}

func TestComplete_NoRetryOnPermanent(t *testing.T) {
	eng := &scriptedEngine{errs: []error{errors.New("bad key")}}

	_, err := Complete(context.Background(), eng, "p")
	require.Error(t, err)
	assert.Equal(t, 1, eng.calls)
}

func TestComplete_GivesUpAfterSingleRetry(t *testing.T) {
	eng := &scriptedEngine{errs: []error{transientErr(), transientErr(), nil}}

	_, err := Complete(context.Background(), eng, "p")
	require.Error(t, err)
	assert.Equal(t, 2, eng.calls, "retry budget is exactly one")
}

func TestComplete_RespectsCancelledContext(t *testing.T) {
	eng := &scriptedEngine{errs: []error{transientErr(), nil}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Complete(ctx, eng, "p")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, eng.calls, "no retry after cancellation")
}

func TestCompleteImage_RetriesOnceOnTransient(t *testing.T) {
	eng := &scriptedEngine{errs: []error{transientErr(), nil}}

	out, err := CompleteImage(context.Background(), eng, []byte{0x01}, "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Text)
	assert.Equal(t, 2, eng.calls)
}
