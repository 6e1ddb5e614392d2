package utils

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
)

//nolint
func TestRecovery(t *testing.T) {
	var h panicHandler
	r := NewRecovery()

	ctx := context.Background()

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { h.Deliver(ctx, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Deliver(ctx, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "deliver panic")
}

type panicHandler struct{}

var _ custody.Handler = panicHandler{}

func (p panicHandler) Deliver(custody.Context, custody.Msg) (*custody.Result, error) {
	panic("deliver panic")
}
