package utils

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var help x.TestHelpers
	var buf bytes.Buffer
	ctx := custody.WithLogger(context.Background(), log.NewTMLogger(&buf))

	msg := help.MockMsg("ledger/confirm", nil)
	stack := chain{d: NewLogging(), next: chain{d: NewActionTagger(), next: help.CountingHandler()}}

	_, err := stack.Deliver(ctx, msg)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "duration=")
	assert.NotContains(t, buf.String(), "err=")

	buf.Reset()
	_, err = chain{d: NewLogging(), next: help.ErrorHandler(fmt.Errorf("boom"))}.Deliver(ctx, msg)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "err=boom")
}

func TestActionTagger(t *testing.T) {
	var buf bytes.Buffer
	ctx := custody.WithLogger(context.Background(), log.NewTMLogger(&buf))

	logging := handlerFunc(func(ctx custody.Context, msg custody.Msg) (*custody.Result, error) {
		custody.GetLogger(ctx).Info("handled")
		return &custody.Result{}, nil
	})

	var help x.TestHelpers
	_, err := NewActionTagger().Deliver(ctx, help.MockMsg("cash/deposit", nil), logging)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "action=cash/deposit")
}

type chain struct {
	d    custody.Decorator
	next custody.Handler
}

func (c chain) Deliver(ctx custody.Context, msg custody.Msg) (*custody.Result, error) {
	return c.d.Deliver(ctx, msg, c.next)
}

type handlerFunc func(custody.Context, custody.Msg) (*custody.Result, error)

func (fn handlerFunc) Deliver(ctx custody.Context, msg custody.Msg) (*custody.Result, error) {
	return fn(ctx, msg)
}
