package ledger

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registry is a minimal custody.Registry keeping handlers by path.
type registry map[string]custody.Handler

func (r registry) Handle(path string, h custody.Handler) {
	r[path] = h
}

func (r registry) deliver(ctx custody.Context, msg custody.Msg) (*custody.Result, error) {
	h, ok := r[msg.Path()]
	if !ok {
		return nil, errors.Wrap(errors.ErrMsg, msg.Path())
	}
	return h.Deliver(ctx, msg)
}

func TestHandlers(t *testing.T) {
	a, b, c := custodytest.NewCondition(), custodytest.NewCondition(), custodytest.NewCondition()
	stranger := custodytest.NewCondition()
	target := custodytest.NewAddress()

	effect := &effectMock{}
	l, err := New([]custody.Address{a.Address(), b.Address(), c.Address()}, 2, effect)
	require.NoError(t, err)

	auth := &custodytest.CtxAuth{Key: "auth"}
	r := make(registry)
	RegisterRoutes(r, auth, l)
	require.Len(t, r, 4)

	steps := []struct {
		signer   custody.Condition
		msg      custody.Msg
		wantErr  *errors.Error
		wantData []byte
	}{
		{
			signer:   a,
			msg:      &SubmitMsg{To: target, Value: 100, Data: []byte("memo")},
			wantData: []byte{0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			signer:  stranger,
			msg:     &SubmitMsg{To: target, Value: 100},
			wantErr: errors.ErrUnauthorized,
		},
		{
			signer:  nil,
			msg:     &ConfirmMsg{Index: 0},
			wantErr: errors.ErrUnauthorized,
		},
		{
			signer:  a,
			msg:     &SubmitMsg{Value: 1},
			wantErr: ErrInvalidTarget,
		},
		{
			signer:  a,
			msg:     &SubmitMsg{To: custody.Address{1, 2, 3}, Value: 1},
			wantErr: errors.ErrInput,
		},
		{
			signer: a,
			msg:    &ConfirmMsg{Index: 0},
		},
		{
			signer:  a,
			msg:     &ExecuteMsg{Index: 0},
			wantErr: ErrInsufficientConfirmations,
		},
		{
			signer: b,
			msg:    &ConfirmMsg{Index: 0},
		},
		{
			signer: b,
			msg:    &RevokeMsg{Index: 0},
		},
		{
			signer:  b,
			msg:     &RevokeMsg{Index: 0},
			wantErr: ErrNotConfirmed,
		},
		{
			signer: c,
			msg:    &ConfirmMsg{Index: 0},
		},
		{
			signer:  c,
			msg:     &ExecuteMsg{Index: 1},
			wantErr: errors.ErrNotFound,
		},
		{
			signer: c,
			msg:    &ExecuteMsg{Index: 0},
		},
		{
			signer:  a,
			msg:     &ExecuteMsg{Index: 0},
			wantErr: ErrAlreadyExecuted,
		},
		{
			signer:   b,
			msg:      &SubmitMsg{To: target, Value: 5},
			wantData: []byte{0, 0, 0, 0, 0, 0, 0, 1},
		},
	}

	for i, step := range steps {
		ctx := context.Background()
		if step.signer != nil {
			ctx = auth.SetConditions(ctx, step.signer)
		}
		res, err := r.deliver(ctx, step.msg)
		if step.wantErr != nil {
			require.True(t, step.wantErr.Is(err), "step %d: unexpected error: %+v", i, err)
			continue
		}
		require.NoError(t, err, "step %d", i)
		if step.wantData != nil {
			assert.Equal(t, step.wantData, res.Data, "step %d", i)
		}
		assert.NotEmpty(t, res.Log, "step %d", i)
	}

	assert.Equal(t, []transfer{{To: target, Value: 100, Data: []byte("memo")}}, effect.Transfers())
	assert.Equal(t, uint64(2), l.TransactionCount())
}

func TestHandlerRejectsForeignMessage(t *testing.T) {
	a := custodytest.NewCondition()
	l, err := New([]custody.Address{a.Address()}, 1, &effectMock{})
	require.NoError(t, err)
	auth := &custodytest.Auth{Signer: a}

	// Confirm handler cannot process a revoke message.
	h := ConfirmHandler{auth: auth, ledger: l}
	_, err = h.Deliver(context.Background(), &RevokeMsg{Index: 0})
	assert.True(t, errors.ErrMsg.Is(err), "unexpected error: %+v", err)
}

func TestDecodeIndex(t *testing.T) {
	idx, err := DecodeIndex(encodeIndex(1234567))
	require.NoError(t, err)
	assert.Equal(t, uint64(1234567), idx)

	_, err = DecodeIndex([]byte{1, 2})
	assert.True(t, errors.ErrInput.Is(err), "unexpected error: %+v", err)
}
